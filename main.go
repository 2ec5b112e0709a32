package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/gesture-particles/internal/config"
	"github.com/iburimskiy/gesture-particles/internal/game"
	"github.com/iburimskiy/gesture-particles/internal/tracking"
)

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracker := tracking.NewServer(log.New(os.Stderr, "[tracking] ", log.LstdFlags), cfg.Verbose)
	go func() {
		if err := tracker.ListenAndServe(ctx, cfg.Addr); err != nil {
			log.Printf("tracker server: %v", err)
		}
	}()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle(fmt.Sprintf("Gesture Particles - open http://%s/ for hand tracking", cfg.Addr))

	g := game.New(cfg, tracker, log.New(os.Stderr, "[game] ", log.LstdFlags))
	defer g.Close()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
