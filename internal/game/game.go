package game

import (
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/gesture-particles/internal/audio"
	"github.com/iburimskiy/gesture-particles/internal/config"
	"github.com/iburimskiy/gesture-particles/internal/render"
	"github.com/iburimskiy/gesture-particles/internal/sim"
	"github.com/iburimskiy/gesture-particles/internal/tracking"
)

// Tracker is where hand observations and UI commands come from.
type Tracker interface {
	Latest() (sim.Observation, bool)
	Commands() <-chan tracking.Command
	Clients() int64
}

type Game struct {
	log     *log.Logger
	state   *sim.State
	ctrl    *sim.Controller
	stepper *sim.Stepper
	tracker Tracker
	sound   *audio.Soundtrack

	// viz
	color   colorful.Color
	rainbow bool
	width   int
	height  int

	flat     []float32
	vertices []ebiten.Vertex
	indices  []uint16

	// input edge detection
	prevKey map[ebiten.Key]bool

	lastErr error
}

func New(cfg config.Config, tracker Tracker, logger *log.Logger) *Game {
	state := sim.NewStateFromConfig(cfg, rand.New(rand.NewSource(time.Now().UnixNano())))
	g := &Game{
		log:     logger,
		state:   state,
		ctrl:    sim.NewController(state, cfg),
		stepper: sim.NewStepper(state),
		tracker: tracker,
		sound:   audio.NewSoundtrack(logger),
		width:   config.WindowWidth,
		height:  config.WindowHeight,
		prevKey: map[ebiten.Key]bool{},
	}
	if err := g.UpdateColor(cfg.Color); err != nil {
		g.lastErr = err
		g.color, _ = render.ParseColor(config.DefaultColor)
	}
	if cfg.Soundtrack != "" {
		if err := g.sound.Play(cfg.Soundtrack); err != nil {
			g.lastErr = err
		}
	}
	return g
}

// SetTemplate switches the particle preset by name.
func (g *Game) SetTemplate(name string) {
	if !g.ctrl.SetTemplate(name) {
		g.log.Printf("unknown template %q, using %s", name, g.state.Field.Preset())
	}
}

// UpdateColor recolors the particles from a hex string.
func (g *Game) UpdateColor(value string) error {
	c, err := render.ParseColor(value)
	if err != nil {
		return err
	}
	g.color = c
	g.rainbow = false
	return nil
}

func (g *Game) pickColor() error {
	c, err := zenity.SelectColor(
		zenity.Title("Particle Color"),
		zenity.Color(g.color),
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	if cc, ok := render.FromColor(c); ok {
		g.color = cc
		g.rainbow = false
	}
	return nil
}

// Close stops the soundtrack.
func (g *Game) Close() {
	g.sound.Close()
}

func (g *Game) Update() error {

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	for key, name := range map[ebiten.Key]string{
		ebiten.Key1: "hearts",
		ebiten.Key2: "flowers",
		ebiten.Key3: "fireworks",
	} {
		if justPressed(key) {
			g.SetTemplate(name)
		}
	}
	if justPressed(ebiten.KeyC) {
		if err := g.pickColor(); err != nil {
			g.lastErr = err
		}
	}
	if justPressed(ebiten.KeyO) {
		if err := g.sound.OpenDialog(); err != nil {
			g.lastErr = err
		}
	}
	if justPressed(ebiten.KeySpace) {
		g.sound.TogglePause()
	}
	if justPressed(ebiten.KeyR) {
		g.state.Rotate = !g.state.Rotate
	}
	if justPressed(ebiten.KeyH) {
		g.rainbow = !g.rainbow
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.drainTracker(time.Now())
	g.stepper.Step()
	g.sound.Tick()
	return nil
}

// drainTracker applies queued UI commands and the latest observation. Each
// is applied in full before the frame steps.
func (g *Game) drainTracker(now time.Time) {
	if g.tracker == nil {
		return
	}
	for drained := false; !drained; {
		select {
		case cmd := <-g.tracker.Commands():
			g.apply(cmd)
		default:
			drained = true
		}
	}
	if obs, ok := g.tracker.Latest(); ok {
		g.ctrl.Observe(obs, now)
	} else {
		g.ctrl.Expire(now)
	}
}

func (g *Game) apply(cmd tracking.Command) {
	switch cmd.Kind {
	case tracking.CommandTemplate:
		g.SetTemplate(cmd.Value)
	case tracking.CommandColor:
		if err := g.UpdateColor(cmd.Value); err != nil {
			g.lastErr = err
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
	}
	return g.width, g.height
}
