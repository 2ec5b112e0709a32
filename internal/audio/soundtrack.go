package audio

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/gesture-particles/internal/config"
)

// Soundtrack plays an optional background track. Its loudness is read back
// through a visualTap to pulse the point size.
type Soundtrack struct {
	log *log.Logger

	currentFile *os.File
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	tap         *visualTap

	duration time.Duration
	position time.Duration
	paused   bool
	initDone bool
}

func NewSoundtrack(logger *log.Logger) *Soundtrack {
	return &Soundtrack{log: logger}
}

func (s *Soundtrack) Loaded() bool { return s.ctrl != nil }

// decode picks a decoder by file extension.
func decode(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, errors.New("unsupported file type: " + ext)
	}
}

func (s *Soundtrack) OpenDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return s.Play(filename)
}

func (s *Soundtrack) Play(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	streamer, format, err := decode(path, f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	// streamer -> tap -> ctrl
	t := newVisualTap(streamer, config.SoundRingSize)
	ctrl := &beep.Ctrl{Streamer: t, Paused: false}

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !s.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return err
		}
		s.initDone = true
	case s.format.SampleRate != format.SampleRate:
		// Clear takes the speaker lock itself.
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return err
		}
	}
	s.Close()

	s.currentFile = f
	s.streamer = streamer
	s.format = format
	s.ctrl = ctrl
	s.tap = t
	s.paused = false
	s.duration = format.SampleRate.D(streamer.Len())
	s.position = 0

	s.log.Printf("playing %s (%s)", filepath.Base(path), formatDuration(s.duration))
	speaker.Play(ctrl)
	return nil
}

// Close stops playback and releases the current file.
func (s *Soundtrack) Close() {
	if s.initDone && s.ctrl != nil {
		speaker.Clear()
	}
	s.ctrl = nil
	s.tap = nil
	if s.streamer != nil {
		_ = s.streamer.Close()
		s.streamer = nil
	}
	if s.currentFile != nil {
		_ = s.currentFile.Close()
		s.currentFile = nil
	}
}

func (s *Soundtrack) TogglePause() {
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.paused = !s.paused
	s.ctrl.Paused = s.paused
	speaker.Unlock()
}

// Tick advances the displayed position by one frame.
func (s *Soundtrack) Tick() {
	if s.streamer == nil || s.paused || s.tap.done() {
		return
	}
	s.position = min(s.position+time.Second/60, s.duration)
}

// Level is the current loudness in [0,1], zero when nothing plays.
func (s *Soundtrack) Level() float64 {
	if s.tap == nil || s.paused || s.tap.done() {
		return 0
	}
	return s.tap.level(2048)
}

func (s *Soundtrack) Status() string {
	switch {
	case !s.Loaded():
		return "no soundtrack"
	case s.tap.done():
		return "ended " + formatDuration(s.duration)
	case s.paused:
		return "paused " + formatDuration(s.position) + "/" + formatDuration(s.duration)
	default:
		return formatDuration(s.position) + "/" + formatDuration(s.duration)
	}
}
