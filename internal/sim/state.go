package sim

import (
	"math/rand"

	"github.com/iburimskiy/gesture-particles/internal/config"
)

// Kinetics are per-frame cosmetic metrics derived from the field.
type Kinetics struct {
	Speed float32
	Hue   float64 // degrees, [0,360)
}

// State is everything one frame of the visualization depends on. It is owned
// by a single goroutine; the controller and stepper both hold a pointer.
type State struct {
	Field       *Field
	Attractor   Attractor
	TargetScale float64
	Scale       float64
	Rotation    float64
	Rotate      bool
	Kinetics    Kinetics
	Bubbles     *Bubbles
}

// NewState builds a field of count particles on preset p with unit scale.
func NewState(count int, p Preset, rng *rand.Rand) *State {
	return &State{
		Field:       NewField(count, p, rng),
		TargetScale: 1,
		Scale:       1,
		Bubbles:     NewBubbles(rng),
	}
}

// NewStateFromConfig is NewState with the configured preset and rotation.
func NewStateFromConfig(cfg config.Config, rng *rand.Rand) *State {
	p, _ := ParsePreset(cfg.Preset)
	s := NewState(config.ParticleCount, p, rng)
	s.Rotate = cfg.Rotate
	return s
}
