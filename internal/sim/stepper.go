package sim

import (
	"math"

	"github.com/iburimskiy/gesture-particles/internal/config"
)

// SmoothScale moves current toward target by the fixed blend factor.
func SmoothScale(current, target float64) float64 {
	return current + (target-current)*config.ScaleBlend
}

// Stepper advances a State by one display frame.
type Stepper struct {
	state *State
	frame uint64
}

func NewStepper(s *State) *Stepper {
	return &Stepper{state: s}
}

func (s *Stepper) Frame() uint64 { return s.frame }

// Step runs scale smoothing, field physics, rotation, kinetic metrics and the
// bubble game for one frame. Drawing is left to the caller.
func (s *Stepper) Step() {
	st := s.state
	s.frame++

	st.Scale = SmoothScale(st.Scale, st.TargetScale)
	st.Field.ApplyField(st.Attractor)
	if st.Rotate {
		st.Rotation = math.Mod(st.Rotation+config.RotationSpeed, 2*math.Pi)
	}

	speed := st.Field.MeanSpeed()
	st.Kinetics.Speed = speed
	st.Kinetics.Hue = math.Mod(st.Kinetics.Hue+float64(speed)*config.HueGain+config.HueBase, 360)

	st.Bubbles.Step(st.Attractor)
}
