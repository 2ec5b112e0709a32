package sim

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/iburimskiy/gesture-particles/internal/config"
)

// Mode is the sign of the attractor force.
type Mode int

const (
	ModeAttract Mode = iota
	ModeRepel
)

func (m Mode) String() string {
	if m == ModeRepel {
		return "repel"
	}
	return "attract"
}

// Attractor is the hand-driven field source. The zero value is absent.
type Attractor struct {
	Point   mgl32.Vec3
	Mode    Mode
	Present bool
}

// Field owns the particle containers. Positions and Velocities are index
// stable for the lifetime of the field.
type Field struct {
	Positions  []mgl32.Vec3
	Velocities []mgl32.Vec3
	preset     Preset
	rng        *rand.Rand
}

// NewField allocates count particles with small random velocities and lays
// them out on preset p.
func NewField(count int, p Preset, rng *rand.Rand) *Field {
	f := &Field{
		Positions:  make([]mgl32.Vec3, count),
		Velocities: make([]mgl32.Vec3, count),
		rng:        rng,
	}
	for i := range f.Velocities {
		for k := 0; k < 3; k++ {
			f.Velocities[i][k] = float32((rng.Float64() - 0.5) * config.InitialVelocity)
		}
	}
	f.SetPreset(p)
	return f
}

func (f *Field) Len() int { return len(f.Positions) }

func (f *Field) Preset() Preset { return f.preset }

// SetPreset moves every particle onto the new shape. Velocities are kept so
// momentum carries across the switch.
func (f *Field) SetPreset(p Preset) {
	f.preset = p
	n := len(f.Positions)
	for i := range f.Positions {
		f.Positions[i] = Generate(p, i, n, f.rng)
	}
}

// ApplyField advances every particle by one display frame under the
// attractor's inverse-distance force. Nothing moves when the attractor is
// absent.
func (f *Field) ApplyField(a Attractor) {
	if !a.Present {
		return
	}
	s := float32(config.FieldStrength)
	if a.Mode == ModeRepel {
		s = -s
	}
	for i := range f.Positions {
		pos := f.Positions[i]
		delta := a.Point.Sub(pos)
		d := delta.Len() + config.FieldEpsilon
		force := s / d
		vel := f.Velocities[i].Add(delta.Mul(force * config.FieldStepFactor))
		vel = vel.Mul(config.VelocityRetain)
		f.Velocities[i] = vel
		f.Positions[i] = pos.Add(vel)
	}
}

// Flatten writes positions as consecutive x,y,z triples into dst, growing it
// when needed, and returns the filled slice.
func (f *Field) Flatten(dst []float32) []float32 {
	n := 3 * len(f.Positions)
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]
	for i, p := range f.Positions {
		dst[3*i], dst[3*i+1], dst[3*i+2] = p[0], p[1], p[2]
	}
	return dst
}

// MeanSpeed is the average velocity magnitude across the field.
func (f *Field) MeanSpeed() float32 {
	if len(f.Velocities) == 0 {
		return 0
	}
	var sum float32
	for _, v := range f.Velocities {
		sum += v.Len()
	}
	return sum / float32(len(f.Velocities))
}
