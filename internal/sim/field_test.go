package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newRand() *rand.Rand { return rand.New(rand.NewSource(42)) }

func TestFireworksOnSphere(t *testing.T) {
	f := NewField(5000, PresetHearts, newRand())
	f.SetPreset(PresetFireworks)
	for i, p := range f.Positions {
		r2 := float64(p.Dot(p))
		if math.Abs(r2-400) > 0.05 {
			t.Fatalf("particle %d at %v has r^2=%v", i, p, r2)
		}
	}
}

func TestFireworksDeterministic(t *testing.T) {
	a := Generate(PresetFireworks, 17, 100, newRand())
	b := Generate(PresetFireworks, 17, 100, rand.New(rand.NewSource(7)))
	if a != b {
		t.Fatalf("sphere point depends on rng: %v vs %v", a, b)
	}
}

func TestHeartsBounds(t *testing.T) {
	f := NewField(5000, PresetHearts, newRand())
	for i, p := range f.Positions {
		if p[0] < -16 || p[0] > 16 {
			t.Fatalf("particle %d x=%v out of range", i, p[0])
		}
		if p[1] < -18 || p[1] > 18 {
			t.Fatalf("particle %d y=%v out of range", i, p[1])
		}
		if p[2] < -2.5 || p[2] > 2.5 {
			t.Fatalf("particle %d z=%v out of range", i, p[2])
		}
	}
}

func TestFlowersPolarRelation(t *testing.T) {
	f := NewField(500, PresetFireworks, newRand())
	f.SetPreset(PresetFlowers)
	for i, p := range f.Positions {
		x, y := float64(p[0]), float64(p[1])
		r := math.Hypot(x, y)
		if r > 20+1e-4 {
			t.Fatalf("particle %d outside the rose: r=%v", i, r)
		}
		if r < 0.5 {
			// float32 rounding dominates the angle this close to the center
			continue
		}
		want := math.Abs(20 * math.Cos(5*math.Atan2(y, x)))
		if math.Abs(r-want) > 1e-3 {
			t.Fatalf("particle %d: r=%v, rose curve gives %v", i, r, want)
		}
	}
}

func TestSetPresetKeepsVelocities(t *testing.T) {
	f := NewField(100, PresetHearts, newRand())
	before := append([]mgl32.Vec3(nil), f.Velocities...)
	f.SetPreset(PresetFireworks)
	if f.Preset() != PresetFireworks {
		t.Fatalf("preset = %v", f.Preset())
	}
	for i := range before {
		if before[i] != f.Velocities[i] {
			t.Fatalf("velocity %d changed on preset switch", i)
		}
	}
}

func TestInitialVelocityRange(t *testing.T) {
	f := NewField(1000, PresetHearts, newRand())
	for i, v := range f.Velocities {
		for k := 0; k < 3; k++ {
			if v[k] < -0.015 || v[k] > 0.015 {
				t.Fatalf("velocity %d component %d = %v", i, k, v[k])
			}
		}
	}
}

func TestApplyFieldWithoutAttractorIsNoop(t *testing.T) {
	f := NewField(200, PresetFlowers, newRand())
	pos := append([]mgl32.Vec3(nil), f.Positions...)
	vel := append([]mgl32.Vec3(nil), f.Velocities...)
	f.ApplyField(Attractor{Point: mgl32.Vec3{1, 2, 3}})
	for i := range pos {
		if pos[i] != f.Positions[i] || vel[i] != f.Velocities[i] {
			t.Fatalf("particle %d changed without attractor", i)
		}
	}
}

func singleParticle(at mgl32.Vec3) *Field {
	return &Field{
		Positions:  []mgl32.Vec3{at},
		Velocities: []mgl32.Vec3{{}},
		rng:        newRand(),
	}
}

func TestRepelPushesAway(t *testing.T) {
	f := singleParticle(mgl32.Vec3{10, 0, 0})
	f.ApplyField(Attractor{Mode: ModeRepel, Present: true})
	v := f.Velocities[0]
	if v[0] <= 0 {
		t.Fatalf("repel velocity.x = %v, want away from origin", v[0])
	}
	if v[1] != 0 || v[2] != 0 {
		t.Fatalf("repel produced off-axis velocity %v", v)
	}
	if f.Positions[0][0] <= 10 {
		t.Fatalf("particle moved toward origin: %v", f.Positions[0])
	}
}

func TestAttractConverges(t *testing.T) {
	f := singleParticle(mgl32.Vec3{10, 0, 0})
	att := Attractor{Mode: ModeAttract, Present: true}
	prev := f.Positions[0].Len()
	for i := 0; i < 500; i++ {
		f.ApplyField(att)
		d := f.Positions[0].Len()
		if d > prev+1e-5 {
			t.Fatalf("step %d: distance grew from %v to %v", i, prev, d)
		}
		prev = d
	}
	for i := 0; i < 10000; i++ {
		f.ApplyField(att)
	}
	if d := f.Positions[0].Len(); d > 1 {
		t.Fatalf("residual distance %v after settling", d)
	}
}

func TestFlatten(t *testing.T) {
	f := NewField(10, PresetFireworks, newRand())
	flat := f.Flatten(nil)
	if len(flat) != 30 {
		t.Fatalf("len = %d", len(flat))
	}
	if flat[27] != f.Positions[9][0] || flat[29] != f.Positions[9][2] {
		t.Fatalf("last triple mismatch")
	}
	again := f.Flatten(flat)
	if &again[0] != &flat[0] {
		t.Fatalf("flatten reallocated a large enough buffer")
	}
}

func TestParsePreset(t *testing.T) {
	cases := []struct {
		in   string
		want Preset
		ok   bool
	}{
		{"hearts", PresetHearts, true},
		{" Flowers ", PresetFlowers, true},
		{"fireworks", PresetFireworks, true},
		{"stars", PresetFlowers, false},
		{"", PresetFlowers, false},
	}
	for _, tc := range cases {
		got, ok := ParsePreset(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParsePreset(%q) = %v,%v want %v,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
