package sim

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSmoothScaleContraction(t *testing.T) {
	for _, tc := range []struct{ start, target float64 }{
		{1, 4},
		{4, 0.3},
		{-2, 2},
		{2, 2},
	} {
		s := tc.start
		for i := 0; i < 50; i++ {
			before := math.Abs(s - tc.target)
			s = SmoothScale(s, tc.target)
			after := math.Abs(s - tc.target)
			if math.Abs(after-0.9*before) > 1e-12 {
				t.Fatalf("start %v target %v step %d: |e| %v -> %v", tc.start, tc.target, i, before, after)
			}
		}
	}
}

func TestStepSmoothsAndMoves(t *testing.T) {
	st := NewState(100, PresetFireworks, newRand())
	st.TargetScale = 2
	st.Attractor = Attractor{Present: true, Point: mgl32.Vec3{0, 0, 0}}
	before := st.Field.Positions[0]

	step := NewStepper(st)
	step.Step()

	if math.Abs(st.Scale-1.1) > 1e-12 {
		t.Fatalf("scale after one step = %v", st.Scale)
	}
	if st.Field.Positions[0] == before {
		t.Fatalf("field did not move")
	}
	if st.Kinetics.Speed <= 0 {
		t.Fatalf("speed metric = %v", st.Kinetics.Speed)
	}
	if step.Frame() != 1 {
		t.Fatalf("frame = %d", step.Frame())
	}
}

func TestStepRotationToggle(t *testing.T) {
	st := NewState(10, PresetHearts, newRand())
	step := NewStepper(st)
	step.Step()
	if st.Rotation != 0 {
		t.Fatalf("rotated while disabled")
	}
	st.Rotate = true
	step.Step()
	step.Step()
	if math.Abs(st.Rotation-0.004) > 1e-12 {
		t.Fatalf("rotation = %v", st.Rotation)
	}
}

func TestHueWraps(t *testing.T) {
	st := NewState(10, PresetHearts, newRand())
	st.Kinetics.Hue = 359.95
	NewStepper(st).Step()
	if st.Kinetics.Hue < 0 || st.Kinetics.Hue >= 360 {
		t.Fatalf("hue = %v", st.Kinetics.Hue)
	}
}

func TestBubblesSpawnDriftAndPop(t *testing.T) {
	b := NewBubbles(newRand())
	for i := 0; i < 119; i++ {
		b.Step(Attractor{})
	}
	if len(b.List) != 0 {
		t.Fatalf("spawned early: %d", len(b.List))
	}
	b.Step(Attractor{})
	if len(b.List) != 1 {
		t.Fatalf("bubbles = %d after 120 frames", len(b.List))
	}
	y := b.List[0].Center[1]
	b.Step(Attractor{})
	if got := b.List[0].Center[1] - y; math.Abs(float64(got)-0.03) > 1e-5 {
		t.Fatalf("drift = %v", got)
	}

	b.Step(Attractor{Present: true, Point: b.List[0].Center})
	if len(b.List) != 0 || b.Score != 1 {
		t.Fatalf("bubble not popped: %d left, score %d", len(b.List), b.Score)
	}
}

func TestBubblesDiscardAboveCeiling(t *testing.T) {
	b := NewBubbles(newRand())
	b.List = append(b.List, Bubble{Center: mgl32.Vec3{0, 59.99, 0}, Radius: 2})
	b.Step(Attractor{})
	if len(b.List) != 0 || b.Score != 0 {
		t.Fatalf("bubble above ceiling kept or scored")
	}
}
