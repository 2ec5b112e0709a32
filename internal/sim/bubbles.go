package sim

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/iburimskiy/gesture-particles/internal/config"
)

type Bubble struct {
	Center mgl32.Vec3
	Radius float32
}

// Bubbles is the pop-the-bubble score game layered over the field.
type Bubbles struct {
	List  []Bubble
	Score int
	ticks int
	rng   *rand.Rand
}

func NewBubbles(rng *rand.Rand) *Bubbles {
	return &Bubbles{rng: rng}
}

func (b *Bubbles) spawn() {
	b.List = append(b.List, Bubble{
		Center: mgl32.Vec3{
			float32((b.rng.Float64() - 0.5) * 60),
			float32((b.rng.Float64() - 0.5) * 40),
			float32((b.rng.Float64() - 0.5) * 20),
		},
		Radius: config.BubbleRadius,
	})
}

// Step spawns on schedule, drifts every bubble upward, and pops the ones the
// attractor touches. Popped bubbles count toward the score.
func (b *Bubbles) Step(a Attractor) {
	b.ticks++
	if b.ticks >= config.BubbleSpawnFrames {
		b.ticks = 0
		b.spawn()
	}

	kept := b.List[:0]
	for _, bub := range b.List {
		bub.Center[1] += config.BubbleDrift
		if bub.Center[1] > config.BubbleCeiling {
			continue
		}
		if a.Present && a.Point.Sub(bub.Center).Len() < bub.Radius {
			b.Score++
			continue
		}
		kept = append(kept, bub)
	}
	b.List = kept
}
