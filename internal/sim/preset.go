package sim

import (
	"math"
	"math/rand"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/iburimskiy/gesture-particles/internal/config"
)

// Preset is the target shape particles are redistributed onto.
type Preset int

const (
	PresetHearts Preset = iota
	PresetFlowers
	PresetFireworks
)

func (p Preset) String() string {
	switch p {
	case PresetHearts:
		return "hearts"
	case PresetFireworks:
		return "fireworks"
	default:
		return "flowers"
	}
}

// ParsePreset maps a template name to a preset. Unknown names fall back to
// the rose curve and report ok=false.
func ParsePreset(name string) (Preset, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hearts", "heart":
		return PresetHearts, true
	case "flowers", "flower":
		return PresetFlowers, true
	case "fireworks", "sphere":
		return PresetFireworks, true
	default:
		return PresetFlowers, false
	}
}

// Generate returns the target position of particle index out of count for
// preset p. Hearts and flowers draw a random angle from rng, fireworks is a
// deterministic equal-area spiral over the sphere.
func Generate(p Preset, index, count int, rng *rand.Rand) mgl32.Vec3 {
	switch p {
	case PresetHearts:
		t := rng.Float64() * 2 * math.Pi
		s := math.Sin(t)
		x := 16 * s * s * s
		y := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
		return mgl32.Vec3{float32(x), float32(y), depthNoise(rng)}
	case PresetFireworks:
		phi := math.Acos(-1 + 2*float64(index)/float64(count))
		theta := math.Sqrt(float64(count)*math.Pi) * phi
		r := float64(config.PresetRadius)
		return mgl32.Vec3{
			float32(r * math.Cos(theta) * math.Sin(phi)),
			float32(r * math.Sin(theta) * math.Sin(phi)),
			float32(r * math.Cos(phi)),
		}
	default:
		t := rng.Float64() * 2 * math.Pi
		r := config.PresetRadius * math.Cos(5*t)
		return mgl32.Vec3{float32(r * math.Cos(t)), float32(r * math.Sin(t)), depthNoise(rng)}
	}
}

func depthNoise(rng *rand.Rand) float32 {
	return float32((rng.Float64() - 0.5) * config.PresetDepth)
}
