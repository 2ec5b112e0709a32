package sim

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/iburimskiy/gesture-particles/internal/config"
)

// Landmark is one tracked hand keypoint in normalized image space with a
// relative depth.
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// GestureMatch is a named gesture reported by the classifier.
type GestureMatch struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Hand is a single tracked hand: 21 ordered landmarks plus whatever the
// gesture classifier matched for them.
type Hand struct {
	Landmarks []Landmark     `json:"landmarks"`
	Gestures  []GestureMatch `json:"gestures,omitempty"`
}

// Observation is one processed camera frame.
type Observation struct {
	Hands []Hand `json:"hands"`
}

// Gesture is the closed set of gestures the controller reacts to.
type Gesture int

const (
	GestureNone Gesture = iota
	GesturePeace
	GestureThumbsUp
	GestureUnknown
)

func ParseGesture(name string) Gesture {
	switch name {
	case "":
		return GestureNone
	case "peace":
		return GesturePeace
	case "thumbs_up":
		return GestureThumbsUp
	default:
		return GestureUnknown
	}
}

// ResolveGesture picks the highest scoring match. Equal scores keep the
// classifier's order.
func ResolveGesture(matches []GestureMatch) Gesture {
	best := -1
	for i, m := range matches {
		if best < 0 || m.Score > matches[best].Score {
			best = i
		}
	}
	if best < 0 {
		return GestureNone
	}
	return ParseGesture(matches[best].Name)
}

// GesturePolicy decides what a recognized gesture changes.
type GesturePolicy int

const (
	// PolicyField maps peace to repel and thumbs up to attract.
	PolicyField GesturePolicy = iota
	// PolicyPreset maps peace to hearts and thumbs up to flowers.
	PolicyPreset
)

func ParsePolicy(name string) GesturePolicy {
	if name == config.PolicyPreset {
		return PolicyPreset
	}
	return PolicyField
}

// PinchToScale maps a pinch distance linearly from the pinch domain onto
// [lo, hi]. Values outside the domain extrapolate unless clamp is set.
func PinchToScale(d, lo, hi float64, clamp bool) float64 {
	s := lo + (d-config.PinchDomainMin)*(hi-lo)/(config.PinchDomainMax-config.PinchDomainMin)
	if clamp {
		s = math.Max(lo, math.Min(hi, s))
	}
	return s
}

// PinchDistance is the planar distance between thumb tip and index tip.
func PinchDistance(lm []Landmark) float64 {
	a, b := lm[config.ThumbTip], lm[config.IndexTip]
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// WorldPoint maps a normalized landmark into field coordinates, flipping the
// vertical axis.
func WorldPoint(l Landmark) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((l.X - 0.5) * config.WorldSpan),
		float32(-(l.Y - 0.5) * config.WorldSpan),
		float32(l.Z * config.DepthSpan),
	}
}

// Controller applies hand observations and UI commands to a State.
type Controller struct {
	state    *State
	policy   GesturePolicy
	scaleLo  float64
	scaleHi  float64
	clamp    bool
	ttl      time.Duration
	lastSeen time.Time
}

func NewController(s *State, cfg config.Config) *Controller {
	lo, hi := cfg.ScaleRange()
	return &Controller{
		state:   s,
		policy:  ParsePolicy(cfg.GesturePolicy),
		scaleLo: lo,
		scaleHi: hi,
		clamp:   cfg.ClampPinch,
		ttl:     cfg.AttractorTTL,
	}
}

// Observe applies one observation. Only the first hand is used; a frame
// without a complete hand counts as lost and leaves the attractor alone
// unless it has outlived the ttl.
func (c *Controller) Observe(obs Observation, now time.Time) {
	if len(obs.Hands) == 0 {
		c.Expire(now)
		return
	}
	h := obs.Hands[0]
	if len(h.Landmarks) < config.LandmarkCount {
		c.Expire(now)
		return
	}
	c.lastSeen = now

	st := c.state
	st.TargetScale = PinchToScale(PinchDistance(h.Landmarks), c.scaleLo, c.scaleHi, c.clamp)
	st.Attractor.Point = WorldPoint(h.Landmarks[config.IndexTip])
	st.Attractor.Present = true

	switch ResolveGesture(h.Gestures) {
	case GesturePeace:
		if c.policy == PolicyPreset {
			c.SetPreset(PresetHearts)
		} else {
			st.Attractor.Mode = ModeRepel
		}
	case GestureThumbsUp:
		if c.policy == PolicyPreset {
			c.SetPreset(PresetFlowers)
		} else {
			st.Attractor.Mode = ModeAttract
		}
	}
}

// Expire drops the attractor once no hand has been seen for the ttl. A zero
// ttl keeps the last known attractor forever.
func (c *Controller) Expire(now time.Time) {
	if c.ttl <= 0 || !c.state.Attractor.Present {
		return
	}
	if now.Sub(c.lastSeen) >= c.ttl {
		c.state.Attractor.Present = false
	}
}

// SetPreset switches the field shape if it differs from the active one.
func (c *Controller) SetPreset(p Preset) {
	if c.state.Field.Preset() == p {
		return
	}
	c.state.Field.SetPreset(p)
}

// SetTemplate switches preset by name. Unknown names fall back to flowers;
// the return value reports whether the name was recognized.
func (c *Controller) SetTemplate(name string) bool {
	p, ok := ParsePreset(name)
	c.state.Field.SetPreset(p)
	return ok
}
