package config

import (
	"flag"
	"fmt"
	"time"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	SoundRingSize = 8192

	// Particle field
	ParticleCount   = 5000
	InitialVelocity = 0.03
	FieldEpsilon    = 0.1
	FieldStrength   = 0.05
	FieldStepFactor = 0.01
	VelocityRetain  = 0.95

	// Presets
	PresetRadius = 20
	PresetDepth  = 5

	// Interaction
	PinchDomainMin = 0.05
	PinchDomainMax = 0.3
	WorldSpan      = 80
	DepthSpan      = 40
	LandmarkCount  = 21
	ThumbTip       = 4
	IndexTip       = 8

	// Frame stepper
	ScaleBlend    = 0.1
	RotationSpeed = 0.002
	HueBase       = 0.2
	HueGain       = 400

	// Bubbles
	BubbleSpawnFrames = 120
	BubbleRadius      = 2
	BubbleDrift       = 0.03
	BubbleCeiling     = 60

	// Render collaborator
	CameraFOV      = 75
	CameraDistance = 50
	CameraNear     = 0.1
	CameraFar      = 1000
	PointSize      = 0.6
	DefaultColor   = "#00ffcc"
)

// Scale ranges for the pinch mapping.
const (
	ScaleWide   = "wide"
	ScaleNarrow = "narrow"
)

// Gesture policies.
const (
	PolicyField  = "field"
	PolicyPreset = "preset"
)

// Config holds the runtime options that come from the command line.
type Config struct {
	Addr          string
	Preset        string
	ScaleVariant  string
	ClampPinch    bool
	GesturePolicy string
	AttractorTTL  time.Duration
	Rotate        bool
	Color         string
	Soundtrack    string
	Verbose       bool
}

func Default() Config {
	return Config{
		Addr:          "127.0.0.1:8765",
		Preset:        "hearts",
		ScaleVariant:  ScaleWide,
		GesturePolicy: PolicyField,
		Color:         DefaultColor,
	}
}

// RegisterFlags binds every option to fs, using the current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Addr, "addr", c.Addr, "listen address for the hand tracker page and websocket")
	fs.StringVar(&c.Preset, "preset", c.Preset, "initial preset: hearts, flowers or fireworks")
	fs.StringVar(&c.ScaleVariant, "scale-variant", c.ScaleVariant, "pinch scale range: wide [0.3,4] or narrow [0.2,4]")
	fs.BoolVar(&c.ClampPinch, "clamp-pinch", c.ClampPinch, "clamp pinch scale to the range instead of extrapolating")
	fs.StringVar(&c.GesturePolicy, "gesture-policy", c.GesturePolicy, "gesture mapping: field (attract/repel) or preset (hearts/flowers)")
	fs.DurationVar(&c.AttractorTTL, "attractor-ttl", c.AttractorTTL, "drop the attractor after this long without a hand (0 keeps it)")
	fs.BoolVar(&c.Rotate, "rotate", c.Rotate, "slowly rotate the particle field")
	fs.StringVar(&c.Color, "color", c.Color, "particle color as a hex string")
	fs.StringVar(&c.Soundtrack, "soundtrack", c.Soundtrack, "audio file to play on start (wav, mp3, flac)")
	fs.BoolVar(&c.Verbose, "verbose", c.Verbose, "log every tracker message")
}

// Parse builds a Config from command line arguments.
func Parse(name string, args []string) (Config, error) {
	c := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	c.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	switch c.ScaleVariant {
	case ScaleWide, ScaleNarrow:
	default:
		return fmt.Errorf("unknown scale variant %q", c.ScaleVariant)
	}
	switch c.GesturePolicy {
	case PolicyField, PolicyPreset:
	default:
		return fmt.Errorf("unknown gesture policy %q", c.GesturePolicy)
	}
	if c.AttractorTTL < 0 {
		return fmt.Errorf("attractor ttl must not be negative, got %v", c.AttractorTTL)
	}
	if c.Addr == "" {
		return fmt.Errorf("listen address is empty")
	}
	return nil
}

// ScaleRange returns the target scale range for the configured variant.
func (c Config) ScaleRange() (float64, float64) {
	if c.ScaleVariant == ScaleNarrow {
		return 0.2, 4
	}
	return 0.3, 4
}
