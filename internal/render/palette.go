package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor accepts "#rrggbb", "rrggbb", "#rgb" or "0xrrggbb".
func ParseColor(s string) (colorful.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "0x")
	if !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return c, nil
}

// HueColor is the particle color at hue h in degrees.
func HueColor(h float64) colorful.Color {
	return colorful.Hsv(h, 0.8, 1)
}

// FromColor converts a picker result; ok is false for fully transparent
// colors.
func FromColor(c color.Color) (colorful.Color, bool) {
	return colorful.MakeColor(c)
}
