package config

import (
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	c, err := Parse("test", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Addr != "127.0.0.1:8765" || c.Preset != "hearts" || c.GesturePolicy != PolicyField {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	lo, hi := c.ScaleRange()
	if lo != 0.3 || hi != 4 {
		t.Fatalf("wide range = [%v,%v]", lo, hi)
	}
}

func TestParseFlags(t *testing.T) {
	c, err := Parse("test", []string{
		"-scale-variant", "narrow",
		"-clamp-pinch",
		"-gesture-policy", "preset",
		"-attractor-ttl", "750ms",
		"-preset", "fireworks",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !c.ClampPinch || c.AttractorTTL != 750*time.Millisecond || c.Preset != "fireworks" {
		t.Fatalf("flags not applied: %+v", c)
	}
	if lo, _ := c.ScaleRange(); lo != 0.2 {
		t.Fatalf("narrow range low = %v", lo)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"scale variant", func(c *Config) { c.ScaleVariant = "huge" }},
		{"gesture policy", func(c *Config) { c.GesturePolicy = "wave" }},
		{"negative ttl", func(c *Config) { c.AttractorTTL = -time.Second }},
		{"empty addr", func(c *Config) { c.Addr = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mut(&c)
			if err := c.Validate(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
