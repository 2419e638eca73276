package config

import (
	"testing"
	"time"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg := fromLookup(env(nil))

	if cfg.Addr != ":8080" || cfg.SessionID != "default" || cfg.DBDSN != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TickInterval != DefaultTickInterval || cfg.ViewportWidth != DefaultViewportWidth {
		t.Fatalf("unexpected tick/viewport defaults: %+v", cfg)
	}
	if cfg.DefaultPetType != "cat" || cfg.DefaultPetColor != "brown" || cfg.ThrowBallWithMouse {
		t.Fatalf("unexpected pet defaults: %+v", cfg)
	}
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg := fromLookup(env(map[string]string{
		"PORT":                  "9090",
		"DB_DSN":                " postgres://x ",
		"SESSION_ID":            "ws-1",
		"TICK_INTERVAL":         "250ms",
		"VIEWPORT_WIDTH":        "1024",
		"PET_SIZE":              "large",
		"FLOOR":                 "12",
		"DEFAULT_PET_TYPE":      "dog",
		"DEFAULT_PET_COLOR":     "akita",
		"THROW_BALL_WITH_MOUSE": "true",
	}))

	if cfg.Addr != ":9090" || cfg.DBDSN != "postgres://x" || cfg.SessionID != "ws-1" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.TickInterval != 250*time.Millisecond || cfg.ViewportWidth != 1024 || cfg.Floor != 12 {
		t.Fatalf("unexpected numeric overrides: %+v", cfg)
	}
	if cfg.PetSize != "large" || cfg.DefaultPetType != "dog" || cfg.DefaultPetColor != "akita" || !cfg.ThrowBallWithMouse {
		t.Fatalf("unexpected pet overrides: %+v", cfg)
	}
}

func TestFromLookup_IgnoresInvalidValues(t *testing.T) {
	cfg := fromLookup(env(map[string]string{
		"TICK_INTERVAL":  "soon",
		"VIEWPORT_WIDTH": "-3",
		"FLOOR":          "x",
	}))
	if cfg.TickInterval != DefaultTickInterval || cfg.ViewportWidth != DefaultViewportWidth || cfg.Floor != 0 {
		t.Fatalf("expected defaults for invalid values: %+v", cfg)
	}
}
