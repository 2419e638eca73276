package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPort          = "8080"
	DefaultSessionID     = "default"
	DefaultTickInterval  = 100 * time.Millisecond
	DefaultViewportWidth = 800
)

// Config se arma solo desde env (dev/handoff, igual que PORT y DB_DSN).
type Config struct {
	Addr      string
	DBDSN     string // vacío => store in-memory
	SessionID string

	TickInterval  time.Duration
	ViewportWidth float64
	PetSize       string
	Floor         float64

	DefaultPetType     string
	DefaultPetColor    string
	ThrowBallWithMouse bool
}

// FromEnv lee:
// - PORT (default 8080)
// - DB_DSN (opcional)
// - SESSION_ID (default "default")
// - TICK_INTERVAL=100ms
// - VIEWPORT_WIDTH=800, PET_SIZE=nano|small|medium|large, FLOOR=0
// - DEFAULT_PET_TYPE=cat, DEFAULT_PET_COLOR=brown, THROW_BALL_WITH_MOUSE=false
func FromEnv() Config {
	return fromLookup(os.Getenv)
}

func fromLookup(get func(string) string) Config {
	cfg := Config{
		Addr:               ":" + DefaultPort,
		DBDSN:              strings.TrimSpace(get("DB_DSN")),
		SessionID:          DefaultSessionID,
		TickInterval:       DefaultTickInterval,
		ViewportWidth:      DefaultViewportWidth,
		PetSize:            "small",
		DefaultPetType:     "cat",
		DefaultPetColor:    "brown",
		ThrowBallWithMouse: false,
	}

	if v := strings.TrimSpace(get("PORT")); v != "" {
		cfg.Addr = ":" + v
	}
	if v := strings.TrimSpace(get("SESSION_ID")); v != "" {
		cfg.SessionID = v
	}
	if v := strings.TrimSpace(get("TICK_INTERVAL")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.TickInterval = d
		}
	}
	if v := strings.TrimSpace(get("VIEWPORT_WIDTH")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.ViewportWidth = f
		}
	}
	if v := strings.TrimSpace(get("PET_SIZE")); v != "" {
		cfg.PetSize = v
	}
	if v := strings.TrimSpace(get("FLOOR")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.Floor = f
		}
	}
	if v := strings.TrimSpace(get("DEFAULT_PET_TYPE")); v != "" {
		cfg.DefaultPetType = v
	}
	if v := strings.TrimSpace(get("DEFAULT_PET_COLOR")); v != "" {
		cfg.DefaultPetColor = v
	}
	if v := strings.TrimSpace(get("THROW_BALL_WITH_MOUSE")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ThrowBallWithMouse = b
		}
	}

	return cfg
}
