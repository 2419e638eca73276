package panel

import (
	"context"
	"time"

	"pet-playground/internal/platform/logger"
)

// RunTicker llama a Tick cada interval hasta que se cancele ctx.
func RunTicker(ctx context.Context, svc *Service, interval time.Duration, log logger.Logger) {
	if log == nil {
		log = logger.Discard()
	}
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.Tick(ctx); err != nil {
				log.Warn("tick failed", map[string]any{"error": err.Error()})
			}
		}
	}
}
