package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-playground/internal/domain/panel"
	"pet-playground/internal/platform/config"
	"pet-playground/internal/platform/logger"
	"pet-playground/internal/router"
)

func main() {
	cfg := config.FromEnv()
	log := logger.NewFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := router.New(ctx, router.Options{Config: cfg, Log: log})
	if err != nil {
		log.Error("startup failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	// sin navegador no hay superficie que avise ready: el host la marca al arrancar
	app.Panel.Ready()
	go panel.RunTicker(ctx, app.Panel, cfg.TickInterval, logger.Component(log, "ticker"))

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      app.Handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": cfg.Addr, "tick_interval": cfg.TickInterval.String()})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
