package router

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	presentation "pet-playground/internal/adapters/presentation/memory"
	mem "pet-playground/internal/adapters/storage/memory"
	pg "pet-playground/internal/adapters/storage/postgres"
	"pet-playground/internal/domain/panel"
	"pet-playground/internal/domain/pets"
	"pet-playground/internal/domain/session"
	"pet-playground/internal/middleware"
	"pet-playground/internal/observability"
	"pet-playground/internal/platform/config"
	"pet-playground/internal/platform/logger"

	_ "pet-playground/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config config.Config
	Log    logger.Logger

	// Opcional: si viene, usa Postgres. Si no, prueba Config.DBDSN y si no in-memory.
	DB *sql.DB
	// Opcional: pisa la elección de store (tests).
	Repo session.Repository
	// Opcional: registry propio para /metrics.
	Registry *prometheus.Registry
}

// App es lo que arma el router: el handler HTTP y el panel que cmd/api hace tickear.
type App struct {
	Handler http.Handler
	Panel   *panel.Service
	Handles *presentation.Factory
}

func New(ctx context.Context, opts Options) (*App, error) {
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}
	cfg := opts.Config

	repo, err := sessionRepo(ctx, opts, log)
	if err != nil {
		return nil, err
	}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics, err := observability.NewCollector(reg)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	handles := presentation.NewFactory()
	svc := panel.NewService(panel.Options{
		Repo:     repo,
		Handles:  handles,
		Log:      logger.Component(log, "panel"),
		Metrics:  metrics,
		Size:     pets.ParseSize(cfg.PetSize),
		Floor:    cfg.Floor,
		Viewport: cfg.ViewportWidth,
	})

	species := pets.NormalizeSpecies(cfg.DefaultPetType)
	if !species.Valid() {
		species = pets.SpeciesCat
	}
	if err := svc.Start(ctx, panel.DefaultPet{Species: species, Color: pets.Color(cfg.DefaultPetColor)}); err != nil {
		return nil, fmt.Errorf("start panel: %w", err)
	}
	svc.ThrowWithMouse(cfg.ThrowBallWithMouse)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	panel.RegisterRoutes(r, svc)
	r.Get("/ws", panel.WSHandler(svc, logger.Component(log, "ws")))

	return &App{Handler: r, Panel: svc, Handles: handles}, nil
}

func sessionRepo(ctx context.Context, opts Options, log logger.Logger) (session.Repository, error) {
	if opts.Repo != nil {
		return opts.Repo, nil
	}

	// Si no te pasan DB explícita, intenta por config (DB_DSN)
	db := opts.DB
	if db == nil && opts.Config.DBDSN != "" {
		opened, err := pg.Open(ctx, opts.Config.DBDSN)
		if err != nil {
			log.Warn("postgres unavailable, using in-memory session store", map[string]any{"error": err.Error()})
		} else {
			db = opened
		}
	}

	if db == nil {
		return mem.NewSessionRepo(), nil
	}

	repo := pg.NewSessionRepo(db, opts.Config.SessionID)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	log.Info("using postgres session store", map[string]any{"session_id": opts.Config.SessionID})
	return repo, nil
}
