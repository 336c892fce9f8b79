package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/revenue-atlas/pkg/handlers/dashboard"
	"github.com/de-tools/revenue-atlas/pkg/models/api"
	"github.com/de-tools/revenue-atlas/pkg/services/property"
	"github.com/de-tools/revenue-atlas/pkg/services/revenue"
	"github.com/de-tools/revenue-atlas/pkg/store/pool"

	revenuemiddleware "github.com/de-tools/revenue-atlas/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          http.Handler
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
	onShutdown      func() error
}

// StorageState reports the connection pool lifecycle for health checks.
type StorageState interface {
	State() pool.State
}

type Dependencies struct {
	Revenue    revenue.Service
	Properties property.Directory
	Storage    StorageState
	Logger     zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	JWTSecret       []byte
	Dependencies    Dependencies
	// OnShutdown runs after the HTTP server has drained.
	OnShutdown func() error
}

func ConfigureRouter(config Config) http.Handler {
	deps := config.Dependencies
	dashboard := handlers.NewHandler(deps.Revenue, deps.Properties)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(revenuemiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", healthHandler(deps.Storage))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(revenuemiddleware.Tenant(config.JWTSecret))

		r.Get("/dashboard/properties", dashboard.ListProperties)
		r.Get("/dashboard/summary", dashboard.GetSummary)
		r.Get("/properties/{propertyID}/revenue", dashboard.GetPropertyRevenue)
	})

	return router
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	config.Dependencies.Logger = logger
	router := ConfigureRouter(config)

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		shutdownTimeout: timeout,
		onShutdown:      config.OnShutdown,
	}
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then drains
// outstanding requests.
func (w *WebAPI) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		if err := w.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(shutdownCtx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if w.onShutdown != nil {
			if hookErr := w.onShutdown(); hookErr != nil {
				w.logger.Error().Err(hookErr).Msg("shutdown hook failed")
				err = errors.Join(err, hookErr)
			}
		}
		return err
	})

	return g.Wait()
}

func healthHandler(storage StorageState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health := api.Health{Status: "ok", Storage: pool.Uninitialized.String()}
		status := http.StatusOK
		if storage != nil {
			state := storage.State()
			health.Storage = state.String()
			if state == pool.Failed {
				health.Status = "degraded"
				status = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(health); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode health")
		}
	}
}
