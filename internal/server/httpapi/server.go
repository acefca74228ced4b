package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/talenthub/talenthub/internal/logging"
	"github.com/talenthub/talenthub/internal/server/config"
	"github.com/talenthub/talenthub/internal/server/metrics"
	"github.com/talenthub/talenthub/internal/server/services"
)

type Server struct {
	httpServer *http.Server
	logger     logging.Logger
}

// NewServer builds the HTTP server around the API router.
func NewServer(cfg *config.Config, logger logging.Logger, service *services.UserService, collector *metrics.Collector) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.ServerAddr,
			Handler:           NewRouter(cfg, logger, service, collector),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// NewRouter wires the routes: CORS on every route, the bearer
// middleware only on the authenticated group.
func NewRouter(cfg *config.Config, logger logging.Logger, service *services.UserService, collector *metrics.Collector) http.Handler {
	h := NewHandler(service, logger, collector)

	r := chi.NewRouter()
	r.Use(NewCORSMiddleware(cfg.CORSAllowedOrigin))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", collector.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(NewAuthMiddleware([]byte(cfg.JWTSecret)))
			r.Get("/auth/me", h.Me)
			r.Put("/users/profile", h.UpdateProfile)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.httpServer.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
