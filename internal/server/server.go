package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/petween/backend/internal/config"
	"github.com/petween/backend/internal/handlers"
	"github.com/petween/backend/internal/middleware"
	"github.com/petween/backend/pkg/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 120 * time.Second
)

type Server struct {
	cfg     *config.Config
	http    *http.Server
	limiter *middleware.RateLimiter
}

// New builds the router with its middleware chain around h.
func New(cfg *config.Config, h *handlers.HandlerManager) *Server {
	metrics := middleware.NewMetrics()
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerIP, cfg.GetRateLimitWindow())

	r := mux.NewRouter()
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	h.RegisterRoutes(r)

	var handler http.Handler = r
	handler = limiter.Middleware(handler)
	handler = middleware.NewCORS(cfg.CORSAllowedOrigins).Handler(handler)
	handler = metrics.Instrument(r, handler)
	handler = middleware.AccessLog(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(handler)

	return &Server{
		cfg:     cfg,
		limiter: limiter,
		http: &http.Server{
			Addr:              cfg.GetAddr(),
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) Addr() string {
	return s.http.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	defer s.limiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.GetShutdownTimeout())
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.limiter.Stop()
}
