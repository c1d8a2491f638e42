package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/louisbranch/portfolio/internal/platform/logging"
	"github.com/louisbranch/portfolio/internal/platform/metrics"
	"github.com/louisbranch/portfolio/internal/platform/timeouts"
	"github.com/louisbranch/portfolio/internal/services/portfolio/storage"
	module "github.com/louisbranch/portfolio/internal/services/web/module"
	"github.com/louisbranch/portfolio/internal/services/web/modules"
	"github.com/louisbranch/portfolio/internal/services/web/platform/httpx"
	"github.com/louisbranch/portfolio/internal/services/web/routepath"
	"github.com/louisbranch/portfolio/internal/services/web/static"
)

// Config defines the inputs for the portfolio web server.
type Config struct {
	HTTPAddr string
	Store    storage.Store
	// Modules feeds the module registry.
	Modules modules.Dependencies
	// Shared carries the request-scoped helpers every module receives.
	Shared  module.Dependencies
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// Server serves the portfolio over HTTP.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *zap.Logger
}

// NewHandler builds the root handler: infrastructure routes plus the locale
// routed module tree.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Shared.Locales == nil {
		return nil, errors.New("locale router is required")
	}
	if cfg.Modules.Store == nil {
		cfg.Modules.Store = cfg.Store
	}
	if cfg.Modules.Metrics == nil {
		cfg.Modules.Metrics = cfg.Metrics
	}
	if cfg.Shared.Logger == nil {
		cfg.Shared.Logger = cfg.Logger
	}
	logger := logging.OrNop(cfg.Logger)

	composed, err := Compose(ComposeInput{
		Dependencies:        cfg.Shared,
		AuthRequired:        cfg.Shared.SignedIn,
		PublicModules:       modules.DefaultPublicModules(cfg.Modules, cfg.Shared),
		ProtectedModules:    modules.DefaultProtectedModules(cfg.Modules, cfg.Shared),
		RequestSchemePolicy: cfg.Shared.SchemePolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("compose modules: %w", err)
	}

	root := http.NewServeMux()
	root.Handle("GET "+routepath.Metrics, cfg.Metrics.Handler())
	root.Handle("GET "+routepath.Health, healthHandler(cfg.Store))
	root.Handle("GET "+routepath.StaticPrefix, staticHandler())
	root.Handle("/", cfg.Shared.Locales.Middleware(composed))

	var observer httpx.HTTPObserver
	if cfg.Metrics != nil {
		observer = cfg.Metrics
	}
	classify := func(p string) string {
		return classifyRoute(cfg.Shared.Locales.Strip(p), p)
	}
	return httpx.Chain(root,
		httpx.RequestID(),
		httpx.RecoverPanic(logger),
		httpx.AccessLog(logger, observer, classify),
	), nil
}

// NewServer builds a configured web server.
func NewServer(cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		logger: logging.OrNop(cfg.Logger),
	}, nil
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	listener, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpAddr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	s.logger.Info("portfolio listening", zap.String("addr", listener.Addr().String()))
	go func() {
		serveErr <- s.httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		<-serveErr
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		s.logger.Info("portfolio stopped")
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

func healthHandler(store storage.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			_ = httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.StoreOp)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			_ = httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

func staticHandler() http.Handler {
	files := http.StripPrefix(strings.TrimSuffix(routepath.StaticPrefix, "/"), http.FileServerFS(static.FS))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	})
}

// classifyRoute maps a request path to a metrics label. stripped is the path
// without its locale prefix.
func classifyRoute(stripped string, raw string) string {
	switch {
	case strings.HasPrefix(raw, routepath.StaticPrefix):
		return "static"
	case raw == routepath.Metrics:
		return "metrics"
	case raw == routepath.Health:
		return "health"
	case strings.HasPrefix(raw, routepath.APIPrefix):
		return "api"
	case stripped == routepath.AdminRoot || strings.HasPrefix(stripped, routepath.AdminPrefix):
		return "admin"
	case strings.HasPrefix(stripped, routepath.AuthPrefix):
		return "auth"
	default:
		return "public"
	}
}
