// Package sandbox proxies code-execution requests to a Piston-compatible
// execution API.
package sandbox

import (
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/portfolio/internal/platform/metrics"
	"github.com/louisbranch/portfolio/internal/platform/timeouts"
	module "github.com/louisbranch/portfolio/internal/services/web/module"
	"github.com/louisbranch/portfolio/internal/services/web/platform/ratelimit"
	"github.com/louisbranch/portfolio/internal/services/web/routepath"
)

// Default proxy rate per client: one call every executeEvery after a burst.
const (
	executeEvery = 6 * time.Second
	executeBurst = 5
)

// Config configures the execution proxy.
type Config struct {
	// ExecuteURL is the upstream execute endpoint. Empty disables the proxy.
	ExecuteURL string
	Client     *http.Client
	Limiter    *ratelimit.Keyed
	Metrics    *metrics.Metrics
}

// Module provides the /api/execute route.
type Module struct {
	cfg  Config
	deps module.Dependencies
}

// New returns a sandbox module.
func New(cfg Config, deps module.Dependencies) Module {
	cfg.ExecuteURL = strings.TrimSpace(cfg.ExecuteURL)
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: timeouts.ExecuteUpstream}
	}
	if cfg.Limiter == nil {
		cfg.Limiter = ratelimit.New(executeEvery, executeBurst)
	}
	return Module{cfg: cfg, deps: deps}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "sandbox" }

// Mount wires the execution proxy.
func (m Module) Mount() (module.Mount, error) {
	if m.cfg.ExecuteURL == "" {
		m.deps.Log().Warn("execute API url is not configured; code execution is disabled")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.cfg, m.deps))
	return module.Mount{Prefix: routepath.APIPrefix, Handler: mux}, nil
}
