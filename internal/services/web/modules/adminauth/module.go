// Package adminauth serves the admin sign-in and sign-out routes.
package adminauth

import (
	"errors"
	"net/http"
	"time"

	module "github.com/louisbranch/portfolio/internal/services/web/module"
	"github.com/louisbranch/portfolio/internal/services/web/platform/ratelimit"
	"github.com/louisbranch/portfolio/internal/services/web/routepath"
)

// Login attempts allowed per client: one every loginEvery after a burst.
const (
	loginEvery = 12 * time.Second
	loginBurst = 5
)

// Config carries the admin credentials and an optional limiter.
type Config struct {
	Credentials Credentials
	// Limiter throttles sign-in attempts per client. Nil uses the default
	// login rate.
	Limiter *ratelimit.Keyed
}

// Module provides the login and logout routes.
type Module struct {
	cfg  Config
	deps module.Dependencies
}

// New returns an admin auth module.
func New(cfg Config, deps module.Dependencies) Module {
	if cfg.Limiter == nil {
		cfg.Limiter = ratelimit.New(loginEvery, loginBurst)
	}
	return Module{cfg: cfg, deps: deps}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "adminauth" }

// Mount wires auth route handlers.
func (m Module) Mount() (module.Mount, error) {
	if m.deps.Sessions == nil {
		return module.Mount{}, errors.New("admin auth module requires a session manager")
	}
	if !m.cfg.Credentials.Configured() {
		m.deps.Log().Warn("admin credentials are not configured; sign-in is disabled")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.cfg, m.deps))
	return module.Mount{Prefix: routepath.Prefix(routepath.AuthPrefix), Handler: mux}, nil
}
