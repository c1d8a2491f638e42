// Package admin serves the authenticated content management pages.
package admin

import (
	"errors"
	"net/http"

	"github.com/louisbranch/portfolio/internal/services/portfolio/actions"
	module "github.com/louisbranch/portfolio/internal/services/web/module"
	"github.com/louisbranch/portfolio/internal/services/web/routepath"
)

// Module provides the dashboard and the project, experience and skill
// management routes.
type Module struct {
	reader  Reader
	actions *actions.Actions
	deps    module.Dependencies
}

// New returns an admin module reading through reader and mutating through
// acts.
func New(reader Reader, acts *actions.Actions, deps module.Dependencies) Module {
	return Module{reader: reader, actions: acts, deps: deps}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "admin" }

// Mount wires admin route handlers.
func (m Module) Mount() (module.Mount, error) {
	if m.reader == nil {
		return module.Mount{}, errors.New("admin module requires a content reader")
	}
	if m.actions == nil || m.actions.Projects == nil || m.actions.Experiences == nil || m.actions.Skills == nil {
		return module.Mount{}, errors.New("admin module requires actions")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.reader), m.actions, m.deps))
	return module.Mount{Prefix: routepath.Prefix(routepath.AdminPrefix), Handler: mux}, nil
}
