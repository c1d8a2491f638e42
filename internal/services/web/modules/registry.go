package modules

import (
	module "github.com/louisbranch/portfolio/internal/services/web/module"
	"github.com/louisbranch/portfolio/internal/services/web/modules/admin"
	"github.com/louisbranch/portfolio/internal/services/web/modules/adminauth"
	"github.com/louisbranch/portfolio/internal/services/web/modules/public"
	"github.com/louisbranch/portfolio/internal/services/web/modules/sandbox"
)

// DefaultPublicModules returns the modules served without a session.
func DefaultPublicModules(deps Dependencies, shared module.Dependencies) []Module {
	var reader public.Reader
	if deps.Store != nil {
		reader = deps.Store
	}
	return []Module{
		public.New(reader, shared, deps.Cache),
		adminauth.New(adminauth.Config{Credentials: deps.Credentials}, shared),
		sandbox.New(sandbox.Config{ExecuteURL: deps.ExecuteURL, Metrics: deps.Metrics}, shared),
	}
}

// DefaultProtectedModules returns the modules that require an admin session.
func DefaultProtectedModules(deps Dependencies, shared module.Dependencies) []Module {
	var reader admin.Reader
	if deps.Store != nil {
		reader = deps.Store
	}
	return []Module{
		admin.New(reader, deps.Actions, shared),
	}
}
