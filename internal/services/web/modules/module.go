// Package modules assembles the portfolio web modules.
package modules

import (
	"github.com/louisbranch/portfolio/internal/platform/metrics"
	"github.com/louisbranch/portfolio/internal/services/portfolio/actions"
	"github.com/louisbranch/portfolio/internal/services/portfolio/storage"
	module "github.com/louisbranch/portfolio/internal/services/web/module"
	"github.com/louisbranch/portfolio/internal/services/web/modules/adminauth"
	"github.com/louisbranch/portfolio/internal/services/web/pagecache"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries the collaborators the module registry is built from.
// Request-scoped helpers shared by every module travel separately in
// module.Dependencies.
type Dependencies struct {
	Store   storage.Store
	Actions *actions.Actions
	// Cache fronts the public pages. Nil disables caching.
	Cache       *pagecache.Cache
	Credentials adminauth.Credentials
	// ExecuteURL is the upstream code execution endpoint.
	ExecuteURL string
	Metrics    *metrics.Metrics
}
