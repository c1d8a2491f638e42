// Package public serves the localized portfolio pages.
package public

import (
	"errors"
	"net/http"

	module "github.com/louisbranch/portfolio/internal/services/web/module"
	"github.com/louisbranch/portfolio/internal/services/web/pagecache"
	"github.com/louisbranch/portfolio/internal/services/web/routepath"
)

// Module provides the home, projects and experience pages.
type Module struct {
	reader Reader
	deps   module.Dependencies
	cache  *pagecache.Cache
}

// New returns a public module reading from reader. A nil cache serves every
// page uncached.
func New(reader Reader, deps module.Dependencies, cache *pagecache.Cache) Module {
	return Module{reader: reader, deps: deps, cache: cache}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "public" }

// Mount wires public route handlers behind the page cache.
func (m Module) Mount() (module.Mount, error) {
	if m.reader == nil {
		return module.Mount{}, errors.New("public module requires a content reader")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.reader), m.deps))
	var handler http.Handler = mux
	if m.cache != nil {
		handler = m.cache.Middleware(mux)
	}
	return module.Mount{Prefix: routepath.Prefix(routepath.Home), Handler: handler}, nil
}

// CacheKey keys cached pages by the {locale} wildcard and the locale-free
// path. Requests for unsupported locales are never cached.
func CacheKey(deps module.Dependencies) pagecache.KeyFunc {
	return func(r *http.Request) (string, string, bool) {
		if !deps.SupportedLocale(r) {
			return "", "", false
		}
		return deps.Locale(r), deps.CanonicalPath(r), true
	}
}
