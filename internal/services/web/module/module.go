// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/louisbranch/portfolio/internal/platform/logging"
	"github.com/louisbranch/portfolio/internal/services/web/localerouter"
	"github.com/louisbranch/portfolio/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/portfolio/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/portfolio/internal/services/web/routepath"
)

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// Dependencies carries request-scoped resolvers shared by page modules.
type Dependencies struct {
	Locales      *localerouter.Router
	BaseURL      string
	Logger       *zap.Logger
	SchemePolicy requestmeta.SchemePolicy
	Sessions     *sessioncookie.Manager
}

// Locale returns the locale addressed by r. The {locale} wildcard wins over
// the value stored by the locale router.
func (d Dependencies) Locale(r *http.Request) string {
	if r == nil || d.Locales == nil {
		return localeFallback(d)
	}
	if v := r.PathValue(routepath.LocaleParam); d.Locales.Supported(v) {
		return v
	}
	return d.Locales.Resolve(r)
}

// SupportedLocale reports whether the {locale} wildcard of r names a
// configured locale.
func (d Dependencies) SupportedLocale(r *http.Request) bool {
	if r == nil || d.Locales == nil {
		return false
	}
	return d.Locales.Supported(r.PathValue(routepath.LocaleParam))
}

// Link localizes a locale-free path for locale.
func (d Dependencies) Link(locale string, p string) string {
	if d.Locales == nil {
		return p
	}
	return d.Locales.Localize(locale, p)
}

// CanonicalPath strips any locale prefix from the request path.
func (d Dependencies) CanonicalPath(r *http.Request) string {
	if r == nil || r.URL == nil {
		return routepath.Home
	}
	if d.Locales == nil {
		return r.URL.Path
	}
	return d.Locales.Strip(r.URL.Path)
}

// SignedIn reports whether r carries a valid admin session.
func (d Dependencies) SignedIn(r *http.Request) bool {
	if d.Sessions == nil {
		return false
	}
	_, err := d.Sessions.Read(r)
	return err == nil
}

// Log returns the configured logger or a no-op logger.
func (d Dependencies) Log() *zap.Logger {
	return logging.OrNop(d.Logger)
}

func localeFallback(d Dependencies) string {
	if d.Locales == nil {
		return ""
	}
	return d.Locales.DefaultLocale()
}
