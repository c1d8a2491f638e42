// Package localerouter decides, for every incoming path, whether the request
// passes through, is redirected to its canonical unprefixed form, or is
// rewritten internally onto the default locale.
package localerouter

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"slices"
	"strings"
)

// Action is the outcome of classifying a path.
type Action int

const (
	// ActionPass leaves the request untouched.
	ActionPass Action = iota
	// ActionRedirect sends the client to Decision.Path.
	ActionRedirect
	// ActionRewrite serves Decision.Path without changing the visible URL.
	ActionRewrite
)

func (a Action) String() string {
	switch a {
	case ActionPass:
		return "pass"
	case ActionRedirect:
		return "redirect"
	case ActionRewrite:
		return "rewrite"
	default:
		return "unknown"
	}
}

// Decision is the router's verdict for one path. Path is empty for ActionPass.
type Decision struct {
	Action Action
	Path   string
}

// DefaultExcludedPrefixes are never localized. Each prefix matches whole path
// segments: "/api" covers "/api" and "/api/execute" but not "/apiary".
var DefaultExcludedPrefixes = []string{"/static", "/api", "/metrics", "/healthz"}

// Config describes the supported locales.
type Config struct {
	Locales          []string
	DefaultLocale    string
	ExcludedPrefixes []string
	// OnDecision observes every decision applied by Middleware.
	OnDecision func(Decision)
}

// Router classifies request paths. It is immutable after New.
type Router struct {
	locales       map[string]struct{}
	ordered       []string
	defaultLocale string
	excluded      []string
	onDecision    func(Decision)
}

// New validates cfg and builds a Router.
func New(cfg Config) (*Router, error) {
	def := strings.TrimSpace(cfg.DefaultLocale)
	if def == "" {
		return nil, fmt.Errorf("default locale is required")
	}
	r := &Router{
		locales:       make(map[string]struct{}, len(cfg.Locales)),
		defaultLocale: def,
		onDecision:    cfg.OnDecision,
	}
	for _, raw := range cfg.Locales {
		locale := strings.TrimSpace(raw)
		if locale == "" || strings.Contains(locale, "/") {
			return nil, fmt.Errorf("invalid locale %q", raw)
		}
		if _, dup := r.locales[locale]; dup {
			return nil, fmt.Errorf("duplicate locale %q", locale)
		}
		r.locales[locale] = struct{}{}
		r.ordered = append(r.ordered, locale)
	}
	if _, ok := r.locales[def]; !ok {
		return nil, fmt.Errorf("default locale %q is not in supported locales %v", def, r.ordered)
	}
	excluded := cfg.ExcludedPrefixes
	if excluded == nil {
		excluded = DefaultExcludedPrefixes
	}
	for _, prefix := range excluded {
		if !strings.HasPrefix(prefix, "/") {
			return nil, fmt.Errorf("excluded prefix %q must begin with /", prefix)
		}
		if trimmed := strings.TrimRight(prefix, "/"); trimmed != "" {
			r.excluded = append(r.excluded, trimmed)
		}
	}
	return r, nil
}

// DefaultLocale returns the locale served without a path prefix.
func (r *Router) DefaultLocale() string {
	return r.defaultLocale
}

// Locales returns the supported locales in configuration order.
func (r *Router) Locales() []string {
	return slices.Clone(r.ordered)
}

// Supported reports whether locale is configured.
func (r *Router) Supported(locale string) bool {
	_, ok := r.locales[locale]
	return ok
}

// Decide classifies p, a decoded URL path.
func (r *Router) Decide(p string) Decision {
	if r.isExcluded(p) {
		return Decision{Action: ActionPass}
	}
	locale, rest, ok := splitLocale(p)
	if ok && locale == r.defaultLocale {
		return Decision{Action: ActionRedirect, Path: rest}
	}
	if ok && r.Supported(locale) {
		return Decision{Action: ActionPass}
	}
	return Decision{Action: ActionRewrite, Path: "/" + r.defaultLocale + ensureLeadingSlash(p)}
}

func (r *Router) isExcluded(p string) bool {
	for _, prefix := range r.excluded {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	ext := path.Ext(p)
	return len(ext) > 1
}

// splitLocale returns the first path segment and the remainder when p has at
// least one segment. rest always begins with "/".
func splitLocale(p string) (string, string, bool) {
	if !strings.HasPrefix(p, "/") || len(p) < 2 {
		return "", "", false
	}
	trimmed := p[1:]
	segment, tail, found := strings.Cut(trimmed, "/")
	if segment == "" {
		return "", "", false
	}
	if !found {
		return segment, "/", true
	}
	return segment, "/" + tail, true
}

func ensureLeadingSlash(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

type contextKey struct{}

// WithLocale stores locale on ctx.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, contextKey{}, locale)
}

// LocaleFromContext returns the locale stored by Middleware, if any.
func LocaleFromContext(ctx context.Context) (string, bool) {
	locale, ok := ctx.Value(contextKey{}).(string)
	return locale, ok && locale != ""
}

// Middleware applies Decide to each request.
func (r *Router) Middleware(next http.Handler) http.Handler {
	if next == nil {
		next = http.NotFoundHandler()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		decision := r.Decide(req.URL.Path)
		if r.onDecision != nil {
			r.onDecision(decision)
		}
		switch decision.Action {
		case ActionRedirect:
			target := decision.Path
			if req.URL.RawQuery != "" {
				target += "?" + req.URL.RawQuery
			}
			http.Redirect(w, req, target, http.StatusTemporaryRedirect)
		case ActionRewrite:
			rewritten := req.Clone(WithLocale(req.Context(), r.defaultLocale))
			rewritten.URL.Path = decision.Path
			rewritten.URL.RawPath = ""
			next.ServeHTTP(w, rewritten)
		default:
			if locale, _, ok := splitLocale(req.URL.Path); ok && r.Supported(locale) {
				req = req.WithContext(WithLocale(req.Context(), locale))
			}
			next.ServeHTTP(w, req)
		}
	})
}

// Resolve returns the locale for a request: the one stored by Middleware, or
// the default locale.
func (r *Router) Resolve(req *http.Request) string {
	if req != nil {
		if locale, ok := LocaleFromContext(req.Context()); ok {
			return locale
		}
	}
	return r.defaultLocale
}

// Localize builds the public URL path for p in locale. The default locale is
// never written into links.
func (r *Router) Localize(locale string, p string) string {
	p = ensureLeadingSlash(p)
	if locale == r.defaultLocale || !r.Supported(locale) {
		return p
	}
	if p == "/" {
		return "/" + locale
	}
	return "/" + locale + p
}

// Strip removes a supported locale prefix from p, returning the remainder.
func (r *Router) Strip(p string) string {
	locale, rest, ok := splitLocale(p)
	if ok && r.Supported(locale) {
		return rest
	}
	return ensureLeadingSlash(p)
}
