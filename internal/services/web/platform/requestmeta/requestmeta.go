// Package requestmeta resolves request scheme and origin facts.
package requestmeta

import (
	"net"
	"net/http"
	"net/url"
	"strings"
)

// SchemePolicy controls which request signals decide the scheme.
//
// X-Forwarded-Proto is ignored unless TrustForwardedProto is set.
type SchemePolicy struct {
	TrustForwardedProto bool
}

// Scheme returns "https" or "http" for r.
func Scheme(r *http.Request, policy SchemePolicy) string {
	if r == nil {
		return "http"
	}
	if policy.TrustForwardedProto {
		switch proto := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); proto {
		case "http", "https":
			return proto
		}
	}
	if r.URL != nil {
		switch scheme := strings.ToLower(r.URL.Scheme); scheme {
		case "http", "https":
			return scheme
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// IsHTTPS reports whether r should be treated as HTTPS.
func IsHTTPS(r *http.Request, policy SchemePolicy) bool {
	return Scheme(r, policy) == "https"
}

// Origin identifies a scheme, host and port triple.
type Origin struct {
	Scheme string
	Host   string
	Port   string
}

// RequestOrigin returns the origin r was addressed to.
func RequestOrigin(r *http.Request, policy SchemePolicy) Origin {
	if r == nil {
		return Origin{}
	}
	raw := r.Host
	if raw == "" && r.URL != nil {
		raw = r.URL.Host
	}
	scheme := Scheme(r, policy)
	host, port := splitHostPort(raw)
	return Origin{Scheme: scheme, Host: host, Port: portOrDefault(port, scheme)}
}

// ParseOrigin extracts the origin of an absolute URL.
func ParseOrigin(raw string) (Origin, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Origin{}, false
	}
	scheme := strings.ToLower(u.Scheme)
	return Origin{
		Scheme: scheme,
		Host:   strings.ToLower(u.Hostname()),
		Port:   portOrDefault(u.Port(), scheme),
	}, true
}

// HasSameOriginProof reports whether the Origin header, or failing that the
// Referer, matches the origin r was addressed to.
func HasSameOriginProof(r *http.Request, policy SchemePolicy) bool {
	if r == nil {
		return false
	}
	want := RequestOrigin(r, policy)
	if want.Host == "" {
		return false
	}
	proof := strings.TrimSpace(r.Header.Get("Origin"))
	if proof == "" {
		proof = strings.TrimSpace(r.Header.Get("Referer"))
	}
	if proof == "" {
		return false
	}
	got, ok := ParseOrigin(proof)
	return ok && got == want
}

func splitHostPort(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		host, port = raw, ""
	}
	return strings.ToLower(strings.Trim(host, "[]")), port
}

func portOrDefault(port, scheme string) string {
	if port != "" {
		return port
	}
	switch scheme {
	case "https":
		return "443"
	case "http":
		return "80"
	}
	return ""
}
