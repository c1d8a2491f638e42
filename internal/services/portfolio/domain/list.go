package domain

import (
	"net/url"
	"strings"
)

const listSeparator = ", "

// ParseList splits a comma-separated form value into trimmed, non-empty items.
// Commas cannot be escaped.
func ParseList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// JoinList renders items back into the form encoding ParseList reads.
func JoinList(items []string) string {
	return strings.Join(items, listSeparator)
}

// ParseURLList is ParseList restricted to absolute http(s) URLs. Other items
// are dropped without error.
func ParseURLList(s string) []string {
	items := ParseList(s)
	out := items[:0]
	for _, item := range items {
		if IsHTTPURL(item) {
			out = append(out, item)
		}
	}
	return out
}

// IsHTTPURL reports whether s parses as an absolute http or https URL with a host.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
