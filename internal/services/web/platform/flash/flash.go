// Package flash carries one-time notices across a post/redirect/get cycle.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/louisbranch/portfolio/internal/services/web/platform/requestmeta"
)

// CookieName holds the pending notice between the redirect and the next render.
const CookieName = "portfolio_flash"

// Kind selects notice presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notice is a message key resolved through the locale catalog at render time.
// Action result messages are valid keys.
type Notice struct {
	Kind Kind   `json:"kind"`
	Key  string `json:"key"`
}

// Success builds a success notice.
func Success(key string) Notice {
	return Notice{Kind: KindSuccess, Key: key}
}

// Failure builds an error notice.
func Failure(key string) Notice {
	return Notice{Kind: KindError, Key: key}
}

// Write stores notice for the next page render. Invalid notices are ignored.
func Write(w http.ResponseWriter, r *http.Request, notice Notice, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	notice, ok := normalize(notice)
	if !ok {
		return
	}
	payload, err := json.Marshal(notice)
	if err != nil {
		return
	}
	http.SetCookie(w, cookie(r, base64.RawURLEncoding.EncodeToString(payload), 0, policy))
}

// ReadAndClear returns the pending notice and expires the cookie.
func ReadAndClear(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	c, err := r.Cookie(CookieName)
	if err != nil {
		return Notice{}, false
	}
	if w != nil {
		http.SetCookie(w, cookie(r, "", -1, policy))
	}
	return decode(c.Value)
}

func cookie(r *http.Request, value string, maxAge int, policy requestmeta.SchemePolicy) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, policy),
		SameSite: http.SameSiteLaxMode,
	}
}

func decode(raw string) (Notice, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Notice{}, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(payload, &notice); err != nil {
		return Notice{}, false
	}
	return normalize(notice)
}

func normalize(notice Notice) (Notice, bool) {
	notice.Key = strings.TrimSpace(notice.Key)
	notice.Kind = Kind(strings.ToLower(strings.TrimSpace(string(notice.Kind))))
	if notice.Key == "" {
		return Notice{}, false
	}
	switch notice.Kind {
	case KindSuccess, KindError:
		return notice, true
	default:
		return Notice{}, false
	}
}
