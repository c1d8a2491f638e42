package adminauth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	module "github.com/louisbranch/portfolio/internal/services/web/module"
	apperrors "github.com/louisbranch/portfolio/internal/services/web/platform/errors"
	"github.com/louisbranch/portfolio/internal/services/web/platform/httpx"
	"github.com/louisbranch/portfolio/internal/services/web/platform/pagerender"
	"github.com/louisbranch/portfolio/internal/services/web/platform/ratelimit"
	"github.com/louisbranch/portfolio/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/portfolio/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/portfolio/internal/services/web/platform/weberror"
	"github.com/louisbranch/portfolio/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/portfolio/internal/services/web/templates"
)

// maxFormBytes caps the sign-in form body.
const maxFormBytes = 16 << 10

const (
	keyInvalid     = "admin.auth.login.invalid"
	keyRateLimited = "admin.auth.login.rate_limited"
)

type handlers struct {
	credentials Credentials
	limiter     *ratelimit.Keyed
	deps        module.Dependencies
}

func newHandlers(cfg Config, deps module.Dependencies) handlers {
	return handlers{credentials: cfg.Credentials, limiter: cfg.Limiter, deps: deps}
}

func (h handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	next := routepath.SafeNext(r.URL.Query().Get(routepath.NextQueryKey))
	if h.deps.SignedIn(r) {
		httpx.SeeOther(w, r, h.destination(r, next))
		return
	}
	h.renderLogin(w, r, http.StatusOK, webtemplates.LoginView{Next: next})
}

func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	if origin := r.Header.Get("Origin"); origin != "" && !requestmeta.HasSameOriginProof(r, h.deps.SchemePolicy) {
		h.writeError(w, r, apperrors.E(apperrors.KindForbidden, "cross-origin sign-in"))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.writeError(w, r, apperrors.EK(apperrors.KindInvalidInput, "admin.form.malformed", "malformed sign-in form"))
		return
	}
	email := strings.TrimSpace(r.PostForm.Get("email"))
	password := r.PostForm.Get("password")
	next := routepath.SafeNext(r.PostForm.Get(routepath.NextQueryKey))
	view := webtemplates.LoginView{Email: email, Next: next}

	client := ratelimit.ClientIP(r, h.deps.SchemePolicy.TrustForwardedProto)
	if !h.limiter.Allow(client) {
		h.deps.Log().Warn("sign-in rate limited", zap.String("client", client))
		view.ErrorKey = keyRateLimited
		h.renderLogin(w, r, http.StatusTooManyRequests, view)
		return
	}
	if !h.credentials.Match(email, password) {
		h.deps.Log().Warn("sign-in rejected", zap.String("client", client))
		view.ErrorKey = keyInvalid
		h.renderLogin(w, r, http.StatusUnauthorized, view)
		return
	}
	session, err := h.deps.Sessions.Start(w, r, h.credentials.Email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.deps.Log().Info("admin signed in", zap.String("session_id", session.ID), zap.String("client", client))
	httpx.SeeOther(w, r, h.destination(r, next))
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sessioncookie.HasCookie(r) && !requestmeta.HasSameOriginProof(r, h.deps.SchemePolicy) {
		h.writeError(w, r, apperrors.E(apperrors.KindForbidden, "cross-origin sign-out"))
		return
	}
	h.deps.Sessions.Clear(w, r)
	httpx.SeeOther(w, r, h.deps.Link(h.deps.Locale(r), routepath.Home))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.NotFound(w, r, h.deps, pagerender.SurfaceAdmin)
}

// destination is next when it is a same-site path, else the localized
// dashboard.
func (h handlers) destination(r *http.Request, next string) string {
	if next != "" {
		return next
	}
	return h.deps.Link(h.deps.Locale(r), routepath.AdminRoot)
}

func (h handlers) renderLogin(w http.ResponseWriter, r *http.Request, status int, view webtemplates.LoginView) {
	page := pagerender.NewPage(w, r, h.deps, pagerender.SurfaceAdmin)
	page.Title = webtemplates.T(page.Loc, "admin.auth.login.title")
	if err := pagerender.Write(w, r, page, status, webtemplates.LoginPage(page, view)); err != nil {
		h.writeError(w, r, err)
	}
}

func (h handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.Write(w, r, err, h.deps, pagerender.SurfaceAdmin)
}
