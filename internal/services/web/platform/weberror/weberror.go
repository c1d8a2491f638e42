// Package weberror renders shared error responses for web modules.
package weberror

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	module "github.com/louisbranch/portfolio/internal/services/web/module"
	apperrors "github.com/louisbranch/portfolio/internal/services/web/platform/errors"
	"github.com/louisbranch/portfolio/internal/services/web/platform/httpx"
	"github.com/louisbranch/portfolio/internal/services/web/platform/pagerender"
	webtemplates "github.com/louisbranch/portfolio/internal/services/web/templates"
)

// PublicMessage resolves a user-safe localized error message. Only typed
// errors carrying a localization key surface their own text.
func PublicMessage(loc webtemplates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if key := apperrors.LocalizationKey(err); key != "" {
		if localized := strings.TrimSpace(webtemplates.T(loc, key)); localized != "" {
			return localized
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	return http.StatusText(statusCode)
}

// Write renders err as an error page, or as {"error": ...} when the client
// asked for JSON. Server errors are logged.
func Write(w http.ResponseWriter, r *http.Request, err error, deps module.Dependencies, surface pagerender.Surface) {
	if w == nil || r == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if statusCode >= http.StatusInternalServerError && err != nil {
		deps.Log().Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	page := pagerender.NewPage(w, r, deps, surface)
	message := PublicMessage(page.Loc, err)
	if httpx.WantsJSON(r) {
		_ = httpx.WriteJSONError(w, statusCode, message)
		return
	}
	if apperrors.LocalizationKey(err) == "" {
		message = ""
	}
	page.Title = webtemplates.ErrorPageTitle(statusCode, page.Loc)
	if renderErr := pagerender.Write(w, r, page, statusCode, webtemplates.ErrorState(page, statusCode, message)); renderErr != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// NotFound writes the localized 404 page.
func NotFound(w http.ResponseWriter, r *http.Request, deps module.Dependencies, surface pagerender.Surface) {
	Write(w, r, apperrors.E(apperrors.KindNotFound, "not found"), deps, surface)
}
