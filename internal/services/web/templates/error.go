package templates

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/portfolio/internal/services/web/routepath"
)

const (
	errorTitleNotFoundKey  = "errors.not_found.title"
	errorBodyNotFoundKey   = "errors.not_found.body"
	errorTitleServerKey    = "errors.server.title"
	errorBodyServerKey     = "errors.server.body"
	errorTitleForbiddenKey = "errors.forbidden.title"
	errorBodyForbiddenKey  = "errors.forbidden.body"
	errorTitleRequestKey   = "errors.request.title"
	errorBodyRequestKey    = "errors.request.body"
	errorBackHomeKey       = "errors.back_home"
)

// ErrorPageTitle returns the document title for an error status.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	title, _ := errorKeys(statusCode)
	return T(loc, title)
}

// ErrorState renders the error page body. message overrides the default
// body text when non-empty.
func ErrorState(page Page, statusCode int, message string) templ.Component {
	return component(func(ctx context.Context, h *html) {
		title, body := errorKeys(statusCode)
		if message == "" {
			message = T(page.Loc, body)
		}
		h.open("section", "class", "error-state")
		h.element("p", itoa(statusCode), "class", "status")
		h.element("h1", T(page.Loc, title))
		h.element("p", message)
		h.raw("<a")
		h.url("href", page.L(routepath.Home))
		h.raw(">")
		h.text(T(page.Loc, errorBackHomeKey))
		h.close("a")
		h.close("section")
	})
}

func errorKeys(statusCode int) (string, string) {
	switch {
	case statusCode == http.StatusNotFound:
		return errorTitleNotFoundKey, errorBodyNotFoundKey
	case statusCode == http.StatusForbidden:
		return errorTitleForbiddenKey, errorBodyForbiddenKey
	case statusCode >= http.StatusInternalServerError:
		return errorTitleServerKey, errorBodyServerKey
	default:
		return errorTitleRequestKey, errorBodyRequestKey
	}
}
