package admin

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/portfolio/internal/services/portfolio/actions"
	"github.com/louisbranch/portfolio/internal/services/portfolio/domain"
	module "github.com/louisbranch/portfolio/internal/services/web/module"
	"github.com/louisbranch/portfolio/internal/services/web/platform/pagerender"
	"github.com/louisbranch/portfolio/internal/services/web/platform/weberror"
	webtemplates "github.com/louisbranch/portfolio/internal/services/web/templates"
)

type handlers struct {
	service service
	actions *actions.Actions
	deps    module.Dependencies
}

func newHandlers(s service, acts *actions.Actions, deps module.Dependencies) handlers {
	return handlers{service: s, actions: acts, deps: deps}
}

func (h handlers) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.loadDashboard(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	page := h.page(w, r, "admin.dashboard.title")
	h.write(w, r, page, http.StatusOK, webtemplates.DashboardPage(page, view))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.NotFound(w, r, h.deps, pagerender.SurfaceAdmin)
}

// page resolves admin layout context titled by titleKey.
func (h handlers) page(w http.ResponseWriter, r *http.Request, titleKey string) webtemplates.Page {
	page := pagerender.NewPage(w, r, h.deps, pagerender.SurfaceAdmin)
	page.Title = webtemplates.T(page.Loc, titleKey)
	return page
}

func (h handlers) write(w http.ResponseWriter, r *http.Request, page webtemplates.Page, status int, body templ.Component) {
	if err := pagerender.Write(w, r, page, status, body); err != nil {
		h.writeError(w, r, err)
	}
}

func (h handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.Write(w, r, err, h.deps, pagerender.SurfaceAdmin)
}

// link localizes p for the locale addressed by r.
func (h handlers) link(r *http.Request, p string) string {
	return h.deps.Link(h.deps.Locale(r), p)
}

// resultStatus maps an action result to the HTTP status of its response.
func resultStatus[F ~string](result domain.Result[F], success int) int {
	switch {
	case result.Success:
		return success
	case result.Message == actions.MsgInvalidForm:
		return http.StatusUnprocessableEntity
	case actions.IsConflict(result.Message):
		return http.StatusConflict
	case actions.IsNotFound(result.Message):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
