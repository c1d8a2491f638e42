package public

import (
	"net/http"

	"github.com/a-h/templ"

	module "github.com/louisbranch/portfolio/internal/services/web/module"
	"github.com/louisbranch/portfolio/internal/services/web/platform/pagerender"
	"github.com/louisbranch/portfolio/internal/services/web/platform/weberror"
	webtemplates "github.com/louisbranch/portfolio/internal/services/web/templates"
)

type handlers struct {
	service service
	deps    module.Dependencies
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{service: s, deps: deps}
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	if !h.deps.SupportedLocale(r) {
		h.handleNotFound(w, r)
		return
	}
	view, err := h.service.loadHome(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	page := pagerender.NewPage(w, r, h.deps, pagerender.SurfacePublic)
	page.Title = webtemplates.T(page.Loc, "public.home.title")
	page.Description = webtemplates.T(page.Loc, "public.home.description")
	h.write(w, r, page, webtemplates.HomePage(page, view))
}

func (h handlers) handleProjects(w http.ResponseWriter, r *http.Request) {
	if !h.deps.SupportedLocale(r) {
		h.handleNotFound(w, r)
		return
	}
	projects, err := h.service.loadProjects(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	page := pagerender.NewPage(w, r, h.deps, pagerender.SurfacePublic)
	page.Title = webtemplates.T(page.Loc, "public.projects.title")
	page.Description = webtemplates.T(page.Loc, "public.projects.description")
	h.write(w, r, page, webtemplates.ProjectsPage(page, projects))
}

func (h handlers) handleProject(w http.ResponseWriter, r *http.Request) {
	if !h.deps.SupportedLocale(r) {
		h.handleNotFound(w, r)
		return
	}
	project, err := h.service.loadProject(r.Context(), r.PathValue("slug"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	page := pagerender.NewPage(w, r, h.deps, pagerender.SurfacePublic)
	page.Title = project.Title
	page.Description = project.ShortDescription
	h.write(w, r, page, webtemplates.ProjectPage(page, project))
}

func (h handlers) handleExperience(w http.ResponseWriter, r *http.Request) {
	if !h.deps.SupportedLocale(r) {
		h.handleNotFound(w, r)
		return
	}
	experiences, err := h.service.loadExperiences(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	page := pagerender.NewPage(w, r, h.deps, pagerender.SurfacePublic)
	page.Title = webtemplates.T(page.Loc, "public.experience.title")
	page.Description = webtemplates.T(page.Loc, "public.experience.description")
	h.write(w, r, page, webtemplates.ExperiencePage(page, experiences))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.NotFound(w, r, h.deps, pagerender.SurfacePublic)
}

func (h handlers) write(w http.ResponseWriter, r *http.Request, page webtemplates.Page, body templ.Component) {
	if err := pagerender.Write(w, r, page, http.StatusOK, body); err != nil {
		h.writeError(w, r, err)
	}
}

func (h handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.Write(w, r, err, h.deps, pagerender.SurfacePublic)
}
