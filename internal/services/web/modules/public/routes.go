package public

import (
	"net/http"

	"github.com/louisbranch/portfolio/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(routepath.Pattern(http.MethodGet, routepath.Home), h.handleHome)
	mux.HandleFunc(routepath.Pattern(http.MethodGet, routepath.Projects), h.handleProjects)
	mux.HandleFunc(routepath.Pattern(http.MethodGet, routepath.ProjectPattern), h.handleProject)
	mux.HandleFunc(routepath.Pattern(http.MethodGet, routepath.Experience), h.handleExperience)
	mux.HandleFunc(routepath.Pattern(http.MethodGet, "/{rest...}"), h.handleNotFound)
}
