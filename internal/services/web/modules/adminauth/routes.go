package adminauth

import (
	"net/http"

	"github.com/louisbranch/portfolio/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(routepath.Pattern(http.MethodGet, routepath.Login), h.handleLoginPage)
	mux.HandleFunc(routepath.Pattern(http.MethodPost, routepath.Login), h.handleLogin)
	mux.HandleFunc(routepath.Pattern(http.MethodPost, routepath.Logout), h.handleLogout)
	mux.HandleFunc(routepath.Pattern(http.MethodGet, routepath.AuthPrefix+"{rest...}"), h.handleNotFound)
}
