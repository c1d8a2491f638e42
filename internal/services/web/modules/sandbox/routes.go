package sandbox

import (
	"net/http"

	"github.com/louisbranch/portfolio/internal/services/web/platform/httpx"
	"github.com/louisbranch/portfolio/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodPost+" "+routepath.APIExecute, h.handleExecute)
	mux.Handle(routepath.APIExecute, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.APIPrefix, h.handleNotFound)
}
