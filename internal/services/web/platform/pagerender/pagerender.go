// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	module "github.com/louisbranch/portfolio/internal/services/web/module"
	"github.com/louisbranch/portfolio/internal/services/web/platform/flash"
	"github.com/louisbranch/portfolio/internal/services/web/platform/httpx"
	webtemplates "github.com/louisbranch/portfolio/internal/services/web/templates"
)

// Surface selects public or admin page chrome.
type Surface int

const (
	SurfacePublic Surface = iota
	SurfaceAdmin
)

// NewPage resolves the layout context for r. Admin pages consume the pending
// flash notice; public pages never touch cookies so they stay cacheable.
func NewPage(w http.ResponseWriter, r *http.Request, deps module.Dependencies, surface Surface) webtemplates.Page {
	locale := deps.Locale(r)
	path := deps.CanonicalPath(r)
	page := webtemplates.Page{
		Lang:    locale,
		Loc:     webtemplates.Printer(locale),
		Path:    path,
		BaseURL: deps.BaseURL,
		Link: func(p string) string {
			return deps.Link(locale, p)
		},
		Admin: surface == SurfaceAdmin,
	}
	if deps.Locales != nil {
		for _, l := range deps.Locales.Locales() {
			page.Alternates = append(page.Alternates, webtemplates.Alternate{Lang: l, Href: deps.Link(l, path)})
		}
	}
	if page.Admin {
		page.SignedIn = deps.SignedIn(r)
		if notice, ok := flash.ReadAndClear(w, r, deps.SchemePolicy); ok {
			message := strings.TrimSpace(webtemplates.T(page.Loc, notice.Key))
			if message == "" {
				message = notice.Key
			}
			page.Notice = &webtemplates.Notice{Kind: string(notice.Kind), Message: message}
		}
	}
	return page
}

// Write renders body inside the document layout and writes it with status.
// Nothing is written when rendering fails.
func Write(w http.ResponseWriter, r *http.Request, page webtemplates.Page, status int, body templ.Component) error {
	if w == nil {
		return nil
	}
	if status <= 0 {
		status = http.StatusOK
	}
	var buf bytes.Buffer
	if err := webtemplates.Layout(page, body).Render(httpx.RequestContext(r), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
	return nil
}
