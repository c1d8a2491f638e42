package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/louisbranch/portfolio/internal/services/web/routepath"
)

type navItem struct {
	path string
	key  string
}

var publicNav = []navItem{
	{path: routepath.Home, key: "core.nav.home"},
	{path: routepath.Projects, key: "core.nav.projects"},
	{path: routepath.Experience, key: "core.nav.experience"},
}

var adminNav = []navItem{
	{path: routepath.AdminPrefix, key: "admin.dashboard.title"},
	{path: routepath.AdminProjects, key: "admin.projects.title"},
	{path: routepath.AdminExperiences, key: "admin.experiences.title"},
	{path: routepath.AdminSkills, key: "admin.skills.title"},
}

// Layout renders the document shell around body.
func Layout(page Page, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw("<!DOCTYPE html>")
		h.open("html", "lang", page.Lang)
		writeHead(h, page)
		h.open("body", "class", bodyClass(page))
		writeHeader(h, page)
		h.open("main", "id", "main")
		writeNotice(h, page.Notice)
		h.render(ctx, body)
		h.close("main")
		h.open("footer", "class", "site-footer")
		h.open("p")
		h.text("© " + T(page.Loc, "core.site.name") + ". " + T(page.Loc, "core.footer.rights"))
		h.close("p")
		h.close("footer")
		h.close("body")
		h.close("html")
	})
}

func bodyClass(page Page) string {
	if page.Admin {
		return "admin"
	}
	return "public"
}

func writeHead(h *html, page Page) {
	h.open("head")
	h.raw(`<meta charset="utf-8">`)
	h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	title := T(page.Loc, "core.site.name")
	if page.Title != "" {
		title = page.Title + " | " + title
	}
	h.element("title", title)
	if page.Description != "" {
		h.raw("<meta")
		h.attr("name", "description")
		h.attr("content", page.Description)
		h.raw(">")
	}
	if !page.Admin {
		h.raw(`<link rel="canonical"`)
		h.url("href", page.Absolute(page.L(page.Path)))
		h.raw(">")
		for _, alt := range page.Alternates {
			h.raw(`<link rel="alternate"`)
			h.attr("hreflang", alt.Lang)
			h.url("href", page.Absolute(alt.Href))
			h.raw(">")
		}
		if len(page.Alternates) > 0 {
			h.raw(`<link rel="alternate" hreflang="x-default"`)
			h.url("href", page.Absolute(page.Alternates[0].Href))
			h.raw(">")
		}
	} else {
		h.raw(`<meta name="robots" content="noindex">`)
	}
	h.raw(`<link rel="stylesheet" href="`, routepath.StaticPrefix, `site.css">`)
	h.close("head")
}

func writeHeader(h *html, page Page) {
	h.open("header", "class", "site-header")
	h.raw("<a")
	h.attr("class", "brand")
	h.url("href", page.L(routepath.Home))
	h.raw(">")
	h.text(T(page.Loc, "core.site.name"))
	h.close("a")

	items := publicNav
	if page.Admin {
		items = adminNav
	}
	h.open("nav", "aria-label", T(page.Loc, "core.nav.label"))
	h.open("ul")
	for _, item := range items {
		h.open("li")
		h.raw("<a")
		h.url("href", page.L(item.path))
		if page.Active(item.path) {
			h.attr("aria-current", "page")
		}
		h.raw(">")
		h.text(T(page.Loc, item.key))
		h.close("a")
		h.close("li")
	}
	h.close("ul")
	h.close("nav")

	if page.Admin && page.SignedIn {
		h.raw(`<form method="post" class="logout"`)
		h.url("action", page.L(routepath.Logout))
		h.raw(">")
		h.element("button", T(page.Loc, "admin.auth.logout"), "type", "submit")
		h.close("form")
	}

	if options := LanguageOptions(page); len(options) > 1 {
		h.open("ul", "class", "language-switcher", "aria-label", T(page.Loc, "core.language.label"))
		for _, option := range options {
			h.open("li")
			h.raw("<a")
			h.url("href", option.Href)
			h.attr("hreflang", option.Lang)
			h.attr("lang", option.Lang)
			if option.Active {
				h.attr("aria-current", "true")
			}
			h.raw(">")
			h.text(option.Label)
			h.close("a")
			h.close("li")
		}
		h.close("ul")
	}
	h.close("header")
}

func writeNotice(h *html, notice *Notice) {
	if notice == nil || notice.Message == "" {
		return
	}
	role := "status"
	if notice.Kind == "error" {
		role = "alert"
	}
	h.element("div", notice.Message, "class", "notice notice-"+notice.Kind, "role", role)
}
