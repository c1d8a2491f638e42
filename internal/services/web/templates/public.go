package templates

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/portfolio/internal/services/portfolio/domain"
	"github.com/louisbranch/portfolio/internal/services/web/routepath"
)

// HomeView carries the home page sections.
type HomeView struct {
	Featured    []domain.Project
	Experiences []domain.Experience
	SkillGroups []domain.SkillGroup
}

// HomePage renders the hero, featured projects, timeline and skills.
func HomePage(page Page, view HomeView) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.open("section", "class", "hero")
		h.element("h1", T(page.Loc, "public.home.hero.heading"))
		h.element("p", T(page.Loc, "public.home.hero.body"))
		h.close("section")

		h.open("section", "class", "featured")
		h.element("h2", T(page.Loc, "public.home.featured"))
		writeProjectCards(h, page, view.Featured)
		h.raw("<a")
		h.attr("class", "more")
		h.url("href", page.L(routepath.Projects))
		h.raw(">")
		h.text(T(page.Loc, "public.home.view_all"))
		h.close("a")
		h.close("section")

		if len(view.Experiences) > 0 {
			h.open("section", "class", "timeline")
			h.element("h2", T(page.Loc, "public.home.experience"))
			writeTimeline(h, page, view.Experiences)
			h.close("section")
		}

		if len(view.SkillGroups) > 0 {
			h.open("section", "class", "skills")
			h.element("h2", T(page.Loc, "public.home.skills"))
			for _, group := range view.SkillGroups {
				h.open("div", "class", "skill-group")
				h.element("h3", group.Category)
				h.open("ul")
				for _, skill := range group.Skills {
					h.open("li")
					h.element("span", skill.Name, "class", "skill-name")
					h.element("meter", T(page.Loc, "public.skills.level", skill.Level, domain.MaxSkillLevel),
						"min", itoa(domain.MinSkillLevel), "max", itoa(domain.MaxSkillLevel), "value", itoa(skill.Level))
					h.close("li")
				}
				h.close("ul")
				h.close("div")
			}
			h.close("section")
		}
	})
}

// ProjectsPage renders every project.
func ProjectsPage(page Page, projects []domain.Project) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.element("h1", T(page.Loc, "public.projects.title"))
		writeProjectCards(h, page, projects)
	})
}

// ProjectPage renders one project in full.
func ProjectPage(page Page, project domain.Project) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.open("article", "class", "project")
		h.raw("<a")
		h.attr("class", "back")
		h.url("href", page.L(routepath.Projects))
		h.raw(">")
		h.text(T(page.Loc, "public.project.back"))
		h.close("a")
		h.element("h1", project.Title)
		if project.Featured {
			h.element("span", T(page.Loc, "public.project.featured"), "class", "badge")
		}
		h.element("p", project.ShortDescription, "class", "lead")
		if project.CoverImage != "" {
			writeImage(h, project.CoverImage, project.Title, "cover")
		}
		for _, paragraph := range paragraphs(project.Description) {
			h.element("p", paragraph)
		}
		writeTagList(h, T(page.Loc, "public.project.technologies"), project.Technologies, "technologies")
		if len(project.Features) > 0 {
			h.element("h2", T(page.Loc, "public.project.features"))
			h.open("ul", "class", "features")
			for _, feature := range project.Features {
				h.element("li", feature)
			}
			h.close("ul")
		}
		if len(project.DetailsImages) > 0 {
			h.element("h2", T(page.Loc, "public.project.gallery"))
			h.open("div", "class", "gallery")
			for _, src := range project.DetailsImages {
				writeImage(h, src, project.Title, "detail")
			}
			h.close("div")
		}
		writeProjectLinks(h, page, project)
		h.close("article")
	})
}

// ExperiencePage renders the full career timeline.
func ExperiencePage(page Page, experiences []domain.Experience) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.element("h1", T(page.Loc, "public.experience.title"))
		if len(experiences) == 0 {
			h.element("p", T(page.Loc, "public.experience.empty"), "class", "empty")
			return
		}
		writeTimeline(h, page, experiences)
	})
}

func writeProjectCards(h *html, page Page, projects []domain.Project) {
	if len(projects) == 0 {
		h.element("p", T(page.Loc, "public.projects.empty"), "class", "empty")
		return
	}
	h.open("ul", "class", "project-cards")
	for _, project := range projects {
		h.open("li", "class", "project-card")
		if project.CoverImage != "" {
			writeImage(h, project.CoverImage, project.Title, "thumb")
		}
		h.open("h3")
		h.raw("<a")
		h.url("href", page.L(routepath.Project(project.Slug)))
		h.raw(">")
		h.text(project.Title)
		h.close("a")
		h.close("h3")
		h.element("p", project.ShortDescription)
		writeTagList(h, "", project.Technologies, "technologies")
		h.close("li")
	}
	h.close("ul")
}

func writeTimeline(h *html, page Page, experiences []domain.Experience) {
	h.open("ol", "class", "timeline-entries")
	for _, exp := range experiences {
		h.open("li")
		h.element("h3", exp.Role+" · "+exp.Company)
		end := exp.EndDate
		if exp.Current {
			end = T(page.Loc, "public.experience.present")
		}
		h.open("p", "class", "period")
		h.element("time", exp.StartDate, "datetime", exp.StartDate)
		h.text(" – ")
		if exp.Current {
			h.text(end)
		} else {
			h.element("time", end, "datetime", end)
		}
		if exp.Location != "" {
			h.text(" · " + exp.Location)
		}
		h.close("p")
		for _, paragraph := range paragraphs(exp.Description) {
			h.element("p", paragraph)
		}
		writeTagList(h, "", exp.Technologies, "technologies")
		h.close("li")
	}
	h.close("ol")
}

func writeTagList(h *html, heading string, items []string, class string) {
	if len(items) == 0 {
		return
	}
	if heading != "" {
		h.element("h2", heading)
	}
	h.open("ul", "class", "tags "+class)
	for _, item := range items {
		h.element("li", item)
	}
	h.close("ul")
}

func writeImage(h *html, src string, alt string, class string) {
	h.raw("<img")
	h.url("src", src)
	h.attr("alt", alt)
	h.attr("class", class)
	h.attr("loading", "lazy")
	h.raw(">")
}

func writeProjectLinks(h *html, page Page, project domain.Project) {
	if project.GithubURL == "" && project.LiveURL == "" {
		return
	}
	h.open("p", "class", "project-links")
	if project.GithubURL != "" {
		writeExternalLink(h, project.GithubURL, T(page.Loc, "public.project.source"))
	}
	if project.LiveURL != "" {
		writeExternalLink(h, project.LiveURL, T(page.Loc, "public.project.live"))
	}
	h.close("p")
}

func writeExternalLink(h *html, href string, label string) {
	h.raw("<a")
	h.url("href", href)
	h.attr("rel", "noopener noreferrer")
	h.attr("target", "_blank")
	h.raw(">")
	h.text(label)
	h.close("a")
}

func paragraphs(text string) []string {
	var out []string
	for _, block := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if block = strings.TrimSpace(block); block != "" {
			out = append(out, block)
		}
	}
	return out
}
