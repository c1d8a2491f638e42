// Package routepath stores canonical HTTP paths for web modules.
//
// Paths are locale-free. Links are localized with localerouter.Localize and
// mux patterns are built with Pattern, which adds the {locale} segment.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Home                 = "/"
	Projects             = "/projects"
	ProjectsPrefix       = "/projects/"
	ProjectPattern       = ProjectsPrefix + "{slug}"
	Experience           = "/experience"
	AuthPrefix           = "/auth/"
	Login                = "/auth/login"
	Logout               = "/auth/logout"
	AdminPrefix          = "/admin/"
	AdminRoot            = "/admin"
	AdminProjects        = "/admin/projects"
	AdminProjectsNew     = "/admin/projects/new"
	AdminProjectsRoot    = "/admin/projects/"
	AdminExperiences     = "/admin/experiences"
	AdminExperiencesNew  = "/admin/experiences/new"
	AdminExperiencesRoot = "/admin/experiences/"
	AdminSkills          = "/admin/skills"
	AdminSkillsNew       = "/admin/skills/new"
	AdminSkillsRoot      = "/admin/skills/"
	AdminEditSuffix      = "/edit"
	AdminDeleteSuffix    = "/delete"

	APIPrefix    = "/api/"
	APIExecute   = "/api/execute"
	Metrics      = "/metrics"
	Health       = "/healthz"
	StaticPrefix = "/static/"

	// LocaleParam names the mux wildcard carrying the resolved locale.
	LocaleParam   = "locale"
	LocaleSegment = "{" + LocaleParam + "}"
	// NextQueryKey carries the post-login destination.
	NextQueryKey = "next"
)

// Pattern builds a ServeMux pattern for a locale-free path. An empty method
// matches every method. Home matches only the exact locale root.
func Pattern(method string, p string) string {
	localized := "/" + LocaleSegment + p
	if p == Home {
		localized = "/" + LocaleSegment + "/{$}"
	}
	if method == "" {
		return localized
	}
	return method + " " + localized
}

// Prefix builds a module mount prefix for a locale-free path prefix.
func Prefix(p string) string {
	return "/" + LocaleSegment + p
}

// Project returns the public project detail path.
func Project(slug string) string {
	return ProjectsPrefix + escapeSegment(slug)
}

// AdminProject returns the update target for a project.
func AdminProject(id string) string {
	return AdminProjectsRoot + escapeSegment(id)
}

// AdminProjectEdit returns the project edit form path.
func AdminProjectEdit(id string) string {
	return AdminProject(id) + AdminEditSuffix
}

// AdminProjectDelete returns the project delete target.
func AdminProjectDelete(id string) string {
	return AdminProject(id) + AdminDeleteSuffix
}

// AdminExperience returns the update target for an experience.
func AdminExperience(id string) string {
	return AdminExperiencesRoot + escapeSegment(id)
}

// AdminExperienceEdit returns the experience edit form path.
func AdminExperienceEdit(id string) string {
	return AdminExperience(id) + AdminEditSuffix
}

// AdminExperienceDelete returns the experience delete target.
func AdminExperienceDelete(id string) string {
	return AdminExperience(id) + AdminDeleteSuffix
}

// AdminSkill returns the update target for a skill.
func AdminSkill(id string) string {
	return AdminSkillsRoot + escapeSegment(id)
}

// AdminSkillEdit returns the skill edit form path.
func AdminSkillEdit(id string) string {
	return AdminSkill(id) + AdminEditSuffix
}

// AdminSkillDelete returns the skill delete target.
func AdminSkillDelete(id string) string {
	return AdminSkill(id) + AdminDeleteSuffix
}

// LoginWithNext returns the login path carrying a post-login destination.
func LoginWithNext(next string) string {
	next = SafeNext(next)
	if next == "" {
		return Login
	}
	return Login + "?" + url.Values{NextQueryKey: {next}}.Encode()
}

// SafeNext keeps only same-site absolute paths.
func SafeNext(next string) string {
	next = strings.TrimSpace(next)
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return ""
	}
	return next
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
