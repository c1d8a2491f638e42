package admin

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/portfolio/internal/services/portfolio/domain"
	"github.com/louisbranch/portfolio/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/portfolio/internal/services/web/templates"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(routepath.Pattern(http.MethodGet, routepath.AdminRoot), h.handleDashboard)
	mux.HandleFunc(routepath.Pattern(http.MethodGet, routepath.AdminPrefix+"{$}"), h.handleDashboard)
	projectResource(h).register(mux)
	experienceResource(h).register(mux)
	skillResource(h).register(mux)
	mux.HandleFunc(routepath.Pattern(http.MethodGet, routepath.AdminPrefix+"{rest...}"), h.handleNotFound)
}

func projectResource(h handlers) resource[domain.ProjectInput, domain.ProjectField] {
	return resource[domain.ProjectInput, domain.ProjectField]{
		handlers: h,
		titleKey: "admin.projects.title",
		newKey:   "admin.projects.new",
		editKey:  "admin.projects.edit",
		listPath: routepath.AdminProjects,
		newPath:  routepath.AdminProjectsNew,
		itemPath: routepath.AdminProject,
		fromForm: projectFromForm,
		list: func(ctx context.Context, page webtemplates.Page) (templ.Component, error) {
			projects, err := h.service.listProjects(ctx)
			if err != nil {
				return nil, err
			}
			return webtemplates.ProjectListPage(page, projects), nil
		},
		load:   h.service.projectInput,
		form:   webtemplates.ProjectFormPage,
		create: h.actions.Projects.Create,
		update: h.actions.Projects.Update,
		remove: h.actions.Projects.Delete,
	}
}

func experienceResource(h handlers) resource[domain.ExperienceInput, domain.ExperienceField] {
	return resource[domain.ExperienceInput, domain.ExperienceField]{
		handlers: h,
		titleKey: "admin.experiences.title",
		newKey:   "admin.experiences.new",
		editKey:  "admin.experiences.edit",
		listPath: routepath.AdminExperiences,
		newPath:  routepath.AdminExperiencesNew,
		itemPath: routepath.AdminExperience,
		fromForm: experienceFromForm,
		list: func(ctx context.Context, page webtemplates.Page) (templ.Component, error) {
			experiences, err := h.service.listExperiences(ctx)
			if err != nil {
				return nil, err
			}
			return webtemplates.ExperienceListPage(page, experiences), nil
		},
		load:   h.service.experienceInput,
		form:   webtemplates.ExperienceFormPage,
		create: h.actions.Experiences.Create,
		update: h.actions.Experiences.Update,
		remove: h.actions.Experiences.Delete,
	}
}

func skillResource(h handlers) resource[domain.SkillInput, domain.SkillField] {
	return resource[domain.SkillInput, domain.SkillField]{
		handlers: h,
		titleKey: "admin.skills.title",
		newKey:   "admin.skills.new",
		editKey:  "admin.skills.edit",
		listPath: routepath.AdminSkills,
		newPath:  routepath.AdminSkillsNew,
		itemPath: routepath.AdminSkill,
		fromForm: skillFromForm,
		list: func(ctx context.Context, page webtemplates.Page) (templ.Component, error) {
			skills, err := h.service.listSkills(ctx)
			if err != nil {
				return nil, err
			}
			return webtemplates.SkillListPage(page, skills), nil
		},
		load:   h.service.skillInput,
		form:   webtemplates.SkillFormPage,
		create: h.actions.Skills.Create,
		update: h.actions.Skills.Update,
		remove: h.actions.Skills.Delete,
	}
}
