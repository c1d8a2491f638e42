package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/louisbranch/portfolio/internal/services/portfolio/domain"
	"github.com/louisbranch/portfolio/internal/services/web/routepath"
)

// DashboardView carries the admin landing counts.
type DashboardView struct {
	Projects    int
	Experiences int
	Skills      int
}

// DashboardPage renders entity counts with links to each list.
func DashboardPage(page Page, view DashboardView) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.element("h1", T(page.Loc, "admin.dashboard.title"))
		h.open("ul", "class", "dashboard-counts")
		for _, entry := range []struct {
			key   string
			path  string
			count int
		}{
			{key: "admin.projects.title", path: routepath.AdminProjects, count: view.Projects},
			{key: "admin.experiences.title", path: routepath.AdminExperiences, count: view.Experiences},
			{key: "admin.skills.title", path: routepath.AdminSkills, count: view.Skills},
		} {
			h.open("li")
			h.raw("<a")
			h.url("href", page.L(entry.path))
			h.raw(">")
			h.element("strong", itoa(entry.count))
			h.text(" " + T(page.Loc, entry.key))
			h.close("a")
			h.close("li")
		}
		h.close("ul")
	})
}

type tableRow struct {
	cells      []string
	editPath   string
	deletePath string
}

// ProjectListPage renders the admin project table.
func ProjectListPage(page Page, projects []domain.Project) templ.Component {
	rows := make([]tableRow, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, tableRow{
			cells:      []string{p.Title, p.Slug, yesNo(page, p.Featured), itoa(p.SortOrder)},
			editPath:   routepath.AdminProjectEdit(p.ID),
			deletePath: routepath.AdminProjectDelete(p.ID),
		})
	}
	return listPage(page, "admin.projects.title", "admin.projects.new", routepath.AdminProjectsNew,
		[]string{"admin.field.title", "admin.field.slug", "admin.field.featured", "admin.field.sort_order"}, rows)
}

// ExperienceListPage renders the admin experience table.
func ExperienceListPage(page Page, experiences []domain.Experience) templ.Component {
	rows := make([]tableRow, 0, len(experiences))
	for _, e := range experiences {
		end := e.EndDate
		if e.Current {
			end = T(page.Loc, "public.experience.present")
		}
		rows = append(rows, tableRow{
			cells:      []string{e.Company, e.Role, e.StartDate + " – " + end, itoa(e.SortOrder)},
			editPath:   routepath.AdminExperienceEdit(e.ID),
			deletePath: routepath.AdminExperienceDelete(e.ID),
		})
	}
	return listPage(page, "admin.experiences.title", "admin.experiences.new", routepath.AdminExperiencesNew,
		[]string{"admin.field.company", "admin.field.role", "admin.field.period", "admin.field.sort_order"}, rows)
}

// SkillListPage renders the admin skill table.
func SkillListPage(page Page, skills []domain.Skill) templ.Component {
	rows := make([]tableRow, 0, len(skills))
	for _, s := range skills {
		rows = append(rows, tableRow{
			cells:      []string{s.Name, s.Category, itoa(s.Level), itoa(s.SortOrder)},
			editPath:   routepath.AdminSkillEdit(s.ID),
			deletePath: routepath.AdminSkillDelete(s.ID),
		})
	}
	return listPage(page, "admin.skills.title", "admin.skills.new", routepath.AdminSkillsNew,
		[]string{"admin.field.name", "admin.field.category", "admin.field.level", "admin.field.sort_order"}, rows)
}

func listPage(page Page, titleKey, newKey, newPath string, headerKeys []string, rows []tableRow) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.element("h1", T(page.Loc, titleKey))
		h.raw("<a")
		h.attr("class", "button")
		h.url("href", page.L(newPath))
		h.raw(">")
		h.text(T(page.Loc, newKey))
		h.close("a")
		if len(rows) == 0 {
			h.element("p", T(page.Loc, "admin.list.empty"), "class", "empty")
			return
		}
		h.open("table")
		h.open("thead")
		h.open("tr")
		for _, key := range headerKeys {
			h.element("th", T(page.Loc, key), "scope", "col")
		}
		h.element("th", T(page.Loc, "admin.list.actions"), "scope", "col")
		h.close("tr")
		h.close("thead")
		h.open("tbody")
		for _, row := range rows {
			h.open("tr")
			for _, cell := range row.cells {
				h.element("td", cell)
			}
			h.open("td", "class", "row-actions")
			h.raw("<a")
			h.url("href", page.L(row.editPath))
			h.raw(">")
			h.text(T(page.Loc, "admin.list.edit"))
			h.close("a")
			h.raw(`<form method="post"`)
			h.url("action", page.L(row.deletePath))
			h.attr("data-confirm", T(page.Loc, "admin.list.confirm_delete"))
			h.raw(">")
			h.element("button", T(page.Loc, "admin.list.delete"), "type", "submit")
			h.close("form")
			h.close("td")
			h.close("tr")
		}
		h.close("tbody")
		h.close("table")
	})
}

func yesNo(page Page, v bool) string {
	if v {
		return T(page.Loc, "admin.list.yes")
	}
	return T(page.Loc, "admin.list.no")
}

type inputKind string

const (
	inputText     inputKind = "text"
	inputTextarea inputKind = "textarea"
	inputURL      inputKind = "url"
	inputNumber   inputKind = "number"
	inputMonth    inputKind = "month"
	inputCheckbox inputKind = "checkbox"
	inputEmail    inputKind = "email"
	inputPassword inputKind = "password"
)

type formField struct {
	name     string
	labelKey string
	helpKey  string
	kind     inputKind
	value    string
	checked  bool
	required bool
}

// FormView is the state of an entity form between submissions.
type FormView struct {
	// Action is the locale-free form target.
	Action string
	// Message is the result message of the last submission, if it failed.
	Message string
	Errors  map[string][]string
}

// FieldErrors converts typed field errors for rendering.
func FieldErrors[F ~string](errs map[F][]string) map[string][]string {
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string][]string, len(errs))
	for field, messages := range errs {
		out[string(field)] = messages
	}
	return out
}

// ProjectFormPage renders the project create/edit form.
func ProjectFormPage(page Page, view FormView, in domain.ProjectInput) templ.Component {
	return formPage(page, view, []formField{
		{name: string(domain.ProjectTitle), labelKey: "admin.field.title", kind: inputText, value: in.Title, required: true},
		{name: string(domain.ProjectSlug), labelKey: "admin.field.slug", helpKey: "admin.field.slug_help", kind: inputText, value: in.Slug},
		{name: string(domain.ProjectShortDescription), labelKey: "admin.field.short_description", kind: inputText, value: in.ShortDescription, required: true},
		{name: string(domain.ProjectDescription), labelKey: "admin.field.description", kind: inputTextarea, value: in.Description, required: true},
		{name: string(domain.ProjectTechnologies), labelKey: "admin.field.technologies", helpKey: "admin.field.list_help", kind: inputText, value: in.TechnologiesString, required: true},
		{name: string(domain.ProjectFeatures), labelKey: "admin.field.features", helpKey: "admin.field.list_help", kind: inputTextarea, value: in.FeaturesString},
		{name: string(domain.ProjectCoverImage), labelKey: "admin.field.cover_image", kind: inputURL, value: in.CoverImage},
		{name: string(domain.ProjectDetailsImages), labelKey: "admin.field.details_images", helpKey: "admin.field.list_help", kind: inputTextarea, value: in.DetailsImagesString},
		{name: string(domain.ProjectGithubURL), labelKey: "admin.field.github_url", kind: inputURL, value: in.GithubURL},
		{name: string(domain.ProjectLiveURL), labelKey: "admin.field.live_url", kind: inputURL, value: in.LiveURL},
		{name: string(domain.ProjectFeatured), labelKey: "admin.field.featured", kind: inputCheckbox, checked: in.Featured},
		{name: string(domain.ProjectSortOrder), labelKey: "admin.field.sort_order", kind: inputNumber, value: itoa(in.SortOrder)},
	}, routepath.AdminProjects)
}

// ExperienceFormPage renders the experience create/edit form.
func ExperienceFormPage(page Page, view FormView, in domain.ExperienceInput) templ.Component {
	return formPage(page, view, []formField{
		{name: string(domain.ExperienceCompany), labelKey: "admin.field.company", kind: inputText, value: in.Company, required: true},
		{name: string(domain.ExperienceRole), labelKey: "admin.field.role", kind: inputText, value: in.Role, required: true},
		{name: string(domain.ExperienceLocation), labelKey: "admin.field.location", kind: inputText, value: in.Location},
		{name: string(domain.ExperienceStartDate), labelKey: "admin.field.start_date", kind: inputMonth, value: in.StartDate, required: true},
		{name: string(domain.ExperienceEndDate), labelKey: "admin.field.end_date", kind: inputMonth, value: in.EndDate},
		{name: string(domain.ExperienceCurrent), labelKey: "admin.field.current", kind: inputCheckbox, checked: in.Current},
		{name: string(domain.ExperienceDescription), labelKey: "admin.field.description", kind: inputTextarea, value: in.Description, required: true},
		{name: string(domain.ExperienceTechnologies), labelKey: "admin.field.technologies", helpKey: "admin.field.list_help", kind: inputText, value: in.TechnologiesString},
		{name: string(domain.ExperienceSortOrder), labelKey: "admin.field.sort_order", kind: inputNumber, value: itoa(in.SortOrder)},
	}, routepath.AdminExperiences)
}

// SkillFormPage renders the skill create/edit form.
func SkillFormPage(page Page, view FormView, in domain.SkillInput) templ.Component {
	level := ""
	if in.Level != 0 {
		level = itoa(in.Level)
	}
	return formPage(page, view, []formField{
		{name: string(domain.SkillName), labelKey: "admin.field.name", kind: inputText, value: in.Name, required: true},
		{name: string(domain.SkillCategory), labelKey: "admin.field.category", kind: inputText, value: in.Category, required: true},
		{name: string(domain.SkillLevel), labelKey: "admin.field.level", kind: inputNumber, value: level, required: true},
		{name: string(domain.SkillSortOrder), labelKey: "admin.field.sort_order", kind: inputNumber, value: itoa(in.SortOrder)},
	}, routepath.AdminSkills)
}

func formPage(page Page, view FormView, fields []formField, cancelPath string) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.element("h1", page.Title)
		if view.Message != "" {
			h.element("p", T(page.Loc, view.Message), "class", "form-error", "role", "alert")
		}
		h.raw(`<form method="post" novalidate`)
		h.url("action", page.L(view.Action))
		h.raw(">")
		for _, f := range fields {
			writeField(h, page, f, view.Errors[f.name])
		}
		h.open("div", "class", "form-actions")
		h.element("button", T(page.Loc, "admin.form.save"), "type", "submit")
		h.raw("<a")
		h.url("href", page.L(cancelPath))
		h.raw(">")
		h.text(T(page.Loc, "admin.form.cancel"))
		h.close("a")
		h.close("div")
		h.close("form")
	})
}

func writeField(h *html, page Page, f formField, errs []string) {
	id := "field-" + f.name
	class := "field"
	if len(errs) > 0 {
		class += " has-error"
	}
	h.open("div", "class", class)
	if f.kind == inputCheckbox {
		h.raw(`<input type="checkbox" value="true"`)
		h.attr("id", id)
		h.attr("name", f.name)
		if f.checked {
			h.raw(" checked")
		}
		h.raw(">")
		h.element("label", T(page.Loc, f.labelKey), "for", id)
	} else {
		h.element("label", T(page.Loc, f.labelKey), "for", id)
		if f.kind == inputTextarea {
			h.raw("<textarea")
			h.attr("id", id)
			h.attr("name", f.name)
			h.attr("rows", "6")
			writeFieldState(h, f, errs)
			h.raw(">")
			h.text(f.value)
			h.close("textarea")
		} else {
			h.raw("<input")
			h.attr("type", string(f.kind))
			h.attr("id", id)
			h.attr("name", f.name)
			h.attr("value", f.value)
			writeFieldState(h, f, errs)
			h.raw(">")
		}
	}
	if f.helpKey != "" {
		h.element("small", T(page.Loc, f.helpKey), "id", id+"-help")
	}
	if len(errs) > 0 {
		h.open("ul", "class", "field-errors", "id", id+"-errors")
		for _, msg := range errs {
			h.element("li", T(page.Loc, msg))
		}
		h.close("ul")
	}
	h.close("div")
}

func writeFieldState(h *html, f formField, errs []string) {
	if f.required {
		h.raw(" required")
	}
	if len(errs) > 0 {
		h.attr("aria-invalid", "true")
		h.attr("aria-describedby", "field-"+f.name+"-errors")
	}
}

// LoginView is the state of the admin login form.
type LoginView struct {
	Email string
	Next  string
	// ErrorKey names the catalog message shown above the form.
	ErrorKey string
}

// LoginPage renders the admin sign-in form.
func LoginPage(page Page, view LoginView) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.element("h1", T(page.Loc, "admin.auth.login.title"))
		if view.ErrorKey != "" {
			h.element("p", T(page.Loc, view.ErrorKey), "class", "form-error", "role", "alert")
		}
		h.raw(`<form method="post"`)
		h.url("action", page.L(routepath.Login))
		h.raw(">")
		if view.Next != "" {
			h.raw(`<input type="hidden" name="next"`)
			h.attr("value", view.Next)
			h.raw(">")
		}
		writeField(h, page, formField{name: "email", labelKey: "admin.auth.email", kind: inputEmail, value: view.Email, required: true}, nil)
		writeField(h, page, formField{name: "password", labelKey: "admin.auth.password", kind: inputPassword, required: true}, nil)
		h.element("button", T(page.Loc, "admin.auth.submit"), "type", "submit")
		h.close("form")
	})
}
