package domain

import "time"

// ProjectField names a project form field.
type ProjectField string

const (
	ProjectTitle            ProjectField = "title"
	ProjectSlug             ProjectField = "slug"
	ProjectShortDescription ProjectField = "shortDescription"
	ProjectDescription      ProjectField = "description"
	ProjectTechnologies     ProjectField = "technologiesString"
	ProjectFeatures         ProjectField = "featuresString"
	ProjectCoverImage       ProjectField = "coverImage"
	ProjectDetailsImages    ProjectField = "detailsImagesString"
	ProjectGithubURL        ProjectField = "githubUrl"
	ProjectLiveURL          ProjectField = "liveUrl"
	ProjectFeatured         ProjectField = "featured"
	ProjectSortOrder        ProjectField = "sortOrder"
)

var projectFields = map[string]ProjectField{}

func init() {
	for _, f := range []ProjectField{
		ProjectTitle, ProjectSlug, ProjectShortDescription, ProjectDescription,
		ProjectTechnologies, ProjectFeatures, ProjectCoverImage, ProjectDetailsImages,
		ProjectGithubURL, ProjectLiveURL, ProjectFeatured, ProjectSortOrder,
	} {
		projectFields[string(f)] = f
	}
}

// ParseProjectField maps a field or column name to a schema field.
func ParseProjectField(name string) (ProjectField, bool) {
	f, ok := projectFields[name]
	return f, ok
}

// ProjectResult is the outcome of a project action.
type ProjectResult = Result[ProjectField]

// ProjectInput is the submitted project form.
type ProjectInput struct {
	Title               string `json:"title"`
	Slug                string `json:"slug"`
	ShortDescription    string `json:"shortDescription"`
	Description         string `json:"description"`
	TechnologiesString  string `json:"technologiesString"`
	FeaturesString      string `json:"featuresString"`
	CoverImage          string `json:"coverImage"`
	DetailsImagesString string `json:"detailsImagesString"`
	GithubURL           string `json:"githubUrl"`
	LiveURL             string `json:"liveUrl"`
	Featured            bool   `json:"featured"`
	SortOrder           int    `json:"sortOrder"`
}

// Project is a persisted portfolio project.
type Project struct {
	ID               string
	Slug             string
	Title            string
	ShortDescription string
	Description      string
	Technologies     []string
	Features         []string
	CoverImage       string
	DetailsImages    []string
	GithubURL        string
	LiveURL          string
	Featured         bool
	SortOrder        int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks the input against the project schema.
func (in ProjectInput) Validate() FieldErrors[ProjectField] {
	errs := FieldErrors[ProjectField]{}
	checkLength(errs, ProjectTitle, "Title", clean(in.Title), 3, 100)
	if slug := clean(in.Slug); slug != "" {
		if runeLen(slug) > MaxSlugLength {
			errs.Add(ProjectSlug, "Slug must be at most 100 characters.")
		} else if !ValidSlug(slug) {
			errs.Add(ProjectSlug, "Slug may only contain lowercase letters, numbers and single hyphens.")
		}
	}
	checkLength(errs, ProjectShortDescription, "Short description", clean(in.ShortDescription), 10, 200)
	checkLength(errs, ProjectDescription, "Description", clean(in.Description), 20, 0)
	if len(ParseList(in.TechnologiesString)) == 0 {
		errs.Add(ProjectTechnologies, "At least one technology is required.")
	}
	checkOptionalURL(errs, ProjectCoverImage, "Cover image", clean(in.CoverImage))
	checkOptionalURL(errs, ProjectGithubURL, "GitHub URL", clean(in.GithubURL))
	checkOptionalURL(errs, ProjectLiveURL, "Live URL", clean(in.LiveURL))
	checkSortOrder(errs, ProjectSortOrder, in.SortOrder)
	return errs
}

// ResolveSlug returns the supplied slug or one derived from the title.
func (in ProjectInput) ResolveSlug() string {
	if slug := clean(in.Slug); slug != "" {
		return slug
	}
	return DeriveSlug(clean(in.Title))
}

// Project builds the normalized entity for slug. ID and timestamps are left
// for the caller.
func (in ProjectInput) Project(slug string) Project {
	return Project{
		Slug:             slug,
		Title:            clean(in.Title),
		ShortDescription: clean(in.ShortDescription),
		Description:      clean(in.Description),
		Technologies:     ParseList(in.TechnologiesString),
		Features:         ParseList(in.FeaturesString),
		CoverImage:       clean(in.CoverImage),
		DetailsImages:    ParseURLList(in.DetailsImagesString),
		GithubURL:        clean(in.GithubURL),
		LiveURL:          clean(in.LiveURL),
		Featured:         in.Featured,
		SortOrder:        in.SortOrder,
	}
}

// Input renders a stored project back into its form encoding.
func (p Project) Input() ProjectInput {
	return ProjectInput{
		Title:               p.Title,
		Slug:                p.Slug,
		ShortDescription:    p.ShortDescription,
		Description:         p.Description,
		TechnologiesString:  JoinList(p.Technologies),
		FeaturesString:      JoinList(p.Features),
		CoverImage:          p.CoverImage,
		DetailsImagesString: JoinList(p.DetailsImages),
		GithubURL:           p.GithubURL,
		LiveURL:             p.LiveURL,
		Featured:            p.Featured,
		SortOrder:           p.SortOrder,
	}
}
