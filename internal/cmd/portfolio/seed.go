package portfolio

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/louisbranch/portfolio/internal/platform/logging"
	"github.com/louisbranch/portfolio/internal/services/portfolio/actions"
	"github.com/louisbranch/portfolio/internal/services/portfolio/domain"
)

var sampleProject = domain.ProjectInput{
	Title:              "Portfolio Site",
	ShortDescription:   "A multilingual portfolio with an admin panel.",
	Description:        "Server-rendered portfolio with English and Khmer pages, a page cache and a sandboxed code runner.",
	TechnologiesString: "Go, SQLite, templ, Prometheus",
	FeaturesString:     "Locale routing, Admin panel, Page cache, Code sandbox",
	GithubURL:          "https://github.com/louisbranch/portfolio",
	Featured:           true,
}

var sampleExperience = domain.ExperienceInput{
	Company:            "Example Labs",
	Role:               "Software Engineer",
	Location:           "Phnom Penh",
	StartDate:          "2021-03",
	Current:            true,
	Description:        "Builds and operates the HTTP services behind the product.",
	TechnologiesString: "Go, PostgreSQL, Kubernetes",
}

var sampleSkills = []domain.SkillInput{
	{Name: "Go", Category: "Languages", Level: 5, SortOrder: 0},
	{Name: "SQL", Category: "Languages", Level: 4, SortOrder: 1},
	{Name: "Kubernetes", Category: "Infrastructure", Level: 3, SortOrder: 0},
}

// seedOutcome counts what one seed run did.
type seedOutcome struct {
	Created int
	Skipped int
}

// Seed inserts the sample records through the actions layer. Records that
// already exist are skipped, so running it twice is harmless.
func Seed(ctx context.Context, cfg Config, logger *zap.Logger, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	store, err := openStore(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	acts, err := actions.New(actions.Deps{Store: store, Logger: logging.OrNop(logger)})
	if err != nil {
		return err
	}
	outcome, err := seed(ctx, acts, store, out)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "seed complete: %d created, %d skipped\n", outcome.Created, outcome.Skipped)
	return nil
}

func seed(ctx context.Context, acts *actions.Actions, experiences experienceLister, out io.Writer) (seedOutcome, error) {
	var outcome seedOutcome
	record := func(kind, name string, success bool, message string) error {
		switch {
		case success:
			outcome.Created++
			fmt.Fprintf(out, "created %s %q\n", kind, name)
		case actions.IsConflict(message):
			outcome.Skipped++
			fmt.Fprintf(out, "skipped %s %q: %s\n", kind, name, message)
		default:
			return fmt.Errorf("seed %s %q: %s", kind, name, message)
		}
		return nil
	}

	project := acts.Projects.Create(ctx, sampleProject)
	if err := record("project", sampleProject.Title, project.Success, project.Message); err != nil {
		return outcome, err
	}

	existing, err := experienceExists(ctx, experiences, sampleExperience)
	if err != nil {
		return outcome, err
	}
	if existing {
		outcome.Skipped++
		fmt.Fprintf(out, "skipped experience %q: already present\n", sampleExperience.Company)
	} else {
		experience := acts.Experiences.Create(ctx, sampleExperience)
		if err := record("experience", sampleExperience.Company, experience.Success, experience.Message); err != nil {
			return outcome, err
		}
	}

	for _, in := range sampleSkills {
		skill := acts.Skills.Create(ctx, in)
		if err := record("skill", in.Name, skill.Success, skill.Message); err != nil {
			return outcome, err
		}
	}
	return outcome, nil
}

type experienceLister interface {
	ListExperiences(ctx context.Context) ([]domain.Experience, error)
}

// experienceExists reports whether an entry for the same company and role is
// stored. Experiences carry no unique index.
func experienceExists(ctx context.Context, experiences experienceLister, in domain.ExperienceInput) (bool, error) {
	entries, err := experiences.ListExperiences(ctx)
	if err != nil {
		return false, fmt.Errorf("list experiences: %w", err)
	}
	for _, e := range entries {
		if e.Company == in.Company && e.Role == in.Role {
			return true, nil
		}
	}
	return false, nil
}
