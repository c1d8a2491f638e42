package admin

import (
	"context"

	"github.com/louisbranch/portfolio/internal/platform/timeouts"
	"github.com/louisbranch/portfolio/internal/services/portfolio/domain"
	"github.com/louisbranch/portfolio/internal/services/portfolio/storage"
	webtemplates "github.com/louisbranch/portfolio/internal/services/web/templates"
)

// Reader loads content for admin listings and edit forms.
type Reader interface {
	Counts(ctx context.Context) (storage.Counts, error)
	ListProjects(ctx context.Context, filter storage.ProjectFilter) ([]domain.Project, error)
	GetProject(ctx context.Context, id string) (domain.Project, error)
	ListExperiences(ctx context.Context) ([]domain.Experience, error)
	GetExperience(ctx context.Context, id string) (domain.Experience, error)
	ListSkills(ctx context.Context) ([]domain.Skill, error)
	GetSkill(ctx context.Context, id string) (domain.Skill, error)
}

type service struct {
	reader Reader
}

func newService(reader Reader) service {
	return service{reader: reader}
}

func (s service) loadDashboard(ctx context.Context) (webtemplates.DashboardView, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreOp)
	defer cancel()
	counts, err := s.reader.Counts(ctx)
	if err != nil {
		return webtemplates.DashboardView{}, err
	}
	return webtemplates.DashboardView{
		Projects:    counts.Projects,
		Experiences: counts.Experiences,
		Skills:      counts.Skills,
	}, nil
}

func (s service) listProjects(ctx context.Context) ([]domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreOp)
	defer cancel()
	return s.reader.ListProjects(ctx, storage.ProjectFilter{})
}

func (s service) projectInput(ctx context.Context, id string) (domain.ProjectInput, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreOp)
	defer cancel()
	project, err := s.reader.GetProject(ctx, id)
	if err != nil {
		return domain.ProjectInput{}, err
	}
	return project.Input(), nil
}

func (s service) listExperiences(ctx context.Context) ([]domain.Experience, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreOp)
	defer cancel()
	return s.reader.ListExperiences(ctx)
}

func (s service) experienceInput(ctx context.Context, id string) (domain.ExperienceInput, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreOp)
	defer cancel()
	experience, err := s.reader.GetExperience(ctx, id)
	if err != nil {
		return domain.ExperienceInput{}, err
	}
	return experience.Input(), nil
}

func (s service) listSkills(ctx context.Context) ([]domain.Skill, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreOp)
	defer cancel()
	return s.reader.ListSkills(ctx)
}

func (s service) skillInput(ctx context.Context, id string) (domain.SkillInput, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreOp)
	defer cancel()
	skill, err := s.reader.GetSkill(ctx, id)
	if err != nil {
		return domain.SkillInput{}, err
	}
	return skill.Input(), nil
}
