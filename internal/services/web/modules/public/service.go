package public

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/louisbranch/portfolio/internal/platform/timeouts"
	"github.com/louisbranch/portfolio/internal/services/portfolio/domain"
	"github.com/louisbranch/portfolio/internal/services/portfolio/storage"
	apperrors "github.com/louisbranch/portfolio/internal/services/web/platform/errors"
	webtemplates "github.com/louisbranch/portfolio/internal/services/web/templates"
)

// featuredLimit caps the projects shown on the home page.
const featuredLimit = 3

// Reader loads published portfolio content.
type Reader interface {
	ListProjects(ctx context.Context, filter storage.ProjectFilter) ([]domain.Project, error)
	GetProjectBySlug(ctx context.Context, slug string) (domain.Project, error)
	ListExperiences(ctx context.Context) ([]domain.Experience, error)
	ListSkills(ctx context.Context) ([]domain.Skill, error)
}

type service struct {
	reader Reader
}

func newService(reader Reader) service {
	return service{reader: reader}
}

// loadHome fetches the home page sections concurrently.
func (s service) loadHome(ctx context.Context) (webtemplates.HomeView, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreOp)
	defer cancel()

	var view webtemplates.HomeView
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		projects, err := s.reader.ListProjects(gctx, storage.ProjectFilter{FeaturedOnly: true, Limit: featuredLimit})
		view.Featured = projects
		return err
	})
	g.Go(func() error {
		experiences, err := s.reader.ListExperiences(gctx)
		view.Experiences = experiences
		return err
	})
	g.Go(func() error {
		skills, err := s.reader.ListSkills(gctx)
		view.SkillGroups = domain.GroupSkills(skills)
		return err
	})
	if err := g.Wait(); err != nil {
		return webtemplates.HomeView{}, err
	}
	return view, nil
}

func (s service) loadProjects(ctx context.Context) ([]domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreOp)
	defer cancel()
	return s.reader.ListProjects(ctx, storage.ProjectFilter{})
}

// loadProject resolves a project by slug. Malformed slugs are not looked up.
func (s service) loadProject(ctx context.Context, slug string) (domain.Project, error) {
	slug = strings.TrimSpace(slug)
	if !domain.ValidSlug(slug) {
		return domain.Project{}, apperrors.E(apperrors.KindNotFound, "project not found")
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreOp)
	defer cancel()
	return s.reader.GetProjectBySlug(ctx, slug)
}

func (s service) loadExperiences(ctx context.Context) ([]domain.Experience, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreOp)
	defer cancel()
	return s.reader.ListExperiences(ctx)
}
