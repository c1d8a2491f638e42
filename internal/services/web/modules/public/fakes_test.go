package public

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/louisbranch/portfolio/internal/services/portfolio/domain"
	"github.com/louisbranch/portfolio/internal/services/portfolio/storage"
	"github.com/louisbranch/portfolio/internal/services/web/localerouter"
	module "github.com/louisbranch/portfolio/internal/services/web/module"
	"github.com/louisbranch/portfolio/internal/services/web/pagecache"
)

type fakeReader struct {
	mu          sync.Mutex
	projects    []domain.Project
	experiences []domain.Experience
	skills      []domain.Skill
	err         error
	filters     []storage.ProjectFilter
	listCalls   int
}

func (f *fakeReader) ListProjects(_ context.Context, filter storage.ProjectFilter) ([]domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Project
	for _, p := range f.projects {
		if filter.FeaturedOnly && !p.Featured {
			continue
		}
		out = append(out, p)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeReader) GetProjectBySlug(_ context.Context, slug string) (domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.Project{}, f.err
	}
	for _, p := range f.projects {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Project{}, storage.ErrNotFound
}

func (f *fakeReader) ListExperiences(context.Context) ([]domain.Experience, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.experiences, nil
}

func (f *fakeReader) ListSkills(context.Context) ([]domain.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.skills, nil
}

func testDeps(t *testing.T) module.Dependencies {
	t.Helper()
	router, err := localerouter.New(localerouter.Config{Locales: []string{"en", "km"}, DefaultLocale: "en"})
	if err != nil {
		t.Fatalf("localerouter.New: %v", err)
	}
	return module.Dependencies{Locales: router, BaseURL: "https://example.com"}
}

// mountedHandler serves the module the way composition mounts it.
func mountedHandler(t *testing.T, reader Reader, cache *pagecache.Cache) http.Handler {
	t.Helper()
	mount, err := New(reader, testDeps(t), cache).Mount()
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	root := http.NewServeMux()
	root.Handle(mount.Prefix, mount.Handler)
	return root
}

func sampleReader() *fakeReader {
	return &fakeReader{
		projects: []domain.Project{
			{ID: "p1", Slug: "ledger", Title: "Ledger", ShortDescription: "Double-entry bookkeeping.", Description: "A small ledger.", Technologies: []string{"Go"}, Featured: true},
			{ID: "p2", Slug: "atlas", Title: "Atlas", ShortDescription: "Map tiles server.", Description: "Serves tiles.", Technologies: []string{"Go", "SQLite"}},
		},
		experiences: []domain.Experience{
			{ID: "e1", Company: "Acme", Role: "Engineer", StartDate: "2020-01", Current: true, Description: "Built things."},
		},
		skills: []domain.Skill{
			{ID: "s1", Name: "Go", Category: "Languages", Level: 5},
			{ID: "s2", Name: "SQL", Category: "Data", Level: 4},
		},
	}
}
