package actions

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/louisbranch/portfolio/internal/platform/metrics"
	"github.com/louisbranch/portfolio/internal/services/portfolio/domain"
	"github.com/louisbranch/portfolio/internal/services/portfolio/storage"
	"github.com/louisbranch/portfolio/internal/services/portfolio/storage/sqlite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// recordingInvalidator keeps every invalidated path.
type recordingInvalidator struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, paths ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, paths...)
}

func (r *recordingInvalidator) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

// fakeStore overrides selected store calls; the embedded Store serves the rest.
type fakeStore struct {
	storage.Store

	getProjectBySlug func(context.Context, string) (domain.Project, error)
	createProject    func(context.Context, domain.Project) error
	createSkill      func(context.Context, domain.Skill) error

	writes atomic.Int32
}

func (f *fakeStore) GetProjectBySlug(ctx context.Context, slug string) (domain.Project, error) {
	if f.getProjectBySlug != nil {
		return f.getProjectBySlug(ctx, slug)
	}
	return domain.Project{}, storage.ErrNotFound
}

func (f *fakeStore) CreateProject(ctx context.Context, p domain.Project) error {
	f.writes.Add(1)
	if f.createProject != nil {
		return f.createProject(ctx, p)
	}
	return nil
}

func (f *fakeStore) CreateSkill(ctx context.Context, s domain.Skill) error {
	f.writes.Add(1)
	if f.createSkill != nil {
		return f.createSkill(ctx, s)
	}
	return nil
}

type fixture struct {
	actions     *Actions
	store       storage.Store
	invalidator *recordingInvalidator
	metrics     *metrics.Metrics
	logs        *observer.ObservedLogs
}

func newFixture(t *testing.T, store storage.Store) fixture {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	inv := &recordingInvalidator{}
	m := metrics.New()
	var seq atomic.Int64
	a, err := New(Deps{
		Store:       store,
		Invalidator: inv,
		Logger:      zap.New(core),
		Metrics:     m,
		NewID:       func() string { return fmt.Sprintf("id-%d", seq.Add(1)) },
	})
	if err != nil {
		t.Fatalf("new actions: %v", err)
	}
	return fixture{actions: a, store: store, invalidator: inv, metrics: m, logs: logs}
}

func openTempStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "portfolio.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func validProject(title string) domain.ProjectInput {
	return domain.ProjectInput{
		Title:              title,
		ShortDescription:   "A short summary of it.",
		Description:        "A much longer description of the project.",
		TechnologiesString: "Go, SQLite",
	}
}
