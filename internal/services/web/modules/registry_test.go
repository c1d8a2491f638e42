package modules

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/portfolio/internal/services/portfolio/actions"
	"github.com/louisbranch/portfolio/internal/services/portfolio/storage/sqlite"
	"github.com/louisbranch/portfolio/internal/services/web/localerouter"
	module "github.com/louisbranch/portfolio/internal/services/web/module"
	"github.com/louisbranch/portfolio/internal/services/web/platform/sessioncookie"
)

func testDependencies(t *testing.T) (Dependencies, module.Dependencies) {
	t.Helper()
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "portfolio.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	acts, err := actions.New(actions.Deps{Store: store})
	if err != nil {
		t.Fatalf("actions.New: %v", err)
	}
	router, err := localerouter.New(localerouter.Config{Locales: []string{"en", "km"}, DefaultLocale: "en"})
	if err != nil {
		t.Fatalf("localerouter.New: %v", err)
	}
	sessions, err := sessioncookie.NewManager(sessioncookie.Config{Secret: strings.Repeat("k", 32), TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return Dependencies{Store: store, Actions: acts}, module.Dependencies{Locales: router, Sessions: sessions}
}

func TestDefaultModules(t *testing.T) {
	t.Parallel()

	deps, shared := testDependencies(t)
	public := DefaultPublicModules(deps, shared)
	protected := DefaultProtectedModules(deps, shared)

	var ids []string
	for _, m := range append(public, protected...) {
		ids = append(ids, m.ID())
	}
	if got, want := strings.Join(ids, ","), "public,adminauth,sandbox,admin"; got != want {
		t.Fatalf("module ids = %q, want %q", got, want)
	}
}

func TestDefaultModulesHaveUniquePrefixes(t *testing.T) {
	t.Parallel()

	deps, shared := testDependencies(t)
	seen := map[string]string{}
	for _, m := range append(DefaultPublicModules(deps, shared), DefaultProtectedModules(deps, shared)...) {
		mount, err := m.Mount()
		if err != nil {
			t.Fatalf("module %q mount error = %v", m.ID(), err)
		}
		if mount.Prefix == "" {
			t.Fatalf("module %q prefix is empty", m.ID())
		}
		if owner, ok := seen[mount.Prefix]; ok {
			t.Fatalf("module %q duplicates prefix %q of %q", m.ID(), mount.Prefix, owner)
		}
		seen[mount.Prefix] = m.ID()
	}
}

func TestModulesWithoutStoreFailToMount(t *testing.T) {
	t.Parallel()

	_, shared := testDependencies(t)
	for _, m := range []Module{DefaultPublicModules(Dependencies{}, shared)[0], DefaultProtectedModules(Dependencies{}, shared)[0]} {
		if _, err := m.Mount(); err == nil {
			t.Fatalf("module %q mounted without a store", m.ID())
		}
	}
}
