package catalog

import (
	"testing"
	"testing/fstest"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	for _, locale := range []string{"en", "km"} {
		if !bundle.HasLocale(locale) {
			t.Fatalf("expected locale %s", locale)
		}
	}
	if got := bundle.Namespaces(BaseLocale); len(got) == 0 {
		t.Fatal("expected base locale namespaces")
	}
}

func TestEmbeddedCatalogsTranslateEveryBaseKey(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	for _, locale := range bundle.Locales() {
		if missing := bundle.MissingKeys(locale); len(missing) > 0 {
			t.Fatalf("locale %s missing keys: %v", locale, missing)
		}
	}
}

func TestLoadFromFSRejectsCoreKeyOutsideCoreNamespace(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en/web.yaml": &fstest.MapFile{Data: []byte("locale: en\nnamespace: web\nmessages:\n  core.bad: nope\n")},
	}
	if _, err := LoadFromFS(fsys); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromFSRejectsDuplicateKeysAcrossNamespaces(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en/core.yaml": &fstest.MapFile{Data: []byte("locale: en\nnamespace: core\nmessages:\n  a.key: a\n")},
		"locales/en/web.yaml":  &fstest.MapFile{Data: []byte("locale: en\nnamespace: web\nmessages:\n  a.key: b\n")},
	}
	if _, err := LoadFromFS(fsys); err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestLoadFromFSRejectsLocaleMismatch(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en/core.yaml": &fstest.MapFile{Data: []byte("locale: km\nnamespace: core\nmessages:\n  a.key: a\n")},
	}
	if _, err := LoadFromFS(fsys); err == nil {
		t.Fatal("expected locale mismatch error")
	}
}

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/km/core.yaml": &fstest.MapFile{Data: []byte("locale: km\nnamespace: core\nmessages:\n  a.key: a\n")},
	}
	if _, err := LoadFromFS(fsys); err == nil {
		t.Fatal("expected missing base locale error")
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en/core.yaml": &fstest.MapFile{Data: []byte("locale: en\nnamespace: core\nmessages:\n  core.only_en: English\n  core.both: Both\n")},
		"locales/km/core.yaml": &fstest.MapFile{Data: []byte("locale: km\nnamespace: core\nmessages:\n  core.both: ទាំងពីរ\n")},
	}
	bundle, err := LoadFromFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, ok := bundle.Message("km", "core.both"); !ok || got != "ទាំងពីរ" {
		t.Fatalf("km core.both = %q, %v", got, ok)
	}
	if got, ok := bundle.Message("km", "core.only_en"); !ok || got != "English" {
		t.Fatalf("km core.only_en = %q, %v", got, ok)
	}
	if missing := bundle.MissingKeys("km"); len(missing) != 1 || missing[0] != "core.only_en" {
		t.Fatalf("missing = %v", missing)
	}
}

func TestDefaultRegistersPrinterMessages(t *testing.T) {
	Default()
	p := message.NewPrinter(language.MustParse("km"))
	want, ok := Default().Message("km", "core.nav.projects")
	if !ok {
		t.Fatal("expected core.nav.projects in km catalog")
	}
	if got := p.Sprintf("core.nav.projects"); got != want {
		t.Fatalf("printer = %q, want %q", got, want)
	}
}
