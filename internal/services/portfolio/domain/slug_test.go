package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{title: "Hello, World!  Example", want: "hello-world-example"},
		{title: "  --Leading/Trailing--  ", want: "leadingtrailing"},
		{title: "My New Project", want: "my-new-project"},
		{title: "Go 1.26 Release", want: "go-126-release"},
		{title: "tabs\tand\nnewlines", want: "tabs-and-newlines"},
		{title: "a - b", want: "a-b"},
		{title: "Hello\u00a0World", want: "hello-world"},
		{title: "Tab\vVertical", want: "tab-vertical"},
		{title: "Ideo\u3000Space", want: "ideo-space"},
		{title: "em\u2003space\u202fnarrow", want: "em-space-narrow"},
		{title: "line\u2028sep", want: "line-sep"},
		{title: "\ufeffBOM Title", want: "bom-title"},
		{title: "snake_case title", want: "snake_case-title"},
		{title: "Café Menu", want: "caf-menu"},
		{title: "!!!", want: ""},
		{title: "", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.title, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, DeriveSlug(tc.title))
		})
	}
}

func TestDeriveSlugIsIdempotentOnValidSlugs(t *testing.T) {
	t.Parallel()

	for _, slug := range []string{"a", "abc", "my-new-project", "v2-api-3", "0-1-2"} {
		require.True(t, ValidSlug(slug), slug)
		require.Equal(t, slug, DeriveSlug(slug))
		require.Equal(t, DeriveSlug(slug), DeriveSlug(DeriveSlug(slug)))
	}
}

func TestDeriveSlugIsDeterministic(t *testing.T) {
	t.Parallel()

	title := "Portfolio  Site -- v2!"
	first := DeriveSlug(title)
	for range 10 {
		require.Equal(t, first, DeriveSlug(title))
	}
}

func TestValidSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		slug string
		want bool
	}{
		{slug: "hello-world", want: true},
		{slug: "a1-b2", want: true},
		{slug: "", want: false},
		{slug: "-leading", want: false},
		{slug: "trailing-", want: false},
		{slug: "double--hyphen", want: false},
		{slug: "Upper", want: false},
		{slug: "under_score", want: false},
		{slug: "space here", want: false},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, ValidSlug(tc.slug), "ValidSlug(%q)", tc.slug)
	}
}
