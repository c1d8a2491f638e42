package domain

import (
	"regexp"
	"strings"
)

// MaxSlugLength bounds user-supplied slugs.
const MaxSlugLength = 100

var (
	// \s alone misses \v, NBSP, ideographic space and the other Unicode
	// separators.
	whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	nonSlugChars  = regexp.MustCompile(`[^\w-]+`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)
	slugPattern   = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// DeriveSlug turns a title into a URL-safe identifier.
//
// The result may be empty when the title has no word characters, and may keep
// underscores, which ValidSlug rejects.
func DeriveSlug(title string) string {
	s := strings.ToLower(title)
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ValidSlug reports whether s is lowercase alphanumeric runs joined by single hyphens.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
