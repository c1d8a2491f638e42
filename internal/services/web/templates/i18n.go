package templates

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/portfolio/internal/platform/i18n/catalog"
)

// Localizer provides translated strings for page components.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T returns a translated string or a key-derived fallback.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	if keyString, ok := key.(string); ok {
		if len(args) > 0 {
			return fmt.Sprintf(keyString, args...)
		}
		return keyString
	}
	return ""
}

// Printer returns a message printer for locale backed by the embedded
// catalogs. Unknown locales print the base locale.
func Printer(locale string) *message.Printer {
	if !catalog.Default().HasLocale(locale) {
		locale = catalog.BaseLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}
