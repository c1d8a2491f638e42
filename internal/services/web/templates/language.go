package templates

// languageKeyPrefix names catalog keys holding each locale's own name.
const languageKeyPrefix = "core.language."

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Lang   string
	Label  string
	Href   string
	Active bool
}

// LanguageOptions builds switcher entries from the page alternates.
func LanguageOptions(page Page) []LanguageOption {
	options := make([]LanguageOption, 0, len(page.Alternates))
	for _, alt := range page.Alternates {
		options = append(options, LanguageOption{
			Lang:   alt.Lang,
			Label:  T(page.Loc, languageKeyPrefix+alt.Lang),
			Href:   alt.Href,
			Active: alt.Lang == page.Lang,
		})
	}
	return options
}
