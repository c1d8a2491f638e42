package templates

import "strings"

// Page provides shared layout context for every page.
type Page struct {
	Lang string
	Loc  Localizer
	// Path is the locale-free path of the current page.
	Path        string
	Title       string
	Description string
	// Link localizes a locale-free path for Lang.
	Link func(string) string
	// Alternates lists the page in every supported locale.
	Alternates []Alternate
	// BaseURL prefixes canonical and hreflang links when set.
	BaseURL  string
	Notice   *Notice
	Admin    bool
	SignedIn bool
}

// Alternate is one hreflang link.
type Alternate struct {
	Lang string
	Href string
}

// Notice is a resolved flash message.
type Notice struct {
	Kind    string
	Message string
}

// L localizes p for the page locale.
func (p Page) L(path string) string {
	if p.Link == nil {
		return path
	}
	return p.Link(path)
}

// Absolute joins BaseURL and a site-relative path.
func (p Page) Absolute(path string) string {
	return strings.TrimSuffix(p.BaseURL, "/") + path
}

// Active reports whether nav target is the current section.
func (p Page) Active(target string) bool {
	if target == "/" {
		return p.Path == "/"
	}
	return p.Path == target || strings.HasPrefix(p.Path, target+"/")
}
