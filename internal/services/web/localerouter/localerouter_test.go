package localerouter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	r, err := New(Config{Locales: []string{"en", "km"}, DefaultLocale: "en"})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	return r
}

func TestNewValidatesConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing default", cfg: Config{Locales: []string{"en"}}},
		{name: "default not supported", cfg: Config{Locales: []string{"km"}, DefaultLocale: "en"}},
		{name: "duplicate locale", cfg: Config{Locales: []string{"en", "en"}, DefaultLocale: "en"}},
		{name: "blank locale", cfg: Config{Locales: []string{"en", " "}, DefaultLocale: "en"}},
		{name: "slash in locale", cfg: Config{Locales: []string{"en", "k/m"}, DefaultLocale: "en"}},
		{name: "relative exclusion", cfg: Config{Locales: []string{"en"}, DefaultLocale: "en", ExcludedPrefixes: []string{"api"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := New(tc.cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestDecide(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	tests := []struct {
		path string
		want Decision
	}{
		// Default locale prefix is stripped with a redirect.
		{path: "/en", want: Decision{Action: ActionRedirect, Path: "/"}},
		{path: "/en/", want: Decision{Action: ActionRedirect, Path: "/"}},
		{path: "/en/about", want: Decision{Action: ActionRedirect, Path: "/about"}},
		{path: "/en/projects/my-app", want: Decision{Action: ActionRedirect, Path: "/projects/my-app"}},
		{path: "/en/about/", want: Decision{Action: ActionRedirect, Path: "/about/"}},

		// Other supported locales pass through.
		{path: "/km", want: Decision{Action: ActionPass}},
		{path: "/km/", want: Decision{Action: ActionPass}},
		{path: "/km/projects", want: Decision{Action: ActionPass}},

		// Everything else is rewritten onto the default locale.
		{path: "/", want: Decision{Action: ActionRewrite, Path: "/en/"}},
		{path: "/about", want: Decision{Action: ActionRewrite, Path: "/en/about"}},
		{path: "/projects/", want: Decision{Action: ActionRewrite, Path: "/en/projects/"}},
		{path: "/fr/about", want: Decision{Action: ActionRewrite, Path: "/en/fr/about"}},
		{path: "/english", want: Decision{Action: ActionRewrite, Path: "/en/english"}},
		{path: "/kmer", want: Decision{Action: ActionRewrite, Path: "/en/kmer"}},
		{path: "/EN/about", want: Decision{Action: ActionRewrite, Path: "/en/EN/about"}},
		{path: "", want: Decision{Action: ActionRewrite, Path: "/en/"}},

		// Exclusions short-circuit before locale handling.
		{path: "/api", want: Decision{Action: ActionPass}},
		{path: "/api/execute", want: Decision{Action: ActionPass}},
		{path: "/static/site.css", want: Decision{Action: ActionPass}},
		{path: "/static/", want: Decision{Action: ActionPass}},
		{path: "/metrics", want: Decision{Action: ActionPass}},
		{path: "/healthz", want: Decision{Action: ActionPass}},
		{path: "/favicon.ico", want: Decision{Action: ActionPass}},
		{path: "/en/robots.txt", want: Decision{Action: ActionPass}},
		{path: "/images/a.b/c", want: Decision{Action: ActionRewrite, Path: "/en/images/a.b/c"}},
		{path: "/trailing.", want: Decision{Action: ActionRewrite, Path: "/en/trailing."}},
		{path: "/apiary", want: Decision{Action: ActionRewrite, Path: "/en/apiary"}},
		{path: "/metrics/", want: Decision{Action: ActionPass}},
		{path: "/metrics-dashboard", want: Decision{Action: ActionRewrite, Path: "/en/metrics-dashboard"}},
		{path: "/healthzone", want: Decision{Action: ActionRewrite, Path: "/en/healthzone"}},
		{path: "/staticky", want: Decision{Action: ActionRewrite, Path: "/en/staticky"}},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tc.want, r.Decide(tc.path)); diff != "" {
				t.Fatalf("Decide(%q) mismatch (-want +got):\n%s", tc.path, diff)
			}
		})
	}
}

func TestDecidePropertiesForEveryLocale(t *testing.T) {
	t.Parallel()

	r, err := New(Config{Locales: []string{"en", "km", "fr", "pt-BR"}, DefaultLocale: "en"})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	rests := []string{"", "/", "/about", "/projects/slug", "/a/b/c/"}
	for _, locale := range r.Locales() {
		for _, rest := range rests {
			p := "/" + locale + rest
			got := r.Decide(p)
			if locale == r.DefaultLocale() {
				want := rest
				if want == "" {
					want = "/"
				}
				if got != (Decision{Action: ActionRedirect, Path: want}) {
					t.Fatalf("Decide(%q) = %+v, want redirect to %q", p, got, want)
				}
				continue
			}
			if got.Action != ActionPass {
				t.Fatalf("Decide(%q) = %+v, want pass", p, got)
			}
		}
	}
	for _, p := range []string{"/", "/about", "/x/y", "/projects/"} {
		got := r.Decide(p)
		if got != (Decision{Action: ActionRewrite, Path: "/en" + p}) {
			t.Fatalf("Decide(%q) = %+v, want rewrite", p, got)
		}
	}
}

func TestMiddlewareRedirectKeepsQuery(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	h := r.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next must not run on redirect")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/en/projects?page=2&tag=go", nil))

	if rr.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusTemporaryRedirect)
	}
	if got := rr.Header().Get("Location"); got != "/projects?page=2&tag=go" {
		t.Fatalf("Location = %q", got)
	}
}

func TestMiddlewareRewriteIsInternal(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	var (
		gotPath   string
		gotRaw    string
		gotLocale string
		gotQuery  string
	)
	h := r.Middleware(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		gotRaw = req.URL.RawPath
		gotQuery = req.URL.RawQuery
		gotLocale, _ = LocaleFromContext(req.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/projects/a%2Fb?x=1", nil)
	original := req.URL.Path
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr.Header().Get("Location") != "" {
		t.Fatal("rewrite must not set Location")
	}
	if gotPath != "/en/projects/a/b" || gotRaw != "" || gotQuery != "x=1" {
		t.Fatalf("rewritten url path=%q raw=%q query=%q", gotPath, gotRaw, gotQuery)
	}
	if gotLocale != "en" {
		t.Fatalf("locale = %q, want en", gotLocale)
	}
	if req.URL.Path != original {
		t.Fatalf("original request mutated: %q", req.URL.Path)
	}
}

func TestMiddlewarePassSetsLocale(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	var decisions []Decision
	r.onDecision = func(d Decision) { decisions = append(decisions, d) }

	var gotPath, gotLocale string
	h := r.Middleware(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		gotLocale = r.Resolve(req)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/km/projects", nil))
	if gotPath != "/km/projects" || gotLocale != "km" {
		t.Fatalf("path=%q locale=%q", gotPath, gotLocale)
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/execute", nil))
	if gotPath != "/api/execute" || gotLocale != "en" {
		t.Fatalf("excluded path=%q locale=%q", gotPath, gotLocale)
	}
	if len(decisions) != 2 || decisions[0].Action != ActionPass || decisions[1].Action != ActionPass {
		t.Fatalf("decisions = %+v", decisions)
	}
}

func TestMiddlewarePercentEncodedDefaultLocaleRedirects(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	h := r.Middleware(http.NotFoundHandler())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/%65n/about", nil))
	if rr.Code != http.StatusTemporaryRedirect || rr.Header().Get("Location") != "/about" {
		t.Fatalf("status=%d location=%q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestLocalizeAndStrip(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	tests := []struct {
		locale, path, want string
	}{
		{locale: "en", path: "/projects", want: "/projects"},
		{locale: "en", path: "/", want: "/"},
		{locale: "km", path: "/", want: "/km"},
		{locale: "km", path: "/projects/x", want: "/km/projects/x"},
		{locale: "km", path: "projects", want: "/km/projects"},
		{locale: "fr", path: "/projects", want: "/projects"},
	}
	for _, tc := range tests {
		if got := r.Localize(tc.locale, tc.path); got != tc.want {
			t.Fatalf("Localize(%q, %q) = %q, want %q", tc.locale, tc.path, got, tc.want)
		}
	}
	for in, want := range map[string]string{
		"/km/projects": "/projects",
		"/en":          "/",
		"/projects":    "/projects",
		"/km":          "/",
	} {
		if got := r.Strip(in); got != want {
			t.Fatalf("Strip(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestActionString(t *testing.T) {
	t.Parallel()

	for action, want := range map[Action]string{ActionPass: "pass", ActionRedirect: "redirect", ActionRewrite: "rewrite", Action(9): "unknown"} {
		if got := action.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", action, got, want)
		}
	}
}
