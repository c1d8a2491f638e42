package app

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/louisbranch/portfolio/internal/platform/metrics"
	"github.com/louisbranch/portfolio/internal/services/portfolio/actions"
	"github.com/louisbranch/portfolio/internal/services/portfolio/storage/sqlite"
	"github.com/louisbranch/portfolio/internal/services/web/localerouter"
	module "github.com/louisbranch/portfolio/internal/services/web/module"
	"github.com/louisbranch/portfolio/internal/services/web/modules"
	"github.com/louisbranch/portfolio/internal/services/web/platform/httpx"
	"github.com/louisbranch/portfolio/internal/services/web/platform/sessioncookie"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type serverFixture struct {
	store    *sqlite.Store
	metrics  *metrics.Metrics
	sessions *sessioncookie.Manager
	cfg      Config
	handler  http.Handler
}

func newServerFixture(t *testing.T) serverFixture {
	t.Helper()
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "portfolio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	m := metrics.New()
	router, err := localerouter.New(localerouter.Config{
		Locales:       []string{"en", "km"},
		DefaultLocale: "en",
		OnDecision:    func(d localerouter.Decision) { m.ObserveLocaleDecision(d.Action.String()) },
	})
	require.NoError(t, err)
	sessions, err := sessioncookie.NewManager(sessioncookie.Config{Secret: strings.Repeat("s", 32), TTL: time.Hour})
	require.NoError(t, err)
	acts, err := actions.New(actions.Deps{Store: store, Metrics: m})
	require.NoError(t, err)

	cfg := Config{
		HTTPAddr: "127.0.0.1:0",
		Store:    store,
		Modules:  modules.Dependencies{Actions: acts},
		Shared:   module.Dependencies{Locales: router, Sessions: sessions},
		Metrics:  m,
	}
	handler, err := NewHandler(cfg)
	require.NoError(t, err)
	return serverFixture{store: store, metrics: m, sessions: sessions, cfg: cfg, handler: handler}
}

func (f serverFixture) get(t *testing.T, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func TestNewHandlerRequiresLocaleRouter(t *testing.T) {
	t.Parallel()

	if _, err := NewHandler(Config{}); err == nil {
		t.Fatal("expected error without locale router")
	}
}

func TestNewServerRequiresAddress(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)
	cfg := f.cfg
	cfg.HTTPAddr = "  "
	if _, err := NewServer(cfg); err == nil {
		t.Fatal("expected error for blank address")
	}
}

func TestHealthReportsStoreState(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)
	rr := f.get(t, "/healthz")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	if body["status"] != "ok" {
		t.Fatalf("status body = %v", body)
	}

	require.NoError(t, f.store.Close())
	rr = f.get(t, "/healthz")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("closed store status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestMetricsEndpointExposesHTTPCounters(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)
	f.get(t, "/healthz")

	if got := testutil.ToFloat64(f.metrics.HTTPRequests.WithLabelValues("health", http.MethodGet, "200")); got != 1 {
		t.Fatalf("health requests = %v, want 1", got)
	}
	rr := f.get(t, "/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "portfolio_http_requests_total") {
		t.Fatal("metrics output missing http counter")
	}
}

func TestStaticAssetsBypassLocaleRouting(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)
	rr := f.get(t, "/static/site.css")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/css") {
		t.Fatalf("Content-Type = %q, want text/css", got)
	}
	if got := rr.Header().Get("Cache-Control"); got == "" {
		t.Fatal("expected Cache-Control header")
	}
	if rr := f.get(t, "/static/missing.css"); rr.Code != http.StatusNotFound {
		t.Fatalf("missing asset status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestDefaultLocalePrefixRedirects(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)
	rr := f.get(t, "/en/projects?page=2")
	if rr.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusTemporaryRedirect)
	}
	if got := rr.Header().Get("Location"); got != "/projects?page=2" {
		t.Fatalf("Location = %q, want %q", got, "/projects?page=2")
	}
	if got := testutil.ToFloat64(f.metrics.LocaleDecisions.WithLabelValues(localerouter.ActionRedirect.String())); got != 1 {
		t.Fatalf("redirect decisions = %v, want 1", got)
	}
}

func TestUnprefixedPathsServeDefaultLocale(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)
	for _, target := range []string{"/", "/projects", "/experience", "/km/", "/km/projects"} {
		rr := f.get(t, target)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, want %d", target, rr.Code, http.StatusOK)
		}
		if !strings.Contains(rr.Header().Get("Content-Type"), "text/html") {
			t.Fatalf("%s: Content-Type = %q", target, rr.Header().Get("Content-Type"))
		}
	}
	if rr := f.get(t, "/projects/missing"); rr.Code != http.StatusNotFound {
		t.Fatalf("missing project status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestAdminRequiresSession(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)
	tests := []struct {
		target string
		want   string
	}{
		{target: "/admin", want: "/auth/login?next=%2Fadmin"},
		{target: "/admin/projects", want: "/auth/login?next=%2Fadmin%2Fprojects"},
		{target: "/km/admin/skills", want: "/km/auth/login?next=%2Fkm%2Fadmin%2Fskills"},
	}
	for _, tc := range tests {
		rr := f.get(t, tc.target)
		if rr.Code != http.StatusFound {
			t.Fatalf("%s: status = %d, want %d", tc.target, rr.Code, http.StatusFound)
		}
		if got := rr.Header().Get("Location"); got != tc.want {
			t.Fatalf("%s: Location = %q, want %q", tc.target, got, tc.want)
		}
	}

	token, _, err := f.sessions.Issue("owner@example.com")
	require.NoError(t, err)
	rr := f.get(t, "/km/admin", &http.Cookie{Name: sessioncookie.Name, Value: token})
	if rr.Code != http.StatusOK {
		t.Fatalf("signed-in dashboard status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestLoginPageIsPublic(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)
	if rr := f.get(t, "/auth/login"); rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestExecuteWithoutUpstreamIsUnavailable(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/api/execute", strings.NewReader(`{"language":"go","code":"package main"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestResponsesCarryRequestID(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)
	rr := f.get(t, "/healthz")
	if rr.Header().Get(httpx.RequestIDHeader) == "" {
		t.Fatal("expected generated request id")
	}
}

func TestClassifyRoute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stripped string
		raw      string
		want     string
	}{
		{stripped: "/static/site.css", raw: "/static/site.css", want: "static"},
		{stripped: "/metrics", raw: "/metrics", want: "metrics"},
		{stripped: "/healthz", raw: "/healthz", want: "health"},
		{stripped: "/api/execute", raw: "/api/execute", want: "api"},
		{stripped: "/admin", raw: "/km/admin", want: "admin"},
		{stripped: "/admin/projects", raw: "/admin/projects", want: "admin"},
		{stripped: "/auth/login", raw: "/km/auth/login", want: "auth"},
		{stripped: "/administrator", raw: "/administrator", want: "public"},
		{stripped: "/projects/go", raw: "/km/projects/go", want: "public"},
	}
	for _, tc := range tests {
		if got := classifyRoute(tc.stripped, tc.raw); got != tc.want {
			t.Fatalf("classifyRoute(%q, %q) = %q, want %q", tc.stripped, tc.raw, got, tc.want)
		}
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	f := newServerFixture(t)
	srv, err := NewServer(f.cfg)
	require.NoError(t, err)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}, Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + listener.Addr().String() + "/healthz")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
