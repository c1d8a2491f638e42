package weberror

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/louisbranch/portfolio/internal/services/web/localerouter"
	module "github.com/louisbranch/portfolio/internal/services/web/module"
	apperrors "github.com/louisbranch/portfolio/internal/services/web/platform/errors"
	"github.com/louisbranch/portfolio/internal/services/web/platform/pagerender"
)

func testDeps(t *testing.T, logger *zap.Logger) module.Dependencies {
	t.Helper()
	router, err := localerouter.New(localerouter.Config{Locales: []string{"en", "km"}, DefaultLocale: "en"})
	if err != nil {
		t.Fatalf("localerouter.New: %v", err)
	}
	return module.Dependencies{Locales: router, Logger: logger}
}

func TestWriteRendersErrorPageForNotFound(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/projects/missing", nil)
	rec := httptest.NewRecorder()
	NotFound(rec, req, testDeps(t, nil), pagerender.SurfacePublic)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, `class="error-state"`) {
		t.Fatalf("body missing error state: %q", body)
	}
}

func TestWriteDoesNotLeakUntypedErrors(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.ErrorLevel)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	Write(rec, req, errors.New("database exploded at row 7"), testDeps(t, zap.New(core)), pagerender.SurfacePublic)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "exploded") {
		t.Fatal("internal error text leaked")
	}
	if logs.FilterMessage("request failed").Len() != 1 {
		t.Fatalf("expected one error log, got %d", logs.Len())
	}
}

func TestWriteJSONForAPIClients(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/admin/projects", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	Write(rec, req, apperrors.EK(apperrors.KindNotFound, "Project not found.", "missing project"), testDeps(t, nil), pagerender.SurfaceAdmin)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["error"] != "Project not found." {
		t.Fatalf("payload = %v", payload)
	}
}

func TestPublicMessage(t *testing.T) {
	t.Parallel()

	if got := PublicMessage(nil, nil); got != "" {
		t.Fatalf("nil err = %q", got)
	}
	if got := PublicMessage(nil, apperrors.E(apperrors.KindConflict, "raw")); got != http.StatusText(http.StatusConflict) {
		t.Fatalf("conflict = %q", got)
	}
	if got := PublicMessage(nil, apperrors.EK(apperrors.KindRateLimited, "admin.auth.rate_limited", "raw")); got != "admin.auth.rate_limited" {
		t.Fatalf("keyed = %q", got)
	}
}
