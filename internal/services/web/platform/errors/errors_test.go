package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/louisbranch/portfolio/internal/services/portfolio/storage"
)

func TestHTTPStatusMapsKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{err: nil, want: http.StatusOK},
		{err: E(KindInvalidInput, "bad"), want: http.StatusBadRequest},
		{err: E(KindUnauthorized, "who"), want: http.StatusUnauthorized},
		{err: E(KindForbidden, "no"), want: http.StatusForbidden},
		{err: E(KindNotFound, "missing"), want: http.StatusNotFound},
		{err: E(KindConflict, "dup"), want: http.StatusConflict},
		{err: E(KindTooLarge, "big"), want: http.StatusRequestEntityTooLarge},
		{err: E(KindRateLimited, "slow down"), want: http.StatusTooManyRequests},
		{err: E(KindUnavailable, "down"), want: http.StatusServiceUnavailable},
		{err: E(KindBadGateway, "upstream"), want: http.StatusBadGateway},
		{err: E(KindUnknown, "?"), want: http.StatusInternalServerError},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
		{err: fmt.Errorf("get: %w", storage.ErrNotFound), want: http.StatusNotFound},
		{err: &storage.UniqueViolation{Fields: []string{"slug"}}, want: http.StatusConflict},
		{err: fmt.Errorf("wrapped: %w", E(KindNotFound, "x")), want: http.StatusNotFound},
	}
	for _, tc := range tests {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestErrorStringFallsBackToKind(t *testing.T) {
	t.Parallel()

	if got := (Error{Kind: KindForbidden}).Error(); got != string(KindForbidden) {
		t.Fatalf("Error() = %q", got)
	}
}

func TestLocalizationKey(t *testing.T) {
	t.Parallel()

	if got := LocalizationKey(fmt.Errorf("wrap: %w", EK(KindNotFound, " errors.not_found ", "missing"))); got != "errors.not_found" {
		t.Fatalf("key = %q", got)
	}
	if got := LocalizationKey(errors.New("plain")); got != "" {
		t.Fatalf("key = %q, want empty", got)
	}
	if got := LocalizationKey(nil); got != "" {
		t.Fatalf("key = %q, want empty", got)
	}
}
