package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/portfolio/internal/platform/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := otel.Setup(context.Background(), otel.Settings{ServiceName: "test-service"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	shutdown, err := otel.Setup(context.Background(), otel.Settings{
		Endpoint:    "http://localhost:4318",
		Enabled:     "FALSE",
		ServiceName: "test-service",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address so no export happens.
	shutdown, err := otel.Setup(context.Background(), otel.Settings{
		Endpoint:    "http://192.0.2.1:4318",
		ServiceName: "test-service",
		Attributes:  map[string]string{"db.name": "portfolio"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}
