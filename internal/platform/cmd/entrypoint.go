// Package cmd provides shared command entrypoint helpers.
package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/portfolio/internal/platform/config"
	"github.com/louisbranch/portfolio/internal/platform/logging"
	"github.com/louisbranch/portfolio/internal/platform/otel"
	"go.uber.org/zap"
)

const defaultOTelShutdownTimeout = 5 * time.Second

// ServicePortfolio is the telemetry service name for the portfolio binary.
const ServicePortfolio = "portfolio"

// RunOptions controls shared entrypoint behavior for service commands.
type RunOptions struct {
	// ShutdownTimeout sets the timeout used when stopping telemetry.
	ShutdownTimeout time.Duration
	// Attributes are attached to the telemetry resource.
	Attributes map[string]string
	Logger     *zap.Logger
}

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return fmt.Errorf("config target is required")
	}
	return config.ParseEnv(cfg)
}

// RunWithTelemetry configures tracing and executes a service run loop.
func RunWithTelemetry(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	logger := logging.OrNop(options.Logger)

	settings := otel.Settings{ServiceName: service, Attributes: options.Attributes}
	if err := config.ParseEnv(&settings); err != nil {
		return err
	}
	shutdown, err := otel.Setup(ctx, settings)
	if err != nil {
		return err
	}
	defer func() {
		shutdownTimeout := options.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = defaultOTelShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("otel shutdown", zap.String("service", service), zap.Error(err))
		}
	}()
	return run(ctx)
}
