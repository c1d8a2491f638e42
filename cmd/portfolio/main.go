// Package main starts the portfolio site and its maintenance commands.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	portfoliocmd "github.com/louisbranch/portfolio/internal/cmd/portfolio"
	"github.com/louisbranch/portfolio/internal/platform/config"
)

func main() {
	cfg, err := portfoliocmd.LoadConfig()
	if err != nil {
		config.Exitf("load config: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := portfoliocmd.NewRootCmd(&cfg).ExecuteContext(ctx); err != nil {
		stop()
		config.Exitf("portfolio: %v", err)
	}
}
