package portfolio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	platformcmd "github.com/louisbranch/portfolio/internal/platform/cmd"
	"github.com/louisbranch/portfolio/internal/platform/logging"
	"github.com/louisbranch/portfolio/internal/platform/metrics"
	platformotel "github.com/louisbranch/portfolio/internal/platform/otel"
	"github.com/louisbranch/portfolio/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/portfolio/internal/platform/timeouts"
	"github.com/louisbranch/portfolio/internal/services/portfolio/actions"
	"github.com/louisbranch/portfolio/internal/services/portfolio/storage/sqlite"
	"github.com/louisbranch/portfolio/internal/services/web/app"
	"github.com/louisbranch/portfolio/internal/services/web/localerouter"
	module "github.com/louisbranch/portfolio/internal/services/web/module"
	"github.com/louisbranch/portfolio/internal/services/web/modules"
	"github.com/louisbranch/portfolio/internal/services/web/modules/adminauth"
	"github.com/louisbranch/portfolio/internal/services/web/modules/public"
	"github.com/louisbranch/portfolio/internal/services/web/pagecache"
	"github.com/louisbranch/portfolio/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/portfolio/internal/services/web/platform/sessioncookie"
)

// NewRootCmd builds the portfolio command tree around cfg. cfg carries the
// environment defaults; flags overwrite its fields before a subcommand runs.
func NewRootCmd(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Multilingual portfolio site and admin panel",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	bindStoreFlags(root.PersistentFlags(), cfg)

	root.AddCommand(
		newServeCmd(cfg),
		newMigrateCmd(cfg),
		newSeedCmd(cfg),
		newHashPasswordCmd(),
	)
	return root
}

func newServeCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the public site, admin panel and code execution proxy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(*cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			options := platformcmd.RunOptions{
				Attributes: map[string]string{"db.name": cfg.DBName},
				Logger:     logger,
			}
			return platformcmd.RunWithTelemetry(cmd.Context(), platformcmd.ServicePortfolio, options, func(ctx context.Context) error {
				return Serve(ctx, *cfg, logger)
			})
		},
	}
	bindServeFlags(cmd.Flags(), cfg)
	return cmd
}

func newMigrateCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and list the applied set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Migrate(cmd.Context(), *cfg, cmd.OutOrStdout())
		},
	}
}

func newSeedCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert a sample project, experience entry and skills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(*cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return Seed(cmd.Context(), *cfg, logger, cmd.OutOrStdout())
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for PORTFOLIO_ADMIN_PASSWORD_HASH",
		Long: `Print a bcrypt hash for PORTFOLIO_ADMIN_PASSWORD_HASH.

The password is read from the first argument, or from the first line of
standard input when no argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			hash, err := adminauth.HashPassword(password)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}

// Serve runs the web server until ctx is cancelled.
func Serve(ctx context.Context, cfg Config, logger *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger = logging.OrNop(logger)

	policy := requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustProxy}
	sessions, err := sessioncookie.NewManager(sessioncookie.Config{
		Secret: cfg.SessionSecret,
		TTL:    timeouts.SessionTTL,
		Policy: policy,
	})
	if err != nil {
		return fmt.Errorf("init sessions: %w", err)
	}

	m := metrics.New()
	router, err := localerouter.New(localerouter.Config{
		Locales:       cfg.Locales,
		DefaultLocale: cfg.DefaultLocale,
		OnDecision:    func(d localerouter.Decision) { m.ObserveLocaleDecision(d.Action.String()) },
	})
	if err != nil {
		return fmt.Errorf("init locale router: %w", err)
	}

	store, err := openStore(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}()

	shared := module.Dependencies{
		Locales:      router,
		BaseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		Logger:       logger,
		SchemePolicy: policy,
		Sessions:     sessions,
	}
	cache := pagecache.New(public.CacheKey(shared), logger)
	acts, err := actions.New(actions.Deps{
		Store:       store,
		Invalidator: cache,
		Logger:      logger,
		Metrics:     m,
		Tracer:      platformotel.Tracer("portfolio/actions"),
	})
	if err != nil {
		return fmt.Errorf("init actions: %w", err)
	}

	credentials := adminauth.Credentials{Email: cfg.AdminEmail, PasswordHash: cfg.AdminPasswordHash}
	server, err := app.NewServer(app.Config{
		HTTPAddr: cfg.HTTPAddr,
		Store:    store,
		Modules: modules.Dependencies{
			Actions:     acts,
			Cache:       cache,
			Credentials: credentials,
			ExecuteURL:  cfg.ExecuteAPIURL,
		},
		Shared:  shared,
		Metrics: m,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	logger.Info("starting portfolio",
		zap.String("http_addr", cfg.HTTPAddr),
		zap.String("db_name", cfg.DBName),
		zap.Strings("locales", router.Locales()),
		zap.Bool("admin_configured", credentials.Configured()),
		zap.Bool("sandbox_enabled", cfg.ExecuteAPIURL != ""),
	)
	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}

// Migrate applies pending migrations and writes the applied set to out.
func Migrate(ctx context.Context, cfg Config, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	store, err := openStore(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	applied, err := sqlitemigrate.ListApplied(ctx, store.DB())
	if err != nil {
		return err
	}
	for _, migration := range applied {
		fmt.Fprintf(out, "%s\t%s\n", migration.Name, migration.AppliedAt.Format("2006-01-02T15:04:05Z"))
	}
	fmt.Fprintf(out, "%d migrations applied to %s\n", len(applied), cfg.DBName)
	return nil
}

func openStore(ctx context.Context, path string) (*sqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	store, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}

func newLogger(cfg Config) (*zap.Logger, error) {
	logCfg := cfg.Log
	logCfg.Fields = map[string]string{"service": platformcmd.ServicePortfolio, "db": cfg.DBName}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

func readPassword(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		if args[0] == "" {
			return "", errors.New("password is required")
		}
		return args[0], nil
	}
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return "", errors.New("password is required")
	}
	password := strings.TrimRight(scanner.Text(), "\r")
	if password == "" {
		return "", errors.New("password is required")
	}
	return password, nil
}
