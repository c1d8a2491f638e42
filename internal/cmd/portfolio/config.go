// Package portfolio wires the portfolio command line: configuration, the web
// server and the maintenance subcommands.
package portfolio

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/louisbranch/portfolio/internal/platform/config"
	"github.com/louisbranch/portfolio/internal/platform/logging"
)

// Config holds the portfolio command configuration. Environment variables
// provide defaults; flags override them.
type Config struct {
	HTTPAddr          string   `env:"PORTFOLIO_HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath            string   `env:"PORTFOLIO_DB_PATH" envDefault:"data/portfolio.db"`
	DBName            string   `env:"PORTFOLIO_DB_NAME" envDefault:"portfolio"`
	BaseURL           string   `env:"PORTFOLIO_BASE_URL" envDefault:"http://localhost:8080"`
	Locales           []string `env:"PORTFOLIO_LOCALES" envDefault:"en,km"`
	DefaultLocale     string   `env:"PORTFOLIO_DEFAULT_LOCALE" envDefault:"en"`
	AdminEmail        string   `env:"PORTFOLIO_ADMIN_EMAIL"`
	AdminPasswordHash string   `env:"PORTFOLIO_ADMIN_PASSWORD_HASH"`
	SessionSecret     string   `env:"PORTFOLIO_SESSION_SECRET"`
	ExecuteAPIURL     string   `env:"PORTFOLIO_EXECUTE_API_URL"`
	TrustProxy        bool     `env:"PORTFOLIO_TRUST_PROXY"`
	Log               logging.Config
}

// LoadConfig reads Config from the process environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFrom reads Config from environ instead of the process
// environment.
func LoadConfigFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := config.ParseEnvFrom(&cfg, environ); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings every subcommand relies on.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("database path is required")
	}
	if len(c.Locales) == 0 {
		return fmt.Errorf("at least one locale is required")
	}
	return nil
}

func bindStoreFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.DBName, "db-name", cfg.DBName, "logical database name for logs and traces")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "log format (json, console)")
}

func bindServeFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "externally reachable base URL")
	fs.StringSliceVar(&cfg.Locales, "locales", cfg.Locales, "supported locales")
	fs.StringVar(&cfg.DefaultLocale, "default-locale", cfg.DefaultLocale, "locale served without a path prefix")
	fs.StringVar(&cfg.AdminEmail, "admin-email", cfg.AdminEmail, "admin sign-in email")
	fs.StringVar(&cfg.ExecuteAPIURL, "execute-api-url", cfg.ExecuteAPIURL, "code execution API endpoint")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", cfg.TrustProxy, "trust X-Forwarded-* headers")
}
