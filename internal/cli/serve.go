package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/numstr/internal/api"
	"github.com/dmitrymomot/numstr/pkg/clientip"
	"github.com/dmitrymomot/numstr/pkg/config"
	"github.com/dmitrymomot/numstr/pkg/httpserver"
	"github.com/dmitrymomot/numstr/pkg/i18n"
	"github.com/dmitrymomot/numstr/pkg/logger"
	"github.com/dmitrymomot/numstr/pkg/ratelimiter"
	"github.com/dmitrymomot/numstr/pkg/requestid"
	"github.com/dmitrymomot/numstr/pkg/schema"
)

// ServeConfig is read from the environment (and a .env file) by serve.
type ServeConfig struct {
	SchemaPath  string `env:"NUMSTR_SCHEMA"`
	Locale      string `env:"NUMSTR_LOCALE" envDefault:"en"`
	LocalesDir  string `env:"NUMSTR_LOCALES_DIR"`
	MaxBodySize int64  `env:"NUMSTR_MAX_BODY_SIZE" envDefault:"1048576"`
	CacheSize   int    `env:"NUMSTR_SCHEMA_CACHE_SIZE" envDefault:"128"`
	AppEnv      string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"numstr"`
	LogLevel    string `env:"LOG_LEVEL"`
	LogFormat   string `env:"LOG_FORMAT"`

	// Proxy headers carrying the client IP. Empty means RemoteAddr only; set
	// it only behind a proxy that overwrites these headers.
	ClientIPHeaders []string `env:"CLIENT_IP_HEADERS" envSeparator:","`

	HTTP      httpserver.Config
	RateLimit ratelimiter.Config
}

func serveCmd() *cobra.Command {
	var (
		schemaPath string
		addr       string
	)

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the validation HTTP API",
		Long: `Run the HTTP API until interrupted.

Configuration comes from the environment: NUMSTR_SCHEMA, NUMSTR_LOCALE,
NUMSTR_LOCALES_DIR, NUMSTR_MAX_BODY_SIZE, NUMSTR_SCHEMA_CACHE_SIZE, APP_ENV,
LOG_LEVEL, LOG_FORMAT, CLIENT_IP_HEADERS, the RATE_LIMIT_* token bucket
(disabled while RATE_LIMIT_CAPACITY is 0) and the HTTP_* server settings.
Flags override the environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var cfg ServeConfig
			if err := config.Load(&cfg); err != nil {
				return err
			}
			if schemaPath != "" {
				cfg.SchemaPath = schemaPath
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}

			log, err := newLogger(cfg, cmd)
			if err != nil {
				return err
			}
			logger.SetAsDefault(log)

			tr, err := i18n.NewDefaultTranslator(ctx, cfg.LocalesDir,
				i18n.WithDefaultLanguage(cfg.Locale),
				i18n.WithLogger(log),
			)
			if err != nil {
				return fmt.Errorf("load translations: %w", err)
			}

			opts := []api.Option{
				api.WithTranslator(tr),
				api.WithLogger(log),
				api.WithMaxBodySize(cfg.MaxBodySize),
				api.WithSchemaCacheSize(cfg.CacheSize),
				api.WithClientIPResolver(clientip.NewResolver(cfg.ClientIPHeaders...)),
			}
			if cfg.RateLimit.Enabled() {
				limiter, err := ratelimiter.New(cfg.RateLimit)
				if err != nil {
					return err
				}
				defer limiter.Close()
				opts = append(opts, api.WithRateLimiter(limiter))
			}
			if cfg.SchemaPath != "" {
				obj, err := schema.LoadSchema(ctx, cfg.SchemaPath)
				if err != nil {
					return fmt.Errorf("load schema: %w", err)
				}
				opts = append(opts, api.WithSchema(obj, cfg.SchemaPath))
				log.InfoContext(ctx, "schema loaded", logger.Schema(cfg.SchemaPath), logger.Fields(obj.Fields()))
			} else {
				log.WarnContext(ctx, "no schema configured, requests must carry an inline schema")
			}

			srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
			return srv.Run(ctx, api.NewRouter(api.NewHandler(opts...)))
		},
	}

	c.Flags().StringVarP(&schemaPath, "schema", "s", "", "Schema file (overrides NUMSTR_SCHEMA)")
	c.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides HTTP_ADDR)")
	return c
}

func newLogger(cfg ServeConfig, cmd *cobra.Command) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv, cfg.ServiceName),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithContextExtractors(requestid.LogExtractor(), clientip.LogExtractor()),
	}
	if cfg.LogLevel != "" {
		if _, ok := logger.ParseLevel(cfg.LogLevel); !ok {
			return nil, fmt.Errorf("unknown log level %q", cfg.LogLevel)
		}
		opts = append(opts, logger.WithLevelName(cfg.LogLevel))
	}
	if cfg.LogFormat != "" {
		format := logger.Format(strings.ToLower(cfg.LogFormat))
		if format != logger.FormatJSON && format != logger.FormatText {
			return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
		}
		opts = append(opts, logger.WithFormat(format))
	}
	return logger.New(opts...), nil
}
