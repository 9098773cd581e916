package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/ferdiebergado/goexpress"
	"github.com/ferdiebergado/gopherkit/env"
	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/middleware"
	"github.com/ferdiebergado/hireloop/internal/pkg/logging"
	"github.com/ferdiebergado/hireloop/internal/platform/db"
	"github.com/ferdiebergado/hireloop/internal/provider"
)

// Run boots the server with the config at cfgFile and blocks until ctx is cancelled.
func Run(ctx context.Context, cfgFile string) error {
	slog.Info("Initializing...")

	if os.Getenv("ENV") != "production" {
		if err := env.Load(".env"); err != nil {
			slog.Warn("no .env file loaded", "reason", err)
		}
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.SetupLogger(cfg.App.Env, cfg.App.LogLevel, os.Stdout)

	dbConn, err := db.NewPostgresDB(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer dbConn.Close()

	p, err := provider.New(cfg, dbConn)
	if err != nil {
		return fmt.Errorf("setup providers: %w", err)
	}

	api, err := New(p, middlewares(cfg, p))
	if err != nil {
		return err
	}

	if err := api.Start(ctx); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	return api.Shutdown()
}

func middlewares(cfg *config.Config, p *provider.Provider) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.InjectWriter,
		goexpress.RecoverFromPanic,
		middleware.LogRequest,
		middleware.Instrument(p.Metrics),
		middleware.CORS(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedHeaders),
		middleware.ContextGuard,
		middleware.CheckContentType,
	}
}
