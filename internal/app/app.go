package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ferdiebergado/gopherkit/http/response"
	"github.com/ferdiebergado/hireloop/internal/analytics"
	"github.com/ferdiebergado/hireloop/internal/apikey"
	"github.com/ferdiebergado/hireloop/internal/application"
	"github.com/ferdiebergado/hireloop/internal/assessment"
	"github.com/ferdiebergado/hireloop/internal/auth"
	"github.com/ferdiebergado/hireloop/internal/candidate"
	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/job"
	"github.com/ferdiebergado/hireloop/internal/messaging"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
	"github.com/ferdiebergado/hireloop/internal/platform/router"
	"github.com/ferdiebergado/hireloop/internal/provider"
	"github.com/ferdiebergado/hireloop/internal/tenant"
	"github.com/ferdiebergado/hireloop/internal/user"
	"github.com/ferdiebergado/hireloop/internal/webhook"
)

type modules struct {
	users        *user.Module
	auth         *auth.Module
	tenants      *tenant.Module
	apiKeys      *apikey.Module
	jobs         *job.Module
	candidates   *candidate.Module
	applications *application.Module
	messaging    *messaging.Module
	assessments  *assessment.Module
	webhooks     *webhook.Module
	analytics    *analytics.Module
}

type App struct {
	server          *http.Server
	cfg             *config.Config
	provider        *provider.Provider
	router          router.Router
	db              *sql.DB
	middlewares     []func(http.Handler) http.Handler
	modules         *modules
	baseCtx         context.Context
	stop            context.CancelFunc
	workers         sync.WaitGroup
	shutdownTimeout time.Duration
}

func (a *App) registerMiddlewares() {
	for _, mw := range a.middlewares {
		a.router.Use(mw)
	}
}

// newModules wires the feature modules. Events flow into the webhook outbox, so the
// publisher is built from the database before anything that emits events.
func newModules(p *provider.Provider) *modules {
	cfg := p.Cfg
	publisher := webhook.NewPublisherFromDB(p.DB)

	users := user.NewModule(p.DB)
	authMod := auth.NewModule(&auth.Provider{
		Cfg:     cfg,
		DB:      p.DB,
		Hasher:  p.Hasher,
		Signer:  p.Signer,
		Mailer:  p.Mailer,
		Users:   users.Service(),
		Tenants: tenant.NewRepository(p.DB),
		Baker:   p.Baker,
	})
	tenants := tenant.NewModule(&tenant.Provider{
		DB:       p.DB,
		TxMgr:    p.TxMgr,
		Hasher:   p.Hasher,
		Users:    users.Service(),
		Verifier: authMod.Service(),
	})
	apiKeys := apikey.NewModule(&apikey.Provider{
		Cfg:      cfg.APIKey,
		DB:       p.DB,
		Hasher:   p.ShortHasher,
		Observer: p.Metrics,
	})
	jobs := job.NewModule(&job.Provider{
		DB:        p.DB,
		TxMgr:     p.TxMgr,
		Publisher: publisher,
	})
	candidates := candidate.NewModule(&candidate.Provider{
		Cfg:       cfg.Search,
		DB:        p.DB,
		TxMgr:     p.TxMgr,
		Jobs:      jobs.Service(),
		Publisher: publisher,
		Observer:  p.Metrics,
	})
	applications := application.NewModule(&application.Provider{
		DB:         p.DB,
		TxMgr:      p.TxMgr,
		Jobs:       jobs.Service(),
		Candidates: candidates.Service(),
		Publisher:  publisher,
	})
	msgs := messaging.NewModule(&messaging.Provider{
		DB:           p.DB,
		TxMgr:        p.TxMgr,
		Applications: applications.Service(),
		Candidates:   candidates.Service(),
		Publisher:    publisher,
		Mailer:       p.Mailer,
		BaseURL:      cfg.Server.URL,
	})
	assessments := assessment.NewModule(&assessment.Provider{
		DB:           p.DB,
		TxMgr:        p.TxMgr,
		Jobs:         jobs.Service(),
		Applications: applications.Service(),
		Publisher:    publisher,
	})
	webhooks := webhook.NewModule(&webhook.Provider{
		Cfg:          cfg.Webhook,
		DB:           p.DB,
		TxMgr:        p.TxMgr,
		Validator:    p.Validator,
		Candidates:   candidates.Service(),
		Applications: applications.Service(),
		Observer:     p.Metrics,
	})
	dashboards := analytics.NewModule(&analytics.Provider{
		DB:   p.DB,
		Jobs: jobs.Service(),
	})

	return &modules{
		users:        users,
		auth:         authMod,
		tenants:      tenants,
		apiKeys:      apiKeys,
		jobs:         jobs,
		candidates:   candidates,
		applications: applications,
		messaging:    msgs,
		assessments:  assessments,
		webhooks:     webhooks,
		analytics:    dashboards,
	}
}

func (a *App) setupRoutes() {
	p := a.provider
	m := a.modules
	v := p.Validator
	maxBodySize := a.cfg.Server.MaxBodyBytes
	requireToken := auth.RequireToken(p.Signer)

	a.router.Get("/health", a.health)
	a.router.Get("/metrics", p.Metrics.Handler().ServeHTTP)

	mountAuthRoutes(a.router, m.auth.Handler(), v, a.cfg, p.Signer, p.Baker)
	mountUserRoutes(a.router, m.users.Handler(), requireToken)
	mountTenantRoutes(a.router, m.tenants.Handler(), v, requireToken, maxBodySize)
	mountAPIKeyRoutes(a.router, m.apiKeys.Handler(), v, requireToken, maxBodySize)
	mountJobRoutes(a.router, m, v, requireToken, maxBodySize)
	mountCandidateRoutes(a.router, m.candidates.Handler(), v, requireToken, maxBodySize)
	mountApplicationRoutes(a.router, m, v, requireToken, maxBodySize)
	mountWebhookRoutes(a.router, m.webhooks.Handler(), v, requireToken, maxBodySize)
	mountAnalyticsRoutes(a.router, m.analytics.Handler(), requireToken)
	mountPublicAPIRoutes(a.router, m, v, a.cfg.Server)
}

type healthResponse struct {
	Status string `json:"status"`
}

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	if err := a.db.PingContext(r.Context()); err != nil {
		web.RespondServiceUnavailable(w, fmt.Errorf("ping database: %w", err))
		return
	}

	response.JSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// ServeHTTP lets the app be exercised without a listening server.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Start runs the HTTP server and, unless disabled, the webhook dispatcher. It returns when
// ctx is cancelled or the server fails.
func (a *App) Start(ctx context.Context) error {
	if a.cfg.Webhook.Disabled {
		slog.Info("Webhook dispatcher disabled.")
	} else {
		a.workers.Add(1)
		go func() {
			defer a.workers.Done()
			if err := a.modules.webhooks.Start(a.baseCtx); err != nil {
				slog.Error("webhook dispatcher stopped", "reason", err)
			}
		}()
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening...", "address", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		slog.Info("Server has stopped.")
		serverErr <- nil
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received.")
		return nil
	case err := <-serverErr:
		return err
	}
}

// Shutdown drains in-flight requests, then waits for the background workers.
func (a *App) Shutdown() error {
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	a.stop()
	a.workers.Wait()

	if err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

func New(p *provider.Provider, middlewares []func(http.Handler) http.Handler) (*App, error) {
	if p == nil || p.Cfg == nil {
		return nil, errors.New("provider and config should not be nil")
	}

	cfg := p.Cfg
	baseCtx, stop := context.WithCancel(context.Background())
	serverCfg := cfg.Server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", serverCfg.Port),
		Handler: p.Router,
		BaseContext: func(_ net.Listener) context.Context {
			return baseCtx
		},
		ReadTimeout:  serverCfg.ReadTimeout.Duration,
		WriteTimeout: serverCfg.WriteTimeout.Duration,
		IdleTimeout:  serverCfg.IdleTimeout.Duration,
	}

	a := &App{
		server:          server,
		cfg:             cfg,
		provider:        p,
		router:          p.Router,
		db:              p.DB,
		middlewares:     middlewares,
		modules:         newModules(p),
		baseCtx:         baseCtx,
		stop:            stop,
		shutdownTimeout: serverCfg.ShutdownTimeout.Duration,
	}

	a.registerMiddlewares()
	a.setupRoutes()

	return a, nil
}
