package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"homesale_backend/internal/events"
	apphttp "homesale_backend/internal/http"
	"homesale_backend/internal/http/router"
	"homesale_backend/internal/lead"
	"homesale_backend/internal/session"
	"homesale_backend/internal/suggest"
	"homesale_backend/internal/valuation"
	"homesale_backend/internal/wizard"
	"homesale_backend/platform/config"
	"homesale_backend/platform/logger"
	"homesale_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.IsCRMConfigured() {
		log.Warn("CRM credentials not configured; lead sync will report configuration errors")
	}

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)
	subscribeSyncFailureLogging(eventBus, log)

	store, closeStore, err := initSessionStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize session store", "error", err)
		panic("failed to initialize session store: " + err.Error())
	}
	if closeStore != nil {
		defer closeStore()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Shared validator instance for dependency injection
	val := validator.New()

	leadModule := lead.NewModule(cfg, val, log)
	valuationModule := valuation.NewModule(cfg, log)
	suggestModule := suggest.NewModule(log)
	wizardModule := wizard.NewModule(store, leadModule.Service(), valuationModule.Service(), eventBus, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			leadModule,
			wizardModule,
			valuationModule,
			suggestModule,
		},
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initSessionStore picks Redis when configured and an in-process store
// otherwise. The in-process store runs a janitor goroutine tied to the
// application context.
func initSessionStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (session.Store, func(), error) {
	if cfg.GetRedisURL() == "" {
		log.Info("REDIS_URL not configured; using in-process session store")
		mem := session.NewMemoryStore(cfg.GetSessionTTL())
		mem.StartJanitor(ctx)
		return mem, nil, nil
	}

	opts, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, err
	}
	log.Info("redis session store initialized")

	return session.NewRedisStore(client, cfg.GetSessionTTL()), func() {
		_ = client.Close()
	}, nil
}

// subscribeSyncFailureLogging turns swallowed CRM failures into log lines.
// The wizard publishes these instead of surfacing them to visitors.
func subscribeSyncFailureLogging(bus events.Bus, log *logger.Logger) {
	bus.Subscribe(events.CrmSyncFailed{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		failure, ok := e.(events.CrmSyncFailed)
		if !ok {
			return nil
		}
		log.CRMSyncFailure(failure.Action, failure.Step, failure.Status, failure.Body, errors.New(failure.Reason))
		return nil
	}))
}
