// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/tomtom215/learnmate/internal/api"
	"github.com/tomtom215/learnmate/internal/auth"
	"github.com/tomtom215/learnmate/internal/chat"
	"github.com/tomtom215/learnmate/internal/config"
	"github.com/tomtom215/learnmate/internal/database"
	"github.com/tomtom215/learnmate/internal/logging"
	"github.com/tomtom215/learnmate/internal/metrics"
	"github.com/tomtom215/learnmate/internal/modelclient"
	"github.com/tomtom215/learnmate/internal/recommend"
	"github.com/tomtom215/learnmate/internal/supervisor"
	"github.com/tomtom215/learnmate/internal/supervisor/services"
	"github.com/tomtom215/learnmate/internal/users"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Str("session_store", cfg.Security.SessionStore).
		Str("model_provider", cfg.Models.Provider).
		Msg("Starting Learnmate")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Learnmate stopped with an error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run wires every component and blocks until a shutdown signal arrives.
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	hasher := auth.NewHasher(cfg.Security.BcryptCost)
	if cfg.Database.Seed {
		if err := db.Seed(ctx, hasher); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
	}

	sessionFactory, err := auth.NewSessionStoreFactory(&cfg.Security)
	if err != nil {
		return fmt.Errorf("initialize session store: %w", err)
	}
	defer func() {
		if err := sessionFactory.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}()
	sessionStore, err := sessionFactory.CreateStore()
	if err != nil {
		return fmt.Errorf("create session store: %w", err)
	}
	warnAboutConfig(cfg)

	model, err := modelclient.New(&cfg.Models)
	if err != nil {
		return fmt.Errorf("initialize model client: %w", err)
	}

	engine := recommend.NewEngine(model, logging.Logger())
	stats, err := engine.BuildFromStore(ctx, db)
	if err != nil {
		return fmt.Errorf("build embedding table: %w", err)
	}
	if stats.Embedded == 0 && stats.Catalog > 0 {
		logging.Warn().Int("catalog", stats.Catalog).Msg("No content could be embedded; recommendations will be empty")
	}

	handler, err := api.NewHandler(api.Dependencies{
		Users:       users.NewService(db, hasher),
		Recommender: engine,
		Chat:        chat.NewService(model, cfg.Models.Timeout),
		DB:          db,
		Sessions:    auth.NewSessionMiddleware(sessionStore, auth.SessionMiddlewareConfigFrom(&cfg.Security)),
		SecurityLog: logging.NewSecurityLogger(),
	})
	if err != nil {
		return fmt.Errorf("initialize handlers: %w", err)
	}
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFrom(&cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// sutureslog takes a *slog.Logger; the adapter forwards to zerolog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	tree.AddMaintenanceService(services.NewSessionCleanupService(sessionStore, services.DefaultCleanupInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return nil
}

// warnAboutConfig logs settings that are valid but risky outside development.
func warnAboutConfig(cfg *config.Config) {
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.Security.SessionStore == string(auth.SessionStoreMemory) && cfg.IsProduction() {
		logging.Warn().Msg("SESSION_STORE=memory: sessions are lost on restart; consider SESSION_STORE=badger")
	}
	if cfg.Models.Provider == modelclient.ProviderOffline {
		logging.Warn().Msg("MODEL_PROVIDER=offline: recommendations use hashed word vectors and chat is unavailable")
	} else if cfg.Models.APIToken == "" {
		logging.Warn().Msg("HF_API_TOKEN is not set; the model API may reject or throttle requests")
	}
	if !cfg.Security.CookieSecure && cfg.IsProduction() {
		logging.Warn().Msg("SESSION_COOKIE_SECURE=false in production; session cookies will be sent over plain HTTP")
	}
}
