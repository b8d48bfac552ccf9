package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cropcraft/server/internal/api"
	"github.com/cropcraft/server/internal/auth"
	"github.com/cropcraft/server/internal/config"
	"github.com/cropcraft/server/internal/domain/contacts"
	"github.com/cropcraft/server/internal/domain/users"
	"github.com/cropcraft/server/internal/email"
	"github.com/cropcraft/server/internal/metrics"
	"github.com/cropcraft/server/internal/storage"
	"github.com/cropcraft/server/internal/telemetry"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout   = 10 * time.Second
	dbMetricsInterval = 15 * time.Second
)

var (
	// Server flags (override config/env)
	serverHost string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server and begin accepting API requests.

The server will:
- Load configuration from environment variables (or --config file if provided)
- Open the store named by DATABASE_URL and install the schema
- Bootstrap an admin user if ADMIN_USERNAME and ADMIN_PASSWORD are set
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  # Start with default configuration (from env vars)
  server serve

  # Start on a specific host and port
  server serve --host 127.0.0.1 --port 9090

  # Start with debug logging
  server serve --log-level debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 8080)")
}

func runServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Str("environment", cfg.Environment).Msg("starting server")

	metrics.Init(Version, GitCommit, BuildDate)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.Tracing, Version)
	if err != nil {
		return fmt.Errorf("tracing init failed: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error().Err(err).Msg("tracing shutdown error")
		}
	}()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := bootstrapAdminUser(ctx, cfg, store, logger); err != nil {
		logger.Error().Err(err).Msg("admin bootstrap failed")
	}

	notifier, err := email.NewService(cfg.Email, adminDashboardURL(cfg), logger)
	if err != nil {
		return fmt.Errorf("email setup failed: %w", err)
	}

	contactsService := contacts.NewService(store.Contacts(), notifier, logger)

	server := &http.Server{
		Addr: fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: api.NewRouter(api.RouterDeps{
			Config:   cfg,
			Store:    store,
			Contacts: contactsService,
			Logger:   logger,
			Build:    buildInfo(),
		}),
		ReadTimeout:       10 * time.Second, // Total time to read request
		WriteTimeout:      30 * time.Second, // Total time to write response
		ReadHeaderTimeout: 5 * time.Second,  // Time to read headers
		MaxHeaderBytes:    1 << 20,          // 1 MB max header size
	}

	g, gctx := errgroup.WithContext(ctx)

	if statter, ok := store.(metrics.PoolStatter); ok {
		g.Go(func() error {
			metrics.NewDBCollector(statter).Start(gctx, dbMetricsInterval)
			return nil
		})
	}

	g.Go(func() error {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := contactsService.Drain(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("contact notifications still pending at shutdown")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

// openStore connects to DATABASE_URL and installs the schema.
func openStore(ctx context.Context, cfg config.Config, logger zerolog.Logger) (storage.Repository, error) {
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	store, err := storage.Open(openCtx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := store.Migrate(openCtx); err != nil {
		store.Close()
		return nil, fmt.Errorf("schema install failed: %w", err)
	}
	return store, nil
}

// bootstrapAdminUser creates the configured admin account once. An existing
// username is left untouched.
func bootstrapAdminUser(ctx context.Context, cfg config.Config, store storage.Repository, logger zerolog.Logger) error {
	bootstrap := cfg.AdminBootstrap
	if bootstrap.Username == "" || bootstrap.Password == "" {
		logger.Debug().Msg("admin bootstrap env vars not set; skipping")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.Issuer)
	svc := users.NewService(store.Users(), tokens, logger)
	created, err := svc.EnsureUser(ctx, users.Credentials{Username: bootstrap.Username, Password: bootstrap.Password})
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	if created {
		logger.Info().Str("username", bootstrap.Username).Msg("bootstrapped admin user")
	}
	return nil
}

func adminDashboardURL(cfg config.Config) string {
	if cfg.Server.BaseURL == "" {
		return ""
	}
	return strings.TrimRight(cfg.Server.BaseURL, "/") + "/admin/dashboard"
}
