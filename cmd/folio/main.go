// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/emckay/folio/internal/assist"
	"github.com/emckay/folio/internal/cache"
	"github.com/emckay/folio/internal/config"
	"github.com/emckay/folio/internal/handler/api"
	"github.com/emckay/folio/internal/media"
	"github.com/emckay/folio/internal/newsletter"
	"github.com/emckay/folio/internal/scheduler"
	"github.com/emckay/folio/internal/social"
	"github.com/emckay/folio/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "folio - Personal portfolio & blog platform\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_ADMIN_TOKEN      Admin API bearer token (required, min 16 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_BACKEND          Storage backend: file|sqlite (default: file)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_DATA_DIR         Flat-file content directory (default: ./data)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_DB_PATH          SQLite database path (default: ./data/folio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SITE_URL         Public site URL for feeds (default: http://localhost:8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_UPLOADS_DIR      Uploaded media directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_REDIS_URL        Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "\nFor more information, see: https://github.com/emckay/folio\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Handle -v/-version flag
	if *showVersion {
		_, _ = fmt.Printf("folio %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Open the content store (flat files or SQLite, fixed at startup)
	slog.Info("opening content store", "backend", cfg.Backend)
	st, err := store.Open(cfg.Backend, cfg.DataDir, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("error closing store", "error", err)
		}
	}()
	slog.Info("content store ready")

	// Response cache (Redis when configured, in-process memory otherwise)
	respCache := cache.New(cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
	}, logger)
	defer func() {
		if err := respCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	// Social feed mirror
	mirror := social.NewMirror(st.Social, social.Options{
		YouTubeAPIKey:    cfg.YouTubeAPIKey,
		YouTubeChannelID: cfg.YouTubeChannelID,
		InstagramToken:   cfg.InstagramToken,
		InstagramUserID:  cfg.InstagramUserID,
	}, logger)
	slog.Info("social mirror initialized", "platforms", mirror.Platforms())

	// Newsletter provider sync is optional: skip it when the configured
	// provider has no API key instead of failing startup.
	nlCfg := newsletter.Config{
		ButtondownAPIKey: cfg.ButtondownAPIKey,
		MailerLiteAPIKey: cfg.MailerLiteAPIKey,
		MailerLiteGroup:  cfg.MailerLiteGroupID,
	}
	switch cfg.NewsletterProvider {
	case config.NewsletterButtondown:
		if cfg.ButtondownAPIKey != "" {
			nlCfg.Provider = cfg.NewsletterProvider
		}
	case config.NewsletterMailerLite:
		if cfg.MailerLiteAPIKey != "" {
			nlCfg.Provider = cfg.NewsletterProvider
		}
	default:
		nlCfg.Provider = cfg.NewsletterProvider
	}
	provider, err := newsletter.New(nlCfg)
	if err != nil {
		return fmt.Errorf("configuring newsletter provider: %w", err)
	}
	if provider != nil {
		slog.Info("newsletter provider sync enabled", "provider", provider.Name())
	}

	// Writing assistant
	assistant := assist.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if assistant.Enabled() {
		slog.Info("writing assistant enabled", "model", cfg.OpenAIModel)
	}

	// Uploaded media storage
	uploads, err := media.NewStore(cfg.UploadsDir)
	if err != nil {
		return fmt.Errorf("initializing uploads: %w", err)
	}

	// Background jobs: scheduled post publishing and social refresh
	sched := scheduler.New(st, mirror, respCache, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	h := api.NewHandler(cfg, st, respCache, mirror, provider, assistant, uploads, logger)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           h.Router(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
