// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Newsletter providers
const (
	NewsletterButtondown = "buttondown"
	NewsletterMailerLite = "mailerlite"
)

// Config holds the application configuration loaded from environment variables.
// The storage backend is resolved once here and never changes at runtime.
type Config struct {
	Backend    string `env:"FOLIO_BACKEND" envDefault:"file"`
	DataDir    string `env:"FOLIO_DATA_DIR" envDefault:"./data"`
	DBPath     string `env:"FOLIO_DB_PATH" envDefault:"./data/folio.db"`
	ServerHost string `env:"FOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"FOLIO_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"FOLIO_ENV" envDefault:"development"`
	LogLevel   string `env:"FOLIO_LOG_LEVEL" envDefault:"info"`
	SiteURL    string `env:"FOLIO_SITE_URL" envDefault:"http://localhost:8080"`
	SiteName   string `env:"FOLIO_SITE_NAME" envDefault:"folio"`
	AdminToken string `env:"FOLIO_ADMIN_TOKEN,required"`
	UploadsDir string `env:"FOLIO_UPLOADS_DIR" envDefault:"./uploads"`

	// Cache configuration
	RedisURL    string `env:"FOLIO_REDIS_URL"`                        // Optional Redis URL for the response cache
	CachePrefix string `env:"FOLIO_CACHE_PREFIX" envDefault:"folio:"` // Redis key prefix
	CacheTTL    int    `env:"FOLIO_CACHE_TTL" envDefault:"300"`       // Response cache TTL in seconds

	// Social mirror configuration
	YouTubeAPIKey    string `env:"FOLIO_YOUTUBE_API_KEY"`
	YouTubeChannelID string `env:"FOLIO_YOUTUBE_CHANNEL_ID"`
	InstagramToken   string `env:"FOLIO_INSTAGRAM_TOKEN"`
	InstagramUserID  string `env:"FOLIO_INSTAGRAM_USER_ID"`

	// Newsletter provider configuration
	NewsletterProvider string `env:"FOLIO_NEWSLETTER_PROVIDER" envDefault:"buttondown"`
	ButtondownAPIKey   string `env:"FOLIO_BUTTONDOWN_API_KEY"`
	MailerLiteAPIKey   string `env:"FOLIO_MAILERLITE_API_KEY"`
	MailerLiteGroupID  string `env:"FOLIO_MAILERLITE_GROUP_ID"`

	// Writing-assistant configuration
	OpenAIAPIKey string `env:"FOLIO_OPENAI_API_KEY"`
	OpenAIModel  string `env:"FOLIO_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
}

// MinAdminTokenLength is the minimum required length for the admin token.
const MinAdminTokenLength = 16

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if the application is running in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseFileBackend returns true if content lives in flat JSON/MDX files.
func (c Config) UseFileBackend() bool {
	return c.Backend == BackendFile
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// YouTubeEnabled returns true if the YouTube mirror is configured.
func (c Config) YouTubeEnabled() bool {
	return c.YouTubeAPIKey != "" && c.YouTubeChannelID != ""
}

// InstagramEnabled returns true if the Instagram mirror is configured.
func (c Config) InstagramEnabled() bool {
	return c.InstagramToken != "" && c.InstagramUserID != ""
}

// AssistEnabled returns true if the writing assistant is configured.
func (c Config) AssistEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Backend != BackendFile && cfg.Backend != BackendSQLite {
		return nil, fmt.Errorf("FOLIO_BACKEND must be %q or %q, got %q",
			BackendFile, BackendSQLite, cfg.Backend)
	}

	if len(cfg.AdminToken) < MinAdminTokenLength {
		return nil, fmt.Errorf("FOLIO_ADMIN_TOKEN must be at least %d bytes long, got %d bytes; "+
			"generate one with: openssl rand -hex 24",
			MinAdminTokenLength, len(cfg.AdminToken))
	}

	switch cfg.NewsletterProvider {
	case NewsletterButtondown, NewsletterMailerLite:
	default:
		return nil, fmt.Errorf("FOLIO_NEWSLETTER_PROVIDER must be %q or %q, got %q",
			NewsletterButtondown, NewsletterMailerLite, cfg.NewsletterProvider)
	}

	return cfg, nil
}
