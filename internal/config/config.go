package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the externalized configuration: storage backend selection,
// admin allow-list, mail relay and announcement credentials. Nothing in here
// is ever hardcoded in source.
type Config struct {
	Env      string
	HTTPAddr string

	// DatabaseURL selects the hosted PostgreSQL variant when set; when empty
	// the local Badger-backed store under DataDir is used.
	DatabaseURL    string
	MigrationsPath string
	DataDir        string

	AdminEmails    []string
	StrictCapacity bool
	DefaultLocale  string
	CORSOrigins    []string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	DiscordToken     string
	DiscordChannelID string
}

// Load reads configuration from the environment and validates it. A .env
// file is optional when variables come from the environment (Docker, CI).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:              getEnv("ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", "db/migrations"),
		DataDir:          getEnv("DATA_DIR", "data"),
		AdminEmails:      splitList(os.Getenv("ADMIN_EMAILS")),
		StrictCapacity:   getBool("STRICT_CAPACITY", true),
		DefaultLocale:    getEnv("DEFAULT_LOCALE", "en"),
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPUsername:     os.Getenv("SMTP_USERNAME"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:         getEnv("SMTP_FROM", "noreply@hackx.local"),
		DiscordToken:     os.Getenv("DISCORD_TOKEN"),
		DiscordChannelID: os.Getenv("DISCORD_CHANNEL_ID"),
	}

	port, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("config: SMTP_PORT must be a number: %w", err)
	}
	cfg.SMTPPort = port

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applies all business rules on the loaded configuration.
func (c *Config) validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return fmt.Errorf("config: HTTP_ADDR must not be empty")
	}

	if c.DatabaseURL != "" {
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: DATABASE_URL invalid (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: DATABASE_URL invalid (%q): missing scheme or host", c.DatabaseURL)
		}
	} else if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("config: DATA_DIR is required when DATABASE_URL is not set")
	}

	for _, email := range c.AdminEmails {
		if !strings.Contains(email, "@") {
			return fmt.Errorf("config: ADMIN_EMAILS entry %q is not an email address", email)
		}
	}

	if c.DiscordToken != "" && strings.TrimSpace(c.DiscordChannelID) == "" {
		return fmt.Errorf("config: DISCORD_CHANNEL_ID is required when DISCORD_TOKEN is set")
	}

	return nil
}

// MailEnabled reports whether a mail relay is configured.
func (c *Config) MailEnabled() bool {
	return strings.TrimSpace(c.SMTPHost) != ""
}

// AnnounceEnabled reports whether the Discord announcer is configured.
func (c *Config) AnnounceEnabled() bool {
	return strings.TrimSpace(c.DiscordToken) != ""
}

func getEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	return value
}

func getBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
