// Package config loads process configuration from the environment,
// following the teacher's (JustinTDCT-CineVault) env()/envInt() helper
// pattern rather than a flag or viper-based loader.
package config

import (
	"database/sql"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cast"
)

// Config is a flat, process-wide configuration snapshot populated once by
// Load at startup.
type Config struct {
	Port int

	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	TMDBAPIKey         string
	OpenAIAPIKey       string
	OpenAIOrganization string
	OpenAIModel        string

	RedisAddr string

	DBMaxOpenConns int
	DBMaxIdleConns int

	RequestTimeoutSeconds int

	// ServiceTokenSecret signs the internal service-to-service JWTs
	// internal/auth issues and validates.
	ServiceTokenSecret string

	// AutomatchMinSimilarity is the default for the settings-table
	// "automatch_min_pct"-style overlay described in SPEC_FULL.md §3; 0.0
	// means "always take the catalog's best candidate".
	AutomatchMinSimilarity float64

	// AuditRetentionDays bounds how long request_history/openai_history
	// rows survive before internal/maintenance prunes them.
	AuditRetentionDays int
}

// Load reads Config from the environment, matching CineVault's
// internal/config/config.go: every field has a hard-coded fallback so the
// process can start in a bare dev environment.
func Load() *Config {
	return &Config{
		Port: envInt("PORT", 8080),

		PostgresHost:     env("POSTGRES_HOST", "127.0.0.1"),
		PostgresPort:     envInt("POSTGRES_PORT", 5432),
		PostgresUser:     env("POSTGRES_USER", "identifier"),
		PostgresPassword: env("POSTGRES_PASSWORD", "identifier"),
		PostgresDB:       env("POSTGRES_DB", "extended_media_info"),

		TMDBAPIKey:         env("TMDB_API_KEY", ""),
		OpenAIAPIKey:       env("OPENAI_API_KEY", ""),
		OpenAIOrganization: env("OPENAI_ORGANIZATION", ""),
		OpenAIModel:        env("OPENAI_MODEL", "gpt-4o-mini"),

		RedisAddr: env("REDIS_ADDR", "127.0.0.1:6379"),

		DBMaxOpenConns: envInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: envInt("DB_MAX_IDLE_CONNS", 5),

		RequestTimeoutSeconds: envInt("REQUEST_TIMEOUT_SECONDS", 10),

		ServiceTokenSecret: env("SERVICE_TOKEN_SECRET", "change-me-in-production"),

		AutomatchMinSimilarity: 0.0,
		AuditRetentionDays:     90,
	}
}

// MergeFromDB overlays tunable thresholds from the settings table,
// mirroring CineVault's Config.MergeFromDB.
func (c *Config) MergeFromDB(db *sql.DB) {
	rows, err := db.Query("SELECT key, value FROM settings")
	if err != nil {
		log.Printf("config: skipping DB merge: %v", err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			continue
		}
		switch key {
		case "automatch_min_pct":
			c.AutomatchMinSimilarity = cast.ToFloat64(value)
		case "audit_retention_days":
			if v := cast.ToInt(value); v > 0 {
				c.AuditRetentionDays = v
			}
		}
	}
}

// DatabaseURL builds the lib/pq connection string from the discrete
// Postgres fields.
func (c *Config) DatabaseURL() string {
	return "postgres://" + c.PostgresUser + ":" + c.PostgresPassword + "@" +
		c.PostgresHost + ":" + strconv.Itoa(c.PostgresPort) + "/" + c.PostgresDB + "?sslmode=disable"
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
