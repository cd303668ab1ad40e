package config

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	// Optional env vars fall back to a default instead of failing.
	getEnvOr := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: "./migrations",
		Port:          getEnv("PORT"),
		SyncSecret:    getEnv("SYNC_SECRET"),
		Limitless: LimitlessConfig{
			BaseURL:     getEnvOr("LIMITLESS_API_BASE_URL", "https://play.limitlesstcg.com/api"),
			Game:        getEnvOr("LIMITLESS_GAME", "OP"),
			OrganizerID: getEnvOr("LIMITLESS_ORGANIZER_ID", "2339"),
			NameFilter:  getEnvOr("CIRCUIT_NAME_FILTER", "chinoize"),
		},
		Slack: SlackConfig{
			Token:     getEnvOr("SLACK_BOT_TOKEN", ""),
			ChannelID: getEnvOr("SLACK_CHANNEL_ID", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		ProjectID: getEnvOr("GCP_PROJECT", ""),
		SyncTopic: getEnvOr("SYNC_TOPIC", "tournament-synced"),
	}
	return cfg
}
