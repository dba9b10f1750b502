package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}
	cfg, err := FromEnv(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from lookup. DB_NAME and PORT are required,
// every integration is optional and disabled when its variables are unset.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var missing []string
	// A helper function to get a required env var.
	getEnv := func(key string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		missing = append(missing, key)
		return ""
	}
	optional := func(key string) string {
		value, _ := lookup(key)
		return value
	}

	cfg := Config{
		DBName: getEnv("DB_NAME"),
		Port:   getEnv("PORT"),
		Slack: SlackConfig{
			Token:         optional("SLACK_BOT_TOKEN"),
			ChannelID:     optional("SLACK_CHANNEL_ID"),
			SigningSecret: optional("SLACK_SIGNING_SECRET"),
		},
		Turso: TursoConfig{
			PrimaryURL: optional("TURSO_PRIMARY_URL"),
			AuthToken:  optional("TURSO_AUTH_TOKEN"),
		},
		Inngest: InngestConfig{
			AppID:      optional("INNGEST_APP_ID"),
			SigningKey: optional("INNGEST_SIGNING_KEY"),
			EventKey:   optional("INNGEST_EVENT_KEY"),
		},
		ProjectID: optional("GCP_PROJECT"),
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %v", missing)
	}
	if dev := optional("INNGEST_DEV"); dev != "" {
		parsed, err := strconv.ParseBool(dev)
		if err != nil {
			return Config{}, fmt.Errorf("invalid INNGEST_DEV %q: %w", dev, err)
		}
		cfg.Inngest.Dev = parsed
	}
	return cfg, nil
}
