package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("minimal", func(t *testing.T) {
		cfg, err := FromEnv(lookupFrom(map[string]string{"DB_NAME": "tt.db", "PORT": "8080"}))
		require.NoError(t, err)
		assert.Equal(t, "tt.db", cfg.DBName)
		assert.Equal(t, "8080", cfg.Port)
		assert.False(t, cfg.Slack.Enabled())
		assert.False(t, cfg.Inngest.Enabled())
		assert.Empty(t, cfg.ProjectID)
	})

	t.Run("integrations", func(t *testing.T) {
		cfg, err := FromEnv(lookupFrom(map[string]string{
			"DB_NAME":          "tt.db",
			"PORT":             "8080",
			"SLACK_BOT_TOKEN":  "xoxb-1",
			"SLACK_CHANNEL_ID": "C1",
			"INNGEST_APP_ID":   "tt-encounter",
			"INNGEST_DEV":      "true",
			"GCP_PROJECT":      "club",
		}))
		require.NoError(t, err)
		assert.True(t, cfg.Slack.Enabled())
		assert.True(t, cfg.Inngest.Enabled())
		assert.True(t, cfg.Inngest.Dev)
		assert.Equal(t, "club", cfg.ProjectID)
	})

	t.Run("missing required", func(t *testing.T) {
		_, err := FromEnv(lookupFrom(map[string]string{"PORT": "8080"}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_NAME")
	})

	t.Run("invalid bool", func(t *testing.T) {
		_, err := FromEnv(lookupFrom(map[string]string{"DB_NAME": "tt.db", "PORT": "8080", "INNGEST_DEV": "maybe"}))
		assert.Error(t, err)
	})
}
