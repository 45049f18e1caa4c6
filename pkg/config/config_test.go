// nolint: funlen
package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviebot/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads config from environment variables", func(t *testing.T) {
		envVars := map[string]string{
			"APP_ENV":                    "test",
			"PORT":                       "9090",
			"SENTRY_DSN":                 "https://test@sentry.io/123",
			"ALLOW_ORIGINS":              "*",
			"AUTH_JWT_SECRET":            "secret",
			"TMDB_API_KEY":               "tmdb-key",
			"TMDB_BASE_URL":              "http://localhost:9999",
			"TMDB_TIMEOUT":               "3",
			"TWITTER_ACCOUNT_NAME":       "moviesrus",
			"TWITTER_BEARER_TOKEN":       "app-token",
			"TWITTER_ACCESS_TOKEN":       "user-token",
			"TWITTER_REPLIES_PER_MINUTE": "5",
			"TWITTER_DISABLED":           "false",
		}
		for key, value := range envVars {
			t.Setenv(key, value)
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "https://test@sentry.io/123", cfg.SentryDSN)
		assert.Equal(t, "*", cfg.AllowOrigins)
		assert.Equal(t, "secret", cfg.Auth.JWTSecret)
		assert.Equal(t, "tmdb-key", cfg.TMDB.APIKey)
		assert.Equal(t, "http://localhost:9999", cfg.TMDB.BaseURL)
		assert.Equal(t, 3, cfg.TMDB.Timeout)
		assert.Equal(t, "moviesrus", cfg.Twitter.AccountName)
		assert.Equal(t, "app-token", cfg.Twitter.BearerToken)
		assert.Equal(t, "user-token", cfg.Twitter.AccessToken)
		assert.Equal(t, 5, cfg.Twitter.RepliesPerMinute)
		assert.False(t, cfg.Twitter.Disabled)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("applies defaults", func(t *testing.T) {
		for _, key := range []string{"PORT", "TMDB_BASE_URL", "TMDB_LANGUAGE", "TWITTER_REPLIES_PER_MINUTE"} {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "https://api.themoviedb.org", cfg.TMDB.BaseURL)
		assert.Equal(t, "en", cfg.TMDB.Language)
		assert.Equal(t, 10, cfg.Twitter.RepliesPerMinute)
	})

	t.Run("treats empty values as unset", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("TMDB_TIMEOUT", "")
		t.Setenv("TWITTER_DISABLED", "")

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, 10, cfg.TMDB.Timeout)
		assert.False(t, cfg.Twitter.Disabled)
	})

	t.Run("handles invalid port number", func(t *testing.T) {
		t.Setenv("PORT", "invalid")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid boolean value", func(t *testing.T) {
		t.Setenv("TWITTER_DISABLED", "not-a-boolean")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		cfg := &config.Config{}
		cfg.TMDB.APIKey = "tmdb-key"
		cfg.Twitter.AccountName = "moviesrus"
		cfg.Twitter.BearerToken = "app-token"
		cfg.Twitter.AccessToken = "user-token"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "complete", mutate: func(*config.Config) {}},
		{name: "missing tmdb key", mutate: func(c *config.Config) { c.TMDB.APIKey = "" }, wantErr: "TMDB_API_KEY"},
		{name: "missing account", mutate: func(c *config.Config) { c.Twitter.AccountName = "" }, wantErr: "TWITTER_ACCOUNT_NAME"},
		{name: "missing bearer", mutate: func(c *config.Config) { c.Twitter.BearerToken = "" }, wantErr: "TWITTER_BEARER_TOKEN"},
		{name: "missing user token", mutate: func(c *config.Config) { c.Twitter.AccessToken = "" }, wantErr: "TWITTER_ACCESS_TOKEN"},
		{
			name: "twitter disabled",
			mutate: func(c *config.Config) {
				c.Twitter.Disabled = true
				c.Twitter.BearerToken = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
