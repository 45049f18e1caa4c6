package config

import (
	"fmt"
	"os"
	"reflect"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT" default:"8080"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`

	TMDB struct {
		APIKey   string `envconfig:"TMDB_API_KEY"`
		BaseURL  string `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org"`
		Language string `envconfig:"TMDB_LANGUAGE" default:"en"`
		Timeout  int    `envconfig:"TMDB_TIMEOUT" default:"10"`
	}
	Twitter struct {
		Disabled         bool   `envconfig:"TWITTER_DISABLED"`
		AccountName      string `envconfig:"TWITTER_ACCOUNT_NAME"`
		BaseURL          string `envconfig:"TWITTER_BASE_URL" default:"https://api.twitter.com"`
		BearerToken      string `envconfig:"TWITTER_BEARER_TOKEN"`
		AccessToken      string `envconfig:"TWITTER_ACCESS_TOKEN"`
		RefreshToken     string `envconfig:"TWITTER_REFRESH_TOKEN"`
		ClientID         string `envconfig:"TWITTER_CLIENT_ID"`
		ClientSecret     string `envconfig:"TWITTER_CLIENT_SECRET"`
		RepliesPerMinute int    `envconfig:"TWITTER_REPLIES_PER_MINUTE" default:"10"`
	}
	Auth struct {
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	unsetEmpty(reflect.TypeOf(cfg).Elem())
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}

// unsetEmpty drops exported-but-empty variables so that envconfig falls back
// to the field default instead of parsing "".
func unsetEmpty(t reflect.Type) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type.Kind() == reflect.Struct {
			unsetEmpty(f.Type)
			continue
		}
		key := f.Tag.Get("envconfig")
		if key == "" {
			continue
		}
		if v, ok := os.LookupEnv(key); ok && v == "" {
			_ = os.Unsetenv(key)
		}
	}
}

// Validate checks the settings the bot cannot start without.
func (c *Config) Validate() error {
	if c.TMDB.APIKey == "" {
		return fmt.Errorf("config: TMDB_API_KEY is required")
	}
	if c.Twitter.Disabled {
		return nil
	}
	if c.Twitter.AccountName == "" {
		return fmt.Errorf("config: TWITTER_ACCOUNT_NAME is required")
	}
	if c.Twitter.BearerToken == "" {
		return fmt.Errorf("config: TWITTER_BEARER_TOKEN is required")
	}
	if c.Twitter.AccessToken == "" && c.Twitter.RefreshToken == "" {
		return fmt.Errorf("config: TWITTER_ACCESS_TOKEN or TWITTER_REFRESH_TOKEN is required")
	}
	return nil
}
