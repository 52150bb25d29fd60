package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. LINGO_DATABASE_URL for database.url.
const EnvPrefix = "LINGO"

// keys without defaults still need explicit env bindings so Unmarshal sees them
var envOnlyKeys = []string{
	"database.url",
	"auth.jwt_secret",
	"auth.issuer",
	"quiz.bank_path",
	"quiz.content_pack_path",
}

// Load configuration from environment variables and optionally config files.
// A .env file in the working directory is loaded first when present; real
// environment variables take precedence over it. Environment variables take
// precedence over values from config.yaml (searched in . and ./config).
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile behaves like Load but reads the given config file instead of
// searching for config.yaml. An empty path falls back to the search.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envOnlyKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", "15s")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.max_open_conns", 10)

	v.SetDefault("srs.min_ease_factor", 1.3)
	v.SetDefault("srs.initial_ease_factor", 2.5)
	v.SetDefault("srs.first_interval", 1)
	v.SetDefault("srs.second_interval", 6)
	v.SetDefault("srs.failure_interval", 1)
	v.SetDefault("srs.max_interval", 36500)

	v.SetDefault("quiz.same_type_only", true)
	v.SetDefault("quiz.min_options", 4)
	v.SetDefault("quiz.max_peer_distractors", 2)
	v.SetDefault("quiz.mastery_threshold", 3)

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.digest_interval", "1h")

	v.SetDefault("rate_limit.rps", 10)
	v.SetDefault("rate_limit.burst", 20)
}
