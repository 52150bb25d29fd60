package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	SRS       SRSConfig       `mapstructure:"srs" validate:"required"`
	Quiz      QuizConfig      `mapstructure:"quiz" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Driver selects the SQL dialect: postgres for the server, sqlite for local mode.
	Driver       string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL          string `mapstructure:"url" validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
	Issuer    string `mapstructure:"issuer"`
}

// SRSConfig tunes the spaced repetition scheduler.
type SRSConfig struct {
	MinEaseFactor     float64 `mapstructure:"min_ease_factor" validate:"gte=1.3"`
	InitialEaseFactor float64 `mapstructure:"initial_ease_factor" validate:"gtefield=MinEaseFactor"`
	FirstInterval     int     `mapstructure:"first_interval" validate:"gt=0"`
	SecondInterval    int     `mapstructure:"second_interval" validate:"gtefield=FirstInterval"`
	FailureInterval   int     `mapstructure:"failure_interval" validate:"gt=0"`
	MaxInterval       int     `mapstructure:"max_interval" validate:"gtefield=SecondInterval"`
}

// QuizConfig tunes wrong-answer quizzes and distractor generation.
type QuizConfig struct {
	SameTypeOnly       bool   `mapstructure:"same_type_only"`
	MinOptions         int    `mapstructure:"min_options" validate:"gte=2,lte=10"`
	MaxPeerDistractors int    `mapstructure:"max_peer_distractors" validate:"gte=0"`
	MasteryThreshold   int    `mapstructure:"mastery_threshold" validate:"gt=0"`
	BankPath           string `mapstructure:"bank_path"`         // optional JSON bank replacing the embedded one
	ContentPackPath    string `mapstructure:"content_pack_path"` // optional JSON content pack replacing the embedded one
}

// SchedulerConfig controls the periodic due-review digest.
type SchedulerConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	DigestInterval time.Duration `mapstructure:"digest_interval" validate:"gte=1m"`
}

// RateLimitConfig configures the per-client token bucket.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps" validate:"gt=0"`
	Burst int     `mapstructure:"burst" validate:"gt=0"`
}
