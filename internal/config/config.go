// Package config defines the application's configuration model and loads it
// from the environment, an optional .env file and an optional config file.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth" validate:"required"`
	Push       PushConfig       `mapstructure:"push" validate:"required"`
	Classifier ClassifierConfig `mapstructure:"classifier" validate:"required"`
	Jobs       JobsConfig       `mapstructure:"jobs" validate:"required"`
	Invites    InvitesConfig    `mapstructure:"invites" validate:"required"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Events     EventsConfig     `mapstructure:"events" validate:"required"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error fatal"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains Postgres connection settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
}

// AuthConfig contains settings for validating caller access tokens.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	// Issuer is required in the iss claim of every accepted token.
	Issuer string `mapstructure:"issuer" validate:"required"`
}

// PushConfig selects and configures the push-delivery backend.
type PushConfig struct {
	// Backend is "fcm" for Firebase Cloud Messaging or "log" to only log messages.
	Backend         string `mapstructure:"backend" validate:"required,oneof=fcm log"`
	CredentialsFile string `mapstructure:"credentials_file" validate:"required_if=Backend fcm"`
	ProjectID       string `mapstructure:"project_id"`
	// BatchSize is capped at the delivery backend's per-call ceiling.
	BatchSize int `mapstructure:"batch_size" validate:"gt=0,lte=500"`
	// IncludeActor controls whether the member who caused an action is notified too.
	IncludeActor bool `mapstructure:"include_actor"`
}

// ClassifierConfig configures task category prediction.
type ClassifierConfig struct {
	Backend      string        `mapstructure:"backend" validate:"required,oneof=websocket gemini none"`
	URL          string        `mapstructure:"url" validate:"required_if=Backend websocket,omitempty,url"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gt=0"`
	GeminiAPIKey string        `mapstructure:"gemini_api_key" validate:"required_if=Backend gemini"`
	ModelName    string        `mapstructure:"model_name"`
}

// JobsConfig configures background job processing and periodic sweeps.
type JobsConfig struct {
	ReminderInterval    time.Duration `mapstructure:"reminder_interval" validate:"gt=0"`
	TokenExpiryInterval time.Duration `mapstructure:"token_expiry_interval" validate:"gt=0"`
	WorkerCount         int           `mapstructure:"worker_count" validate:"gt=0"`
	QueueSize           int           `mapstructure:"queue_size" validate:"gt=0"`
	JobTimeout          time.Duration `mapstructure:"job_timeout" validate:"gt=0"`
}

// InvitesConfig configures list invite tokens.
type InvitesConfig struct {
	TTL time.Duration `mapstructure:"ttl" validate:"gt=0"`
}

// RedisConfig configures the Redis connection used for rate limiting.
// An empty Addr disables rate limiting.
type RedisConfig struct {
	Addr              string `mapstructure:"addr"`
	Password          string `mapstructure:"password"`
	DB                int    `mapstructure:"db" validate:"gte=0"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" validate:"gte=0"`
}

// EventsConfig selects the transport carrying action events to the dispatcher.
type EventsConfig struct {
	Backend string   `mapstructure:"backend" validate:"required,oneof=memory kafka"`
	Brokers []string `mapstructure:"brokers" validate:"required_if=Backend kafka"`
	Topic   string   `mapstructure:"topic" validate:"required_if=Backend kafka"`
	GroupID string   `mapstructure:"group_id" validate:"required_if=Backend kafka"`
}
