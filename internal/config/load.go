package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. TASKS_SERVER_PORT.
const EnvPrefix = "TASKS"

var defaults = map[string]any{
	"server.port":                 8080,
	"server.log_level":            "info",
	"server.shutdown_timeout":     10 * time.Second,
	"database.url":                "",
	"database.max_open_conns":     10,
	"database.max_idle_conns":     5,
	"auth.jwt_secret":             "",
	"auth.token_lifetime_minutes": 60,
	"auth.issuer":                 "tasks-api",
	"push.backend":                "log",
	"push.credentials_file":       "",
	"push.project_id":             "",
	"push.batch_size":             500,
	"push.include_actor":          false,
	"classifier.backend":          "none",
	"classifier.url":              "",
	"classifier.timeout":          10 * time.Second,
	"classifier.gemini_api_key":   "",
	"classifier.model_name":       "gemini-2.0-flash",
	"jobs.reminder_interval":      time.Minute,
	"jobs.token_expiry_interval":  time.Hour,
	"jobs.worker_count":           4,
	"jobs.queue_size":             256,
	"jobs.job_timeout":            30 * time.Second,
	"invites.ttl":                 4 * time.Hour,
	"redis.addr":                  "",
	"redis.password":              "",
	"redis.db":                    0,
	"redis.requests_per_minute":   120,
	"events.backend":              "memory",
	"events.topic":                "list-actions",
	"events.group_id":             "tasks-api-dispatch",
}

// Load reads configuration from a .env file (if present), environment
// variables prefixed with TASKS_ and an optional config.yaml in the working
// directory. Environment variables take precedence over the config file.
// The result is validated before it is returned.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// viper does not split comma-separated env values into slices.
	if raw := os.Getenv(EnvPrefix + "_EVENTS_BROKERS"); raw != "" {
		cfg.Events.Brokers = splitList(raw)
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
	// required_if accepts an empty, non-nil slice.
	if cfg.Events.Backend == "kafka" && len(cfg.Events.Brokers) == 0 {
		return errors.New("config validation failed: events.brokers must name at least one broker for the kafka backend")
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
