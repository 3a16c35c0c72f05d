package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

const envPrefix = "GATEWAY_"

// OrchestrationSteps is the longest provider call sequence a single run makes.
const OrchestrationSteps = 3

type Config struct {
	Primary  Primary        `koanf:"primary"`
	Server   ServerConfig   `koanf:"server"`
	Upstream UpstreamConfig `koanf:"upstream"`
	Notifier NotifierConfig `koanf:"notifier"`
	Database DatabaseConfig `koanf:"database"`
	Inbox    InboxConfig    `koanf:"inbox"`
	Logger   LoggerConfig   `koanf:"logger"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port           string        `koanf:"port" validate:"required"`
	ReadTimeout    time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout   time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout    time.Duration `koanf:"idle_timeout" validate:"required"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"required"`
}

// UpstreamConfig describes the payments provider. It is read-only once loaded.
type UpstreamConfig struct {
	BaseURL    string        `koanf:"base_url" validate:"required,url"`
	SecretKey  string        `koanf:"secret_key" validate:"required"`
	Timeout    time.Duration `koanf:"timeout" validate:"required"`
	CustomerID string        `koanf:"customer_id" validate:"required"`
}

type NotifierConfig struct {
	Driver      string        `koanf:"driver" validate:"required,oneof=webhook nats none"`
	WebhookURL  string        `koanf:"webhook_url"`
	UserAgent   string        `koanf:"user_agent" validate:"required"`
	NATSURL     string        `koanf:"nats_url"`
	NATSSubject string        `koanf:"nats_subject"`
	Source      string        `koanf:"source" validate:"required"`
	Timeout     time.Duration `koanf:"timeout" validate:"required"`
	QueueSize   int           `koanf:"queue_size" validate:"required,min=1"`
	Workers     int           `koanf:"workers" validate:"required,min=1"`

	// DrainTimeout bounds delivery of queued events during shutdown.
	DrainTimeout time.Duration `koanf:"drain_timeout" validate:"required"`
}

// DatabaseConfig is only needed when the inbound webhook journal is enabled.
type DatabaseConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name"`
	SSLMode         string        `koanf:"ssl_mode"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

type InboxConfig struct {
	Retention     time.Duration `koanf:"retention" validate:"required"`
	PruneInterval time.Duration `koanf:"prune_interval" validate:"required"`
}

type LoggerConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaults() map[string]any {
	return map[string]any{
		"primary.env":                 "development",
		"server.port":                 "8080",
		"server.read_timeout":         15 * time.Second,
		"server.write_timeout":        60 * time.Second,
		"server.idle_timeout":         120 * time.Second,
		"server.request_timeout":      45 * time.Second,
		"upstream.base_url":           "https://sandboxapi.bitnob.co/api/v1",
		"upstream.timeout":            15 * time.Second,
		"upstream.customer_id":        "e22795d9-23f6-48e6-8b30-be5718abd876",
		"notifier.driver":             "webhook",
		"notifier.user_agent":         "Bitnob-Gateway-Webhook/1.0",
		"notifier.nats_subject":       "gateway.events",
		"notifier.source":             "bitnob-gateway",
		"notifier.timeout":            5 * time.Second,
		"notifier.drain_timeout":      10 * time.Second,
		"notifier.queue_size":         256,
		"notifier.workers":            2,
		"database.port":               5432,
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     10,
		"database.max_idle_conns":     2,
		"database.conn_max_lifetime":  time.Hour,
		"database.conn_max_idle_time": 30 * time.Minute,
		"inbox.retention":             7 * 24 * time.Hour,
		"inbox.prune_interval":        time.Hour,
		"logger.level":                "info",
		"logger.format":               "json",
	}
}

// LoadConfig layers defaults, an optional YAML file named by
// GATEWAY_CONFIG_FILE and GATEWAY_* environment variables, in that order.
func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load defaults", "error", err)
		return nil, err
	}

	if path := os.Getenv(envPrefix + "CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			logger.Error("failed to load config file", "path", path, "error", err)
			return nil, err
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	if err := mainConfig.validateDependencies(); err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

func (c *Config) validateDependencies() error {
	if c.Notifier.Driver == "nats" && c.Notifier.NATSURL == "" {
		return errors.New("notifier.nats_url is required when notifier.driver is nats")
	}

	if c.Server.RequestTimeout <= c.Upstream.Timeout {
		return errors.New("server.request_timeout must be greater than upstream.timeout")
	}

	if budget := OrchestrationSteps * c.Upstream.Timeout; c.Server.WriteTimeout <= budget {
		return fmt.Errorf("server.write_timeout must be greater than %s (%d steps of upstream.timeout)", budget, OrchestrationSteps)
	}

	if c.Database.Enabled {
		if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
			return errors.New("database host, user and name are required when database.enabled is true")
		}
	}

	return nil
}
