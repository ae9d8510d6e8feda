// Package config loads coffeecloud server configuration.
//
// Sources are applied in order, later ones win:
//   - built-in defaults
//   - YAML file (optional)
//   - .env file loaded into the process environment
//   - COFFEE_* environment variables
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "COFFEE_"

// MinJWTSecretLength is the shortest accepted HMAC secret.
const MinJWTSecretLength = 32

// Blacklist backends
const (
	BlacklistSQLite = "sqlite"
	BlacklistRedis  = "redis"
)

// Event backends
const (
	EventsNone = "none"
	EventsNATS = "nats"
	EventsMQTT = "mqtt"
)

// Config is the root server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Blacklist BlacklistConfig `yaml:"blacklist"`
	Events    EventsConfig    `yaml:"events"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig configures the SQLite database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// JWTConfig configures token issuing.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	Issuer     string        `yaml:"issuer"`
	AccessTTL  time.Duration `yaml:"access_ttl"`
	RefreshTTL time.Duration `yaml:"refresh_ttl"`
}

// BlacklistConfig selects where revoked tokens are kept.
type BlacklistConfig struct {
	Backend       string        `yaml:"backend"`
	PurgeInterval time.Duration `yaml:"purge_interval"`
	Redis         RedisConfig   `yaml:"redis"`
}

// RedisConfig configures the redis blacklist backend.
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	KeyPrefix string `yaml:"key_prefix"`
	DB        int    `yaml:"db"`
}

// EventsConfig selects the order event publisher.
type EventsConfig struct {
	Backend     string     `yaml:"backend"`
	TopicPrefix string     `yaml:"topic_prefix"`
	NATS        NATSConfig `yaml:"nats"`
	MQTT        MQTTConfig `yaml:"mqtt"`
}

// NATSConfig configures the NATS publisher.
type NATSConfig struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

// MQTTConfig configures the MQTT publisher.
type MQTTConfig struct {
	Broker         string        `yaml:"broker"`
	ClientID       string        `yaml:"client_id"`
	Username       string        `yaml:"username"`
	Password       string        `yaml:"password"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	QoS            byte          `yaml:"qos"`
}

// LoggingConfig configures the slog logger.
type LoggingConfig struct {
	Level  string        `yaml:"level"`  // debug, info, warn, error
	Format string        `yaml:"format"` // json, text
	Output string        `yaml:"output"` // stdout, stderr, file
	File   FileLogConfig `yaml:"file"`
}

// FileLogConfig configures rotation of the log file.
type FileLogConfig struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// RateLimitConfig configures per-client request limiting.
type RateLimitConfig struct {
	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For is honored.
	TrustedProxies    []string `yaml:"trusted_proxies"`
	RequestsPerSecond float64  `yaml:"requests_per_second"`
	Burst             int      `yaml:"burst"`
	Enabled           bool     `yaml:"enabled"`
}

// Load builds the configuration.
//
// path may be empty, then only defaults and the environment are used.
// envFiles are loaded with godotenv before the overrides are applied;
// without envFiles a ".env" in the working directory is used if present.
// Variables already set in the environment are never replaced by a .env file.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := loadDotEnv(envFiles); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadDotEnv(files []string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		files = []string{".env"}
	}

	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// defaultConfig returns a Config with sensible defaults.
// The JWT secret has no default and must be provided.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path: "./data/coffeecloud.db",
		},
		JWT: JWTConfig{
			Issuer:     "coffeecloud",
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 30 * 24 * time.Hour,
		},
		Blacklist: BlacklistConfig{
			Backend:       BlacklistSQLite,
			PurgeInterval: time.Hour,
			Redis: RedisConfig{
				Addr:      "localhost:6379",
				KeyPrefix: "coffeecloud:revoked:",
			},
		},
		Events: EventsConfig{
			Backend:     EventsNone,
			TopicPrefix: "coffeecloud",
			NATS: NATSConfig{
				URL:  "nats://localhost:4222",
				Name: "coffeecloud-server",
			},
			MQTT: MQTTConfig{
				Broker:         "tcp://localhost:1883",
				ClientID:       "coffeecloud-server",
				ConnectTimeout: 10 * time.Second,
				QoS:            1,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
			File: FileLogConfig{
				Path:       "./logs/coffeecloud.log",
				MaxSizeMB:  100,
				MaxBackups: 5,
				MaxAgeDays: 30,
				Compress:   true,
			},
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 10,
			Burst:             20,
		},
	}
}

// applyEnvOverrides applies COFFEE_SECTION_KEY environment variables.
func applyEnvOverrides(cfg *Config) error {
	setString := map[string]*string{
		"SERVER_ADDR":       &cfg.Server.Addr,
		"DATABASE_PATH":     &cfg.Database.Path,
		"JWT_SECRET":        &cfg.JWT.Secret,
		"JWT_ISSUER":        &cfg.JWT.Issuer,
		"BLACKLIST_BACKEND": &cfg.Blacklist.Backend,
		"REDIS_ADDR":        &cfg.Blacklist.Redis.Addr,
		"REDIS_PASSWORD":    &cfg.Blacklist.Redis.Password,
		"EVENTS_BACKEND":    &cfg.Events.Backend,
		"NATS_URL":          &cfg.Events.NATS.URL,
		"MQTT_BROKER":       &cfg.Events.MQTT.Broker,
		"MQTT_USERNAME":     &cfg.Events.MQTT.Username,
		"MQTT_PASSWORD":     &cfg.Events.MQTT.Password,
		"LOG_LEVEL":         &cfg.Logging.Level,
		"LOG_FORMAT":        &cfg.Logging.Format,
		"LOG_OUTPUT":        &cfg.Logging.Output,
		"LOG_FILE":          &cfg.Logging.File.Path,
	}
	for key, dst := range setString {
		if v := os.Getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}

	setDuration := map[string]*time.Duration{
		"JWT_ACCESS_TTL":           &cfg.JWT.AccessTTL,
		"JWT_REFRESH_TTL":          &cfg.JWT.RefreshTTL,
		"BLACKLIST_PURGE_INTERVAL": &cfg.Blacklist.PurgeInterval,
	}
	for key, dst := range setDuration {
		v := os.Getenv(EnvPrefix + key)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = d
	}

	if v := os.Getenv(EnvPrefix + "REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sREDIS_DB: %w", EnvPrefix, err)
		}
		cfg.Blacklist.Redis.DB = db
	}

	if v := os.Getenv(EnvPrefix + "RATE_LIMIT_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sRATE_LIMIT_ENABLED: %w", EnvPrefix, err)
		}
		cfg.RateLimit.Enabled = enabled
	}

	if v := os.Getenv(EnvPrefix + "RATE_LIMIT_TRUSTED_PROXIES"); v != "" {
		cfg.RateLimit.TrustedProxies = strings.Split(v, ",")
	}

	return nil
}

// Validate checks the configuration for errors.
// All problems are reported at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Addr == "" {
		errs = append(errs, "server.addr is required")
	}

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	if c.JWT.Secret == "" {
		errs = append(errs, "jwt.secret is required (set "+EnvPrefix+"JWT_SECRET environment variable)")
	} else if len(c.JWT.Secret) < MinJWTSecretLength {
		errs = append(errs, fmt.Sprintf("jwt.secret must be at least %d characters", MinJWTSecretLength))
	}
	if c.JWT.AccessTTL <= 0 {
		errs = append(errs, "jwt.access_ttl must be positive")
	}
	if c.JWT.RefreshTTL <= c.JWT.AccessTTL {
		errs = append(errs, "jwt.refresh_ttl must be longer than jwt.access_ttl")
	}

	switch c.Blacklist.Backend {
	case BlacklistSQLite:
	case BlacklistRedis:
		if c.Blacklist.Redis.Addr == "" {
			errs = append(errs, "blacklist.redis.addr is required for redis backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("blacklist.backend %q is not one of sqlite, redis", c.Blacklist.Backend))
	}
	if c.Blacklist.PurgeInterval <= 0 {
		errs = append(errs, "blacklist.purge_interval must be positive")
	}

	switch c.Events.Backend {
	case EventsNone:
	case EventsNATS:
		if c.Events.NATS.URL == "" {
			errs = append(errs, "events.nats.url is required for nats backend")
		}
	case EventsMQTT:
		if c.Events.MQTT.Broker == "" {
			errs = append(errs, "events.mqtt.broker is required for mqtt backend")
		}
		if c.Events.MQTT.QoS > 2 {
			errs = append(errs, "events.mqtt.qos must be 0, 1, or 2")
		}
	default:
		errs = append(errs, fmt.Sprintf("events.backend %q is not one of none, nats, mqtt", c.Events.Backend))
	}

	switch strings.ToLower(c.Logging.Output) {
	case "stdout", "stderr":
	case "file":
		if c.Logging.File.Path == "" {
			errs = append(errs, "logging.file.path is required for file output")
		}
	default:
		errs = append(errs, fmt.Sprintf("logging.output %q is not one of stdout, stderr, file", c.Logging.Output))
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1) {
		errs = append(errs, "rate_limit.requests_per_second and rate_limit.burst must be positive")
	}
	for _, proxy := range c.RateLimit.TrustedProxies {
		if !validProxy(strings.TrimSpace(proxy)) {
			errs = append(errs, fmt.Sprintf("rate_limit.trusted_proxies: %q is not an IP or CIDR", proxy))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

func validProxy(s string) bool {
	if s == "" {
		return true
	}
	if _, err := netip.ParsePrefix(s); err == nil {
		return true
	}
	_, err := netip.ParseAddr(s)
	return err == nil
}
