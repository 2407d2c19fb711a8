// Package config resolves server settings from defaults, an optional YAML file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"

	dotEnvFile = ".env"
)

type Config struct {
	ServiceName        string        `yaml:"serviceName"`
	HTTPPort           string        `yaml:"port"`
	RequestTimeout     time.Duration `yaml:"requestTimeout"`
	ShutdownTimeout    time.Duration `yaml:"shutdownTimeout"`
	MaxRequestBodySize int64         `yaml:"maxRequestBodySize"`
	AllowedOrigins     []string      `yaml:"allowedOrigins"`

	Session SessionConfig `yaml:"session"`
	Redis   RedisConfig   `yaml:"redis"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Admin   AdminConfig   `yaml:"admin"`
	Log     LogConfig     `yaml:"log"`

	SeedCatalog bool `yaml:"seedCatalog"`
}

type SessionConfig struct {
	// TTL of zero keeps sessions until logout.
	TTL             time.Duration `yaml:"ttl"`
	Backend         string        `yaml:"backend"`
	CleanupInterval time.Duration `yaml:"cleanupInterval"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	// Brokers empty disables publishing to Kafka.
	Brokers    []string      `yaml:"brokers"`
	Topic      string        `yaml:"topic"`
	OutboxTick time.Duration `yaml:"outboxTick"`
}

type AdminConfig struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() *Config {
	return &Config{
		ServiceName:        "ecommerce-server",
		HTTPPort:           "8080",
		RequestTimeout:     30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: 1 << 20, // 1MB
		AllowedOrigins: []string{
			"http://localhost:5173",
			"https://ecommerce-frontend-22u8.onrender.com",
		},
		Session: SessionConfig{
			Backend:         BackendMemory,
			CleanupInterval: time.Minute,
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Kafka: KafkaConfig{
			Topic:      "orders-placed",
			OutboxTick: time.Second,
		},
		Admin: AdminConfig{
			Name:     "Admin User",
			Email:    "admin@example.com",
			Password: "admin123",
		},
		Log:         LogConfig{Level: "info", Format: "json"},
		SeedCatalog: true,
	}
}

// Load applies, in order, the defaults, the YAML file at path (if any), ./.env and the environment.
func Load(path string) (*Config, error) {
	return load(path, dotEnvFile)
}

func load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// godotenv never overrides variables already set in the environment
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var errs []error

	c.HTTPPort = getEnv("PORT", c.HTTPPort)
	c.AllowedOrigins = getEnvList("CORS_ALLOWED_ORIGINS", c.AllowedOrigins)
	c.Session.Backend = getEnv("SESSION_BACKEND", c.Session.Backend)
	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Kafka.Brokers = getEnvList("KAFKA_BROKERS", c.Kafka.Brokers)
	c.Kafka.Topic = getEnv("KAFKA_TOPIC", c.Kafka.Topic)
	c.Admin.Email = getEnv("ADMIN_EMAIL", c.Admin.Email)
	c.Admin.Password = getEnv("ADMIN_PASSWORD", c.Admin.Password)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)

	var err error
	if c.Session.TTL, err = getEnvDuration("SESSION_TTL", c.Session.TTL); err != nil {
		errs = append(errs, err)
	}
	if c.Kafka.OutboxTick, err = getEnvDuration("OUTBOX_TICK", c.Kafka.OutboxTick); err != nil {
		errs = append(errs, err)
	}
	if c.Redis.DB, err = getEnvInt("REDIS_DB", c.Redis.DB); err != nil {
		errs = append(errs, err)
	}
	if c.SeedCatalog, err = getEnvBool("SEED_CATALOG", c.SeedCatalog); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Config) Validate() error {
	var errs []error
	port, err := strconv.Atoi(c.HTTPPort)
	if err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %q", c.HTTPPort))
	}
	switch c.Session.Backend {
	case BackendMemory, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown session backend %q", c.Session.Backend))
	}
	if c.Session.TTL < 0 {
		errs = append(errs, fmt.Errorf("session ttl must not be negative, got %s", c.Session.TTL))
	}
	if c.Session.Backend == BackendRedis && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis address is required for the redis session backend"))
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		errs = append(errs, errors.New("kafka topic is required when brokers are set"))
	}
	if c.Admin.Email == "" || c.Admin.Password == "" {
		errs = append(errs, errors.New("admin email and password are required"))
	}
	return errors.Join(errs...)
}

// EventsEnabled reports whether order events go to Kafka.
func (c *Config) EventsEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvDuration accepts Go durations ("90m") or plain seconds ("3600").
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}
