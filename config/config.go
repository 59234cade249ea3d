// Package config loads service configuration from an optional YAML file and
// the environment. Environment variables always win, so deployments can
// override a checked-in config file without editing it. A .env file is
// honored in development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// RedisConfig enables the shared Redis bulk-result cache.
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Config holds every tunable of the validation service.
type Config struct {
	Environment string `yaml:"environment"`
	ServerPort  string `yaml:"server_port"`
	LogLevel    string `yaml:"log_level"`

	SMTPFromDomain     string `yaml:"smtp_from_domain"`
	SMTPTimeoutMs      int    `yaml:"smtp_timeout_ms"`
	DisposableListPath string `yaml:"disposable_list_path"`

	// MaxBulkEmails caps one bulk request; the engine itself imposes no
	// bound.
	MaxBulkEmails int `yaml:"max_bulk_emails"`

	// AllowedOrigins for CORS.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// RateLimitPerMinute is the per-client request budget.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`

	// ProbeGlobalPerSec / ProbePerDomainPerSec throttle outbound SMTP
	// probes. Zero disables probe rate limiting.
	ProbeGlobalPerSec    float64 `yaml:"probe_global_per_sec"`
	ProbePerDomainPerSec float64 `yaml:"probe_per_domain_per_sec"`

	Redis RedisConfig `yaml:"redis"`
}

// Defaults returns the development configuration.
func Defaults() *Config {
	return &Config{
		Environment:          "development",
		ServerPort:           "8080",
		LogLevel:             "info",
		SMTPFromDomain:       "verifier.local",
		SMTPTimeoutMs:        5000,
		MaxBulkEmails:        1000,
		AllowedOrigins:       []string{"http://localhost:3000"},
		RateLimitPerMinute:   120,
		ProbeGlobalPerSec:    10,
		ProbePerDomainPerSec: 5,
		Redis: RedisConfig{
			Address: "localhost:6379",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// SMTPTimeout returns the probe deadline as a duration.
func (c *Config) SMTPTimeout() time.Duration {
	return time.Duration(c.SMTPTimeoutMs) * time.Millisecond
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnv() {
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.SMTPFromDomain = getEnv("SMTP_FROM_DOMAIN", c.SMTPFromDomain)
	c.SMTPTimeoutMs = getEnvAsInt("SMTP_TIMEOUT_MS", c.SMTPTimeoutMs)
	c.DisposableListPath = getEnv("DISPOSABLE_LIST_PATH", c.DisposableListPath)
	c.MaxBulkEmails = getEnvAsInt("MAX_BULK_EMAILS", c.MaxBulkEmails)
	c.RateLimitPerMinute = getEnvAsInt("RATE_LIMIT_PER_MINUTE", c.RateLimitPerMinute)

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.AllowedOrigins = splitAndTrim(origins)
	}

	c.Redis.Enabled = getEnvAsBool("REDIS_ENABLED", c.Redis.Enabled)
	c.Redis.Address = getEnv("REDIS_ADDR", c.Redis.Address)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvAsInt("REDIS_DB", c.Redis.DB)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvAsBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
