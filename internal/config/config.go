package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Port             string        `mapstructure:"port"`
	DBPath           string        `mapstructure:"db_path"`
	DBLogLevel       string        `mapstructure:"db_log_level"`
	TZ               string        `mapstructure:"tz"`
	SecretKey        string        `mapstructure:"secret_key"`
	CookieSecure     bool          `mapstructure:"cookie_secure"`
	RedisAddr        string        `mapstructure:"redis_addr"`
	ReconcileLockTTL time.Duration `mapstructure:"reconcile_lock_ttl"`
	DefaultCurrency  string        `mapstructure:"default_currency"`
}

// Load reads an optional .env file, then environment variables, then the
// YAML file named by FINORA_CONFIG when set. Environment values win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config: .env not loaded: %v", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := strings.TrimSpace(os.Getenv("FINORA_CONFIG")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db_path", filepath.Join("data", "finora.db"))
	v.SetDefault("db_log_level", "warn")
	v.SetDefault("tz", "UTC")
	v.SetDefault("secret_key", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("redis_addr", "")
	v.SetDefault("reconcile_lock_ttl", 30*time.Second)
	v.SetDefault("default_currency", "EUR")
}

func (cfg *Config) validate() error {
	secretKey, err := ValidateSecretKey(cfg.SecretKey)
	if err != nil {
		return err
	}
	cfg.SecretKey = secretKey

	port, err := ValidatePort(cfg.Port)
	if err != nil {
		return err
	}
	cfg.Port = port

	if cfg.ReconcileLockTTL <= 0 {
		return fmt.Errorf("RECONCILE_LOCK_TTL must be positive, got %s", cfg.ReconcileLockTTL)
	}
	cfg.DefaultCurrency = strings.ToUpper(strings.TrimSpace(cfg.DefaultCurrency))
	if len(cfg.DefaultCurrency) != 3 {
		return fmt.Errorf("DEFAULT_CURRENCY must be a 3-letter code, got %q", cfg.DefaultCurrency)
	}
	return nil
}

func ValidateSecretKey(raw string) (string, error) {
	secretKey := strings.TrimSpace(raw)
	if secretKey == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[secretKey]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secretKey) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secretKey, nil
}

func ValidatePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", fmt.Errorf("PORT must be between 1 and 65535, got %q", raw)
	}
	return port, nil
}

// Location resolves TZ, falling back to UTC for unknown zones.
func (cfg *Config) Location() *time.Location {
	location, err := time.LoadLocation(cfg.TZ)
	if err != nil {
		log.Printf("config: invalid TZ %q, falling back to UTC", cfg.TZ)
		return time.UTC
	}
	return location
}
