package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvConfigPath        = "CONFIG_PATH"
	EnvHTTPAddr          = "HTTP_ADDR"
	EnvDBDriver          = "DB_DRIVER"
	EnvDatabaseURL       = "DATABASE_URL"
	EnvJWTSecret         = "JWT_SECRET"
	EnvJWTIssuer         = "JWT_ISSUER"
	EnvJWTExpiry         = "JWT_EXPIRY"
	EnvResendAPIKey      = "RESEND_API_KEY"
	EnvEmailFrom         = "EMAIL_FROM"
	EnvGoogleUserInfoURL = "GOOGLE_USERINFO_URL"
	EnvRedisAddr         = "REDIS_ADDR"
	EnvRedisPassword     = "REDIS_PASSWORD"
	EnvRedisDB           = "REDIS_DB"
	EnvLogLevel          = "LOG_LEVEL"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultHTTPAddr  = ":8080"
	defaultJWTExpiry = 7 * 24 * time.Hour
	defaultLogLevel  = "info"
)

var (
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrUnknownDriver      = errors.New("unknown DB_DRIVER")
)

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	URL    string `yaml:"url"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Issuer string        `yaml:"issuer"`
	Expiry time.Duration `yaml:"expiry"`
}

type EmailConfig struct {
	ResendAPIKey string `yaml:"resend-api-key"`
	From         string `yaml:"from"`
}

type GoogleConfig struct {
	UserInfoURL string `yaml:"userinfo-url"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Config is the resolved application configuration.
type Config struct {
	HTTPAddr string         `yaml:"http-addr"`
	LogLevel string         `yaml:"log-level"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Email    EmailConfig    `yaml:"email"`
	Google   GoogleConfig   `yaml:"google"`
	Redis    RedisConfig    `yaml:"redis"`
}

// ResolveConfigPath normalizes the config path and applies defaults.
func ResolveConfigPath(p string) string {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		trimmed = "./config.yaml"
	}
	if abs, err := filepath.Abs(trimmed); err == nil {
		return abs
	}
	return trimmed
}

// Load reads .env (best effort), then the YAML file at CONFIG_PATH if it
// exists, then lets environment variables override file values.
func Load() (Config, error) {
	_ = godotenv.Load()
	return LoadFile(ResolveConfigPath(os.Getenv(EnvConfigPath)))
}

func LoadFile(configPath string) (Config, error) {
	var cfg Config
	data, errRead := os.ReadFile(configPath)
	switch {
	case errRead == nil:
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
			return Config{}, fmt.Errorf("parse config file: %w", errUnmarshal)
		}
	case !errors.Is(errRead, os.ErrNotExist):
		return Config{}, fmt.Errorf("read config file: %w", errRead)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&cfg)
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	override(&cfg.HTTPAddr, EnvHTTPAddr)
	override(&cfg.LogLevel, EnvLogLevel)
	override(&cfg.Database.Driver, EnvDBDriver)
	override(&cfg.Database.URL, EnvDatabaseURL)
	override(&cfg.JWT.Secret, EnvJWTSecret)
	override(&cfg.JWT.Issuer, EnvJWTIssuer)
	override(&cfg.Email.ResendAPIKey, EnvResendAPIKey)
	override(&cfg.Email.From, EnvEmailFrom)
	override(&cfg.Google.UserInfoURL, EnvGoogleUserInfoURL)
	override(&cfg.Redis.Addr, EnvRedisAddr)
	override(&cfg.Redis.Password, EnvRedisPassword)

	if raw := strings.TrimSpace(os.Getenv(EnvJWTExpiry)); raw != "" {
		expiry, err := time.ParseDuration(raw)
		if err != nil || expiry <= 0 {
			return fmt.Errorf("invalid %s %q", EnvJWTExpiry, raw)
		}
		cfg.JWT.Expiry = expiry
	}
	if raw := strings.TrimSpace(os.Getenv(EnvRedisDB)); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q", EnvRedisDB, raw)
		}
		cfg.Redis.DB = db
	}
	return nil
}

func override(target *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*target = value
	}
}

func applyDefaults(cfg *Config) {
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = defaultHTTPAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverPostgres
	}
	cfg.Database.Driver = strings.ToLower(cfg.Database.Driver)
	if cfg.JWT.Expiry <= 0 {
		cfg.JWT.Expiry = defaultJWTExpiry
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return ErrMissingJWTSecret
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w %q", ErrUnknownDriver, c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.URL) == "" {
		return ErrMissingDatabaseURL
	}
	return nil
}
