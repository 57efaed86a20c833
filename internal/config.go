package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"http_server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Storage     StorageConfig  `mapstructure:"storage"`
	Notify      NotifyConfig   `mapstructure:"notify"`
	Admin       AdminConfig    `mapstructure:"admin"`
	Logging     LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Source          string        `mapstructure:"source"`
}

// RedisConfig drives the optional issue-intake rate limiter. Leaving Addr
// empty disables the limiter entirely.
type RedisConfig struct {
	Addr            string        `mapstructure:"addr"`
	Password        string        `mapstructure:"password"`
	DB              int           `mapstructure:"db"`
	RateLimitCount  int           `mapstructure:"rate_limit_count"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
}

// StorageConfig selects the photo upload backend. Provider "b2" streams to
// a Backblaze bucket; anything else falls back to inline data URLs.
type StorageConfig struct {
	Provider       string `mapstructure:"provider"`
	B2AccountID    string `mapstructure:"b2_account_id"`
	B2AppKey       string `mapstructure:"b2_app_key"`
	B2Bucket       string `mapstructure:"b2_bucket"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
}

type NotifyConfig struct {
	WebhookURL string        `mapstructure:"webhook_url"`
	MaxWorkers int           `mapstructure:"max_workers"`
	QueueSize  int           `mapstructure:"queue_size"`
	JobTimeout time.Duration `mapstructure:"job_timeout"`
}

// AdminConfig holds the panel sign-in credentials. PasswordHash is a bcrypt
// hash; no plaintext password appears in configuration.
type AdminConfig struct {
	Email               string        `mapstructure:"email"`
	PasswordHash        string        `mapstructure:"password_hash"`
	JWTSecret           string        `mapstructure:"jwt_secret"`
	AccessTokenDuration time.Duration `mapstructure:"access_token_duration"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ----------------- ENV LOADING -----------------

// LoadConfigFromEnv builds a Config purely from environment variables, used
// for container deployments where no config.yml is mounted.
func LoadConfigFromEnv() *Config {
	return &Config{
		Environment: getEnv("APP_ENV", "production"),
		Server: ServerConfig{
			Port:              getEnvAsInt("HTTP_PORT", 8080),
			BaseURL:           getEnv("BASE_URL", ""),
			AllowedOrigins:    getEnv("ALLOWED_ORIGINS", "*"),
			ReadHeaderTimeout: getEnvAsDuration("READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("READ_TIMEOUT", 10*time.Second),
			IdleTimeout:       getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
			WriteTimeout:      getEnvAsDuration("WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Source:          getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Addr:            getEnv("REDIS_ADDR", ""),
			Password:        getEnv("REDIS_PASSWORD", ""),
			DB:              getEnvAsInt("REDIS_DB", 0),
			RateLimitCount:  getEnvAsInt("RATE_LIMIT_COUNT", 10),
			RateLimitWindow: getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Storage: StorageConfig{
			Provider:       getEnv("STORAGE_PROVIDER", "inline"),
			B2AccountID:    getEnv("B2_ACCOUNT_ID", ""),
			B2AppKey:       getEnv("B2_APP_KEY", ""),
			B2Bucket:       getEnv("B2_BUCKET", ""),
			MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_BYTES", 5*1024*1024)),
		},
		Notify: NotifyConfig{
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
			MaxWorkers: getEnvAsInt("NOTIFY_MAX_WORKERS", 4),
			QueueSize:  getEnvAsInt("NOTIFY_QUEUE_SIZE", 64),
			JobTimeout: getEnvAsDuration("NOTIFY_JOB_TIMEOUT", 10*time.Second),
		},
		Admin: AdminConfig{
			Email:               getEnv("ADMIN_EMAIL", ""),
			PasswordHash:        getEnv("ADMIN_PASSWORD_HASH", ""),
			JWTSecret:           getEnv("ADMIN_JWT_SECRET", ""),
			AccessTokenDuration: getEnvAsDuration("ADMIN_TOKEN_DURATION", 24*time.Hour),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("storage config: %v", err))
	}

	if err := c.Admin.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("admin config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *StorageConfig) Validate() error {
	if c.Provider == "b2" {
		if c.B2AccountID == "" || c.B2AppKey == "" || c.B2Bucket == "" {
			return errors.New("b2 storage requires b2_account_id, b2_app_key and b2_bucket")
		}
	}
	return nil
}

func (c *AdminConfig) Validate() error {
	if c.Email == "" && c.PasswordHash == "" {
		// admin session disabled, nothing to check
		return nil
	}
	if c.Email == "" || c.PasswordHash == "" {
		return errors.New("admin email and password_hash must be set together")
	}
	if !strings.HasPrefix(c.PasswordHash, "$2") {
		return errors.New("admin password_hash must be a bcrypt hash")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("admin jwt_secret must be at least 32 characters")
	}
	return nil
}

// Enabled reports whether admin sign-in is configured.
func (c *AdminConfig) Enabled() bool {
	return c.Email != "" && c.PasswordHash != ""
}

// Enabled reports whether the Redis-backed rate limiter should run.
func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}
