package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	S3       S3Config
	Vocab    VocabConfig
	Ingest   IngestConfig
	Scanner  ScannerConfig
	Delivery DeliveryConfig
	Auth     AuthConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for flyer PDFs and split pages.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PagePrefix    string `mapstructure:"page_prefix"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// VocabConfig holds vocabulary dictionary settings.
type VocabConfig struct {
	Path string `mapstructure:"path"`
	// ShortWordLen and the distances tune the corrector thresholds.
	ShortWordLen  int `mapstructure:"short_word_len"`
	ShortWordDist int `mapstructure:"short_word_dist"`
	LongWordDist  int `mapstructure:"long_word_dist"`
}

// IngestConfig holds detection ingest settings.
type IngestConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// ScannerConfig holds validity scan worker settings.
type ScannerConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

// DeliveryConfig selects and configures the notification sink.
type DeliveryConfig struct {
	Provider string         `mapstructure:"provider"` // telegram, ses or noop
	Telegram TelegramConfig `mapstructure:"telegram"`
	Email    EmailConfig    `mapstructure:"email"`
}

// TelegramConfig holds Telegram Bot API settings.
type TelegramConfig struct {
	BotToken    string        `mapstructure:"bot_token"`
	APIBaseURL  string        `mapstructure:"api_base_url"`
	SendTimeout time.Duration `mapstructure:"send_timeout"`
}

// EmailConfig holds SES digest delivery settings.
type EmailConfig struct {
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	// AddressPattern renders a user id into a recipient address.
	AddressPattern string `mapstructure:"address_pattern"`
}

// AuthConfig holds the static admin token for mutating endpoints.
type AuthConfig struct {
	AdminToken string `mapstructure:"admin_token"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the FLYERWATCH_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FLYERWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "flyerwatch")
	v.SetDefault("db.password", "flyerwatch_secret")
	v.SetDefault("db.name", "flyerwatch_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "eu-central-1")
	v.SetDefault("s3.bucket", "flyerwatch-flyers")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.page_prefix", "pages/valid")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Vocabulary defaults
	v.SetDefault("vocab.path", "data/item_names.txt")
	v.SetDefault("vocab.short_word_len", 4)
	v.SetDefault("vocab.short_word_dist", 1)
	v.SetDefault("vocab.long_word_dist", 2)

	// Ingest defaults
	v.SetDefault("ingest.concurrency", 8)

	// Scanner defaults
	v.SetDefault("scanner.enabled", true)
	v.SetDefault("scanner.interval", "1h")

	// Delivery defaults
	v.SetDefault("delivery.provider", "noop")
	v.SetDefault("delivery.telegram.bot_token", "")
	v.SetDefault("delivery.telegram.api_base_url", "https://api.telegram.org")
	v.SetDefault("delivery.telegram.send_timeout", "10s")
	v.SetDefault("delivery.email.region", "eu-central-1")
	v.SetDefault("delivery.email.from_address", "noreply@flyerwatch.app")
	v.SetDefault("delivery.email.from_name", "Flyerwatch")
	v.SetDefault("delivery.email.address_pattern", "")

	// Auth defaults
	v.SetDefault("auth.admin_token", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "FLYERWATCH_SERVER_PORT",
		"server.read_timeout":            "FLYERWATCH_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "FLYERWATCH_SERVER_WRITE_TIMEOUT",
		"server.environment":             "FLYERWATCH_SERVER_ENVIRONMENT",
		"db.host":                        "FLYERWATCH_DB_HOST",
		"db.port":                        "FLYERWATCH_DB_PORT",
		"db.user":                        "FLYERWATCH_DB_USER",
		"db.password":                    "FLYERWATCH_DB_PASSWORD",
		"db.name":                        "FLYERWATCH_DB_NAME",
		"db.sslmode":                     "FLYERWATCH_DB_SSLMODE",
		"db.max_open":                    "FLYERWATCH_DB_MAX_OPEN",
		"db.max_idle":                    "FLYERWATCH_DB_MAX_IDLE",
		"s3.region":                      "FLYERWATCH_S3_REGION",
		"s3.bucket":                      "FLYERWATCH_S3_BUCKET",
		"s3.endpoint":                    "FLYERWATCH_S3_ENDPOINT",
		"s3.access_key":                  "FLYERWATCH_S3_ACCESS_KEY",
		"s3.secret_key":                  "FLYERWATCH_S3_SECRET_KEY",
		"s3.page_prefix":                 "FLYERWATCH_S3_PAGE_PREFIX",
		"s3.max_file_size_mb":            "FLYERWATCH_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":              "FLYERWATCH_S3_PRESIGN_EXPIRY",
		"vocab.path":                     "FLYERWATCH_VOCAB_PATH",
		"vocab.short_word_len":           "FLYERWATCH_VOCAB_SHORT_WORD_LEN",
		"vocab.short_word_dist":          "FLYERWATCH_VOCAB_SHORT_WORD_DIST",
		"vocab.long_word_dist":           "FLYERWATCH_VOCAB_LONG_WORD_DIST",
		"ingest.concurrency":             "FLYERWATCH_INGEST_CONCURRENCY",
		"scanner.enabled":                "FLYERWATCH_SCANNER_ENABLED",
		"scanner.interval":               "FLYERWATCH_SCANNER_INTERVAL",
		"delivery.provider":              "FLYERWATCH_DELIVERY_PROVIDER",
		"delivery.telegram.bot_token":    "FLYERWATCH_DELIVERY_TELEGRAM_BOT_TOKEN",
		"delivery.telegram.api_base_url": "FLYERWATCH_DELIVERY_TELEGRAM_API_BASE_URL",
		"delivery.telegram.send_timeout": "FLYERWATCH_DELIVERY_TELEGRAM_SEND_TIMEOUT",
		"delivery.email.region":          "FLYERWATCH_DELIVERY_EMAIL_REGION",
		"delivery.email.from_address":    "FLYERWATCH_DELIVERY_EMAIL_FROM_ADDRESS",
		"delivery.email.from_name":       "FLYERWATCH_DELIVERY_EMAIL_FROM_NAME",
		"delivery.email.address_pattern": "FLYERWATCH_DELIVERY_EMAIL_ADDRESS_PATTERN",
		"auth.admin_token":               "FLYERWATCH_AUTH_ADMIN_TOKEN",
		"log.level":                      "FLYERWATCH_LOG_LEVEL",
		"log.format":                     "FLYERWATCH_LOG_FORMAT",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding env %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Server.Environment == "production" && cfg.Auth.AdminToken == "" {
		return nil, fmt.Errorf("auth.admin_token must be set in production")
	}
	return &cfg, nil
}
