package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database      DatabaseConfig
	Redis         RedisConfig
	CORS          CORSConfig
	Log           LogConfig
	Paystack      PaystackConfig
	Email         EmailConfig
	Notifications NotificationsConfig
	Cache         CacheConfig
	Admin         AdminConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// PaystackConfig holds gateway credentials and endpoints.
type PaystackConfig struct {
	SecretKey   string
	PublicKey   string
	APIURL      string
	CallbackURL string
	Timeout     time.Duration
}

// Configured reports whether the gateway secret key is present.
func (c PaystackConfig) Configured() bool {
	return c.SecretKey != ""
}

// EmailConfig holds SMTP settings for outbound notifications.
type EmailConfig struct {
	Host             string
	Port             int
	Username         string
	Password         string
	From             string
	CompanyRecipient string
}

// Configured reports whether SMTP credentials are present.
func (c EmailConfig) Configured() bool {
	return c.Username != "" && c.Password != ""
}

// NotificationsConfig tunes the fire-and-forget dispatch queue.
type NotificationsConfig struct {
	Enabled    bool
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
}

// CacheConfig governs the pricing listing cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// AdminConfig secures operator-only listing endpoints.
type AdminConfig struct {
	JWTSecret string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Paystack = PaystackConfig{
		SecretKey:   v.GetString("PAYSTACK_SECRET_KEY"),
		PublicKey:   v.GetString("PAYSTACK_PUBLIC_KEY"),
		APIURL:      v.GetString("PAYSTACK_API_URL"),
		CallbackURL: v.GetString("PAYSTACK_CALLBACK_URL"),
		Timeout:     parseDuration(v.GetString("PAYSTACK_TIMEOUT"), 30*time.Second),
	}

	cfg.Email = EmailConfig{
		Host:             v.GetString("EMAIL_HOST"),
		Port:             v.GetInt("EMAIL_PORT"),
		Username:         v.GetString("EMAIL_USER"),
		Password:         v.GetString("EMAIL_PASSWORD"),
		From:             v.GetString("EMAIL_FROM"),
		CompanyRecipient: v.GetString("EMAIL_COMPANY_RECIPIENT"),
	}
	if cfg.Email.From == "" {
		cfg.Email.From = cfg.Email.Username
	}

	cfg.Notifications = NotificationsConfig{
		Enabled:    v.GetBool("ENABLE_NOTIFICATIONS"),
		Workers:    v.GetInt("NOTIFICATIONS_WORKERS"),
		BufferSize: v.GetInt("NOTIFICATIONS_BUFFER_SIZE"),
		MaxRetries: v.GetInt("NOTIFICATIONS_MAX_RETRIES"),
		RetryDelay: parseDuration(v.GetString("NOTIFICATIONS_RETRY_DELAY"), 5*time.Second),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_PRICING_CACHE"),
		TTL:     parseDuration(v.GetString("PRICING_CACHE_TTL"), 10*time.Minute),
	}

	cfg.Admin = AdminConfig{
		JWTSecret: v.GetString("ADMIN_JWT_SECRET"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "elevate_careers")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("PAYSTACK_SECRET_KEY", "")
	v.SetDefault("PAYSTACK_PUBLIC_KEY", "")
	v.SetDefault("PAYSTACK_API_URL", "https://api.paystack.co")
	v.SetDefault("PAYSTACK_CALLBACK_URL", "http://localhost:3000/payment/callback")
	v.SetDefault("PAYSTACK_TIMEOUT", "30s")

	v.SetDefault("EMAIL_HOST", "smtp.gmail.com")
	v.SetDefault("EMAIL_PORT", 587)
	v.SetDefault("EMAIL_USER", "")
	v.SetDefault("EMAIL_PASSWORD", "")
	v.SetDefault("EMAIL_FROM", "")
	v.SetDefault("EMAIL_COMPANY_RECIPIENT", "")

	v.SetDefault("ENABLE_NOTIFICATIONS", true)
	v.SetDefault("NOTIFICATIONS_WORKERS", 2)
	v.SetDefault("NOTIFICATIONS_BUFFER_SIZE", 64)
	v.SetDefault("NOTIFICATIONS_MAX_RETRIES", 3)
	v.SetDefault("NOTIFICATIONS_RETRY_DELAY", "5s")

	v.SetDefault("ENABLE_PRICING_CACHE", false)
	v.SetDefault("PRICING_CACHE_TTL", "10m")

	v.SetDefault("ADMIN_JWT_SECRET", "")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
