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

	Database  DatabaseConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	Uploads   UploadConfig
	RateLimit RateLimitConfig
	Students  StudentConfig
}

type DatabaseConfig struct {
	URL            string
	Name           string
	ConnectTimeout time.Duration
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

// UploadConfig caps fully-buffered photo uploads.
type UploadConfig struct {
	MaxPhotoBytes int64
}

// RateLimitConfig tunes the per-client fixed window on student endpoints.
// RequestsPerMinute of zero disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int
}

// StudentConfig holds the institutional email-domain gate.
type StudentConfig struct {
	EmailDomain string
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
		URL:            v.GetString("MONGO_URL"),
		Name:           v.GetString("DB_NAME"),
		ConnectTimeout: parseDuration(v.GetString("DB_CONNECT_TIMEOUT"), 10*time.Second),
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

	maxPhoto := v.GetInt64("UPLOAD_MAX_PHOTO_BYTES")
	if maxPhoto <= 0 {
		maxPhoto = 5 * 1024 * 1024
	}
	cfg.Uploads = UploadConfig{MaxPhotoBytes: maxPhoto}

	cfg.RateLimit = RateLimitConfig{
		RequestsPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
	}

	cfg.Students = StudentConfig{
		EmailDomain: v.GetString("STUDENT_EMAIL_DOMAIN"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8001)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("MONGO_URL", "mongodb://localhost:27017")
	v.SetDefault("DB_NAME", "attendance_system")
	v.SetDefault("DB_CONNECT_TIMEOUT", "10s")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("UPLOAD_MAX_PHOTO_BYTES", 5*1024*1024)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	v.SetDefault("STUDENT_EMAIL_DOMAIN", "@charusat.edu.in")
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
