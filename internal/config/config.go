package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	CORSOrigins []string
	SwaggerHost string

	LogLevel  string
	LogPretty bool

	DBDriver      string
	DatabaseDSN   string
	DBAutoMigrate bool

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	JWTSecret string
	TokenTTL  time.Duration

	UploadBackend  string
	UploadDir      string
	UploadMaxBytes int64
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOPublicURL string

	CalendarificAPIKey  string
	CalendarificBaseURL string
	WeatherAPIKey       string
	WeatherBaseURL      string

	SeedAdminEmail    string
	SeedAdminPassword string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present;
// variables already set in the process environment win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:  getEnv("SERVER_PORT", getEnv("PORT", "3000")),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"*"}),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvBool("LOG_PRETTY", false),

		DBDriver:      getEnv("DB_DRIVER", "postgres"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=mapadmin port=5432 sslmode=disable"),
		DBAutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:  getEnvDuration("CACHE_TTL", 5*time.Minute),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),
		TokenTTL:  getEnvDuration("TOKEN_TTL", time.Hour),

		UploadBackend:  getEnv("UPLOAD_BACKEND", "local"),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		UploadMaxBytes: int64(getEnvInt("UPLOAD_MAX_BYTES", 5<<20)),
		MinIOEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinIOAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinIOSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "uploads"),
		MinIOPublicURL: os.Getenv("MINIO_PUBLIC_URL"),

		CalendarificAPIKey:  os.Getenv("CALENDARIFIC_API_KEY"),
		CalendarificBaseURL: getEnv("CALENDARIFIC_BASE_URL", "https://calendarific.com/api/v2"),
		WeatherAPIKey:       os.Getenv("WEATHER_API_KEY"),
		WeatherBaseURL:      getEnv("WEATHER_BASE_URL", "https://api.tomorrow.io/v4"),

		SeedAdminEmail:    os.Getenv("SEED_ADMIN_EMAIL"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

// getEnvDuration accepts Go durations ("90s", "1h") or a bare number of seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
