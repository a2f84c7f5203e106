// config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Annany2002/collecta-backend/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// Store and media backend names accepted by STORE_BACKEND and MEDIA_BACKEND.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
	MediaLocal  = "local"
	MediaS3     = "s3"
)

// Config holds application configuration values
type Config struct {
	ServerPort     string
	JWTSecret      string
	JWTExpiration  time.Duration
	MetadataDbDir  string
	MetadataDbFile string
	StoreBackend   string

	UploadsDir     string
	MaxUploadBytes int64
	MediaBackend   string
	S3             S3Config

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RedisAddr         string
	RedisPassword     string
	RedisDB           int

	CORSAllowedOrigins []string
	LogLevel           string
	LogFormat          string
}

// S3Config holds the object storage settings used when MediaBackend is "s3".
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	Prefix    string
	AccessKey string
	SecretKey string
}

// LoadConfig loads configuration from environment variables.
// It uses a .env file for local development if present (ignores it for production).
func LoadConfig() (*Config, error) {
	customLog.Println("Loading configuration from environment variables...")

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			customLog.Warnf("Warning: Error loading .env file: %v", err)
		}
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable must be set")
	}

	cfg := &Config{
		ServerPort:     strings.TrimPrefix(getEnv("SERVER_PORT", "8080"), ":"),
		JWTSecret:      jwtSecret,
		JWTExpiration:  time.Hour * time.Duration(getPositiveInt("JWT_EXPIRATION_HOURS", 24)),
		MetadataDbDir:  getEnv("DATABASE_DIRECTORY", "data"),
		MetadataDbFile: getEnv("DATABASE_DIRECTORY_FILE", "collecta.db"),
		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", StoreSQLite)),

		UploadsDir:     getEnv("UPLOADS_DIR", "uploads"),
		MaxUploadBytes: int64(getPositiveInt("MAX_UPLOAD_MB", 5)) << 20,
		MediaBackend:   strings.ToLower(getEnv("MEDIA_BACKEND", MediaLocal)),
		S3: S3Config{
			Bucket:    getEnv("S3_BUCKET", ""),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			Prefix:    getEnv("S3_PREFIX", "uploads"),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
		},

		RateLimitRequests: getPositiveInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindow:   time.Second * time.Duration(getPositiveInt("RATE_LIMIT_WINDOW_SECONDS", 60)),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getNonNegativeInt("REDIS_DB", 0),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	customLog.Printf("Configuration loaded successfully. Port: %s, JWT Exp: %v, Store: %s, Media: %s",
		cfg.ServerPort, cfg.JWTExpiration, cfg.StoreBackend, cfg.MediaBackend)
	return cfg, nil
}

// Validate checks the combinations LoadConfig cannot default its way out of.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreSQLite, StoreMemory:
	default:
		return errors.New("STORE_BACKEND must be 'sqlite' or 'memory'")
	}
	switch c.MediaBackend {
	case MediaLocal:
	case MediaS3:
		if c.S3.Bucket == "" {
			return errors.New("S3_BUCKET must be set when MEDIA_BACKEND is 's3'")
		}
	default:
		return errors.New("MEDIA_BACKEND must be 'local' or 's3'")
	}
	if c.JWTSecret == "!!replace_this_with_a_real_secret_key!!" {
		customLog.Warnln("WARNING: JWT_SECRET is set to the default placeholder!")
	}
	return nil
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getPositiveInt(key string, fallback int) int {
	raw := getEnv(key, strconv.Itoa(fallback))
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		customLog.Warnf("Invalid %s '%s'. Using default %d.", key, raw, fallback)
		return fallback
	}
	return n
}

func getNonNegativeInt(key string, fallback int) int {
	raw := getEnv(key, strconv.Itoa(fallback))
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		customLog.Warnf("Invalid %s '%s'. Using default %d.", key, raw, fallback)
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
