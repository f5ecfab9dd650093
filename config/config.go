package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	App       AppConfig
	AIService AIServiceConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	Body      BodyConfig
	Reports   ReportsConfig
}

type ServerConfig struct {
	Port            string
	TrustedProxies  []string
	ShutdownTimeout time.Duration
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
	ServiceName string
}

// AIServiceConfig describes the external scoring / question generation service.
type AIServiceConfig struct {
	URL     string
	Timeout time.Duration
	// RPS paces outbound calls; zero disables pacing.
	RPS   float64
	Burst int
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
}

const (
	RateLimitBackendMemory = "memory"
	RateLimitBackendRedis  = "redis"
)

type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int
	Backend     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DatabaseConfig is optional; an empty Host disables report persistence in Postgres.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type BodyConfig struct {
	MaxBytes int64
}

type ReportsConfig struct {
	Retention time.Duration
	ListLimit int
}

// Enabled reports whether a Postgres host was configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "3001"),
			TrustedProxies:  getEnvAsList("TRUSTED_PROXIES", nil),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			ServiceName: getEnv("SERVICE_NAME", "Hedamo Backend"),
		},
		AIService: AIServiceConfig{
			URL:     strings.TrimRight(getEnv("AI_SERVICE_URL", "http://localhost:8000"), "/"),
			Timeout: getEnvAsDuration("AI_SERVICE_TIMEOUT", 30*time.Second),
			RPS:     getEnvAsFloat("AI_SERVICE_RPS", 0),
			Burst:   getEnvAsInt("AI_SERVICE_BURST", 1),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getEnvAsList("FRONTEND_URL", []string{"http://localhost:5173"}),
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
		},
		RateLimit: RateLimitConfig{
			Window:      getEnvAsDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
			MaxRequests: getEnvAsInt("RATE_LIMIT_MAX", 100),
			Backend:     strings.ToLower(getEnv("RATE_LIMIT_BACKEND", RateLimitBackendMemory)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "hedamo"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Body: BodyConfig{
			MaxBytes: int64(getEnvAsInt("MAX_BODY_BYTES", 10<<20)),
		},
		Reports: ReportsConfig{
			Retention: getEnvAsDuration("REPORT_RETENTION", 30*24*time.Hour),
			ListLimit: getEnvAsInt("REPORT_LIST_LIMIT", 50),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.AIService.URL == "" {
		return fmt.Errorf("AI_SERVICE_URL is required")
	}

	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}

	if c.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive")
	}

	switch c.RateLimit.Backend {
	case RateLimitBackendMemory:
	case RateLimitBackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when RATE_LIMIT_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unknown RATE_LIMIT_BACKEND %q", c.RateLimit.Backend)
	}

	if c.Body.MaxBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("FRONTEND_URL is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvAsList splits a comma separated value, dropping empty items.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
