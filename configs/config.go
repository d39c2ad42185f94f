package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DBDriver  string
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration
	OTPCode   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers []string
	KafkaTopic   string

	CORSOrigins []string
	LogLevel    string
	LogFormat   string

	LoginRate     float64
	LoginBurst    int
	MostBoughtTTL time.Duration
}

// LoadConfig reads .env (when present) and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("cannot read .env file")
	}

	cfg := &Config{
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBSource:      getEnv("DB_SOURCE", "store.db"),
		Port:          getEnv("PORT", "8000"),
		JWTSecret:     getEnv("JWT_SECRET", "changeme"),
		OTPCode:       getEnv("OTP_CODE", "123456"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		KafkaBrokers:  splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "order-events"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
	}

	var err error
	if cfg.JWTTTL, err = time.ParseDuration(getEnv("JWT_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("JWT_TTL: %w", err)
	}
	if cfg.MostBoughtTTL, err = time.ParseDuration(getEnv("MOST_BOUGHT_TTL", "1m")); err != nil {
		return nil, fmt.Errorf("MOST_BOUGHT_TTL: %w", err)
	}
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}
	if cfg.LoginRate, err = strconv.ParseFloat(getEnv("LOGIN_RATE", "1"), 64); err != nil {
		return nil, fmt.Errorf("LOGIN_RATE: %w", err)
	}
	if cfg.LoginBurst, err = strconv.Atoi(getEnv("LOGIN_BURST", "5")); err != nil {
		return nil, fmt.Errorf("LOGIN_BURST: %w", err)
	}

	switch cfg.DBDriver {
	case "sqlite", "postgres", "mysql":
	default:
		return nil, fmt.Errorf("DB_DRIVER: unsupported driver %q", cfg.DBDriver)
	}
	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
