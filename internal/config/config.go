package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the API and the admin CLI.
type Config struct {
	Port int

	// DBDriver is "mysql" or "sqlite".
	DBDriver string
	DBDSN    string

	// RedisAddr empty disables the session store and the feed cache.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret        string
	JWTRefreshSecret string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration

	GoogleClientID string

	// KafkaBrokers empty disables publishing moderation events to kafka.
	KafkaBrokers []string
	KafkaTopic   string

	SMTP SMTPConfig

	OTLPEndpoint    string
	OTELServiceName string

	FeedCacheTTL time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether outgoing mail is configured.
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBDriver:         GetEnv("DB_DRIVER", "mysql"),
		DBDSN:            GetEnv("DB_DSN", "user:password@tcp(127.0.0.1:3306)/budgetmate?charset=utf8mb4&parseTime=True"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		JWTSecret:        GetEnv("JWT_SECRET", "secret-key"),
		JWTRefreshSecret: GetEnv("JWT_REFRESH_SECRET", "refresh-key"),
		GoogleClientID:   os.Getenv("GOOGLE_CLIENT_ID"),
		KafkaTopic:       GetEnv("KAFKA_TOPIC", "budgetmate.moderation"),
		OTLPEndpoint:     os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTELServiceName:  GetEnv("OTEL_SERVICE_NAME", "budgetmate-api"),
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     GetEnv("SMTP_FROM", "BudgetMate <no-reply@budgetmate.app>"),
		},
	}

	var err error
	if cfg.Port, err = intEnv("PORT", 5000); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.SMTP.Port, err = intEnv("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	if cfg.AccessTTL, err = durationEnv("ACCESS_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RefreshTTL, err = durationEnv("REFRESH_TTL", 30*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.FeedCacheTTL, err = durationEnv("FEED_CACHE_TTL", 30*time.Second); err != nil {
		return nil, err
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	switch cfg.DBDriver {
	case "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q: want mysql or sqlite", cfg.DBDriver)
	}
	return cfg, nil
}

// GetEnv returns the variable or def when unset or empty.
func GetEnv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func intEnv(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return n, nil
}

func durationEnv(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return d, nil
}
