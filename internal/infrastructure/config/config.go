package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type ScoringConfig struct {
	UseLiveAPI bool
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type Config struct {
	GRPCPort      int
	HTTPPort      int
	DB            DatabaseConfig
	Kafka         KafkaConfig
	Scoring       ScoringConfig
	Log           LogConfig
	TLS           TLSConfig
	JWTSecret     string
	MigrationsDir string
	RunMigrations bool
	ServiceName   string
}

// Validate panics on configuration the service cannot start without. Called
// once at boot, before any listener opens.
func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
	if c.JWTSecret == "" {
		panic("JWT_SECRET environment variable is required")
	}
	if c.Scoring.UseLiveAPI {
		if c.Scoring.BaseURL == "" {
			panic("RISK_SERVICE_URL is required when USE_LIVE_SCORING is enabled")
		}
		if c.Scoring.APIKey == "" {
			panic("RISK_SERVICE_API_KEY is required when USE_LIVE_SCORING is enabled")
		}
	}
}

func Load() Config {
	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9090),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "loanapp"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "loanapp"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "loanapp.events"),
		},
		Scoring: ScoringConfig{
			UseLiveAPI: getEnvBool("USE_LIVE_SCORING", false),
			BaseURL:    getEnv("RISK_SERVICE_URL", ""),
			APIKey:     getEnv("RISK_SERVICE_API_KEY", ""),
			Timeout:    time.Duration(getEnvInt("RISK_SERVICE_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		TLS: TLSConfig{
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
		JWTSecret:     getEnv("JWT_SECRET", ""),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		RunMigrations: getEnvBool("RUN_MIGRATIONS", false),
		ServiceName:   "loanapp",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
