package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
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

type LogConfig struct {
	Level  string
	Format string
}

type Config struct {
	HTTPPort    int
	MetricsPort int
	DB          DatabaseConfig
	Kafka       KafkaConfig
	Log         LogConfig
	// JWTSecret validates bearer tokens issued by the identity service.
	JWTSecret string
	// AmountUnitScale converts policy amounts (lakhs) to the base unit of
	// requested amounts (rupees).
	AmountUnitScale decimal.Decimal
	MigrationsDir   string
	ServiceName     string
}

func (c Config) Validate() error {
	if c.DB.Password == "" {
		return fmt.Errorf("DB_PASSWORD environment variable is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}
	return nil
}

func Load() Config {
	return Config{
		HTTPPort:    getEnvInt("HTTP_PORT", 8090),
		MetricsPort: getEnvInt("METRICS_PORT", 9090),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "marketplace"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "marketplace"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "marketplace.events"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		JWTSecret:       getEnv("JWT_SECRET", ""),
		AmountUnitScale: getEnvDecimal("AMOUNT_UNIT_SCALE", decimal.NewFromInt(100_000)),
		MigrationsDir:   getEnv("MIGRATIONS_DIR", "file://./migrations"),
		ServiceName:     "marketplace",
	}
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func (c Config) MetricsAddr() string {
	return fmt.Sprintf(":%d", c.MetricsPort)
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

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.IsPositive() {
			return d
		}
	}
	return fallback
}
