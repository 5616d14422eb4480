package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"marketplace/internal/adapters/out/persistence"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceName string
	HTTPPort    string

	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	DBPath        string
	DBAutoMigrate bool

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	IdempotencyTTL time.Duration

	JWTSecret string
	JWTIssuer string

	TransitionPolicy    services.TransitionPolicy
	StatusGaugeSchedule string

	LogLevel     string
	LogFormat    string
	OTLPEndpoint string

	ShutdownTimeout time.Duration
}

// LoadConfig reads the configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win over it.
func LoadConfig() (Config, error) {
	v, err := newViper()
	if err != nil {
		return Config{}, err
	}

	policy, err := services.ParseTransitionPolicy(v.GetString("TRANSITION_POLICY"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ServiceName: v.GetString("SERVICE_NAME"),
		HTTPPort:    v.GetString("HTTP_PORT"),

		DBDriver:      strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		DBSslMode:     v.GetString("DB_SSLMODE"),
		DBPath:        v.GetString("DB_PATH"),
		DBAutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),

		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RedisDB:        v.GetInt("REDIS_DB"),
		IdempotencyTTL: v.GetDuration("IDEMPOTENCY_TTL"),

		JWTSecret: v.GetString("JWT_SECRET"),
		JWTIssuer: v.GetString("JWT_ISSUER"),

		TransitionPolicy:    policy,
		StatusGaugeSchedule: v.GetString("STATUS_GAUGE_SCHEDULE"),

		LogLevel:     v.GetString("LOG_LEVEL"),
		LogFormat:    v.GetString("LOG_FORMAT"),
		OTLPEndpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),

		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadTokenConfig reads only the settings needed to mint tokens.
func LoadTokenConfig() (secret, issuer string, err error) {
	v, err := newViper()
	if err != nil {
		return "", "", err
	}
	secret = v.GetString("JWT_SECRET")
	if strings.TrimSpace(secret) == "" {
		return "", "", errs.NewValueIsRequiredError("JWT_SECRET")
	}
	return secret, v.GetString("JWT_ISSUER"), nil
}

func newViper() (*viper.Viper, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "marketplace-orders")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_DRIVER", persistence.DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_PATH", "orders.db")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("IDEMPOTENCY_TTL", 24*time.Hour)
	v.SetDefault("TRANSITION_POLICY", services.PermissiveTransitions.String())
	v.SetDefault("STATUS_GAUGE_SCHEDULE", "*/30 * * * * *")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
}

// Validate checks the settings that have no usable default.
func (c Config) Validate() error {
	var problems []error

	if strings.TrimSpace(c.JWTSecret) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("JWT_SECRET"))
	}

	switch c.DBDriver {
	case persistence.DriverPostgres:
		if c.DBName == "" {
			problems = append(problems, errs.NewValueIsRequiredError("DB_NAME"))
		}
	case persistence.DriverSQLite:
		if c.DBPath == "" {
			problems = append(problems, errs.NewValueIsRequiredError("DB_PATH"))
		}
	default:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"DB_DRIVER",
			fmt.Errorf("%q is not one of postgres, sqlite", c.DBDriver),
		))
	}

	if c.RedisAddr != "" && c.IdempotencyTTL <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("IDEMPOTENCY_TTL", c.IdempotencyTTL, "1s", nil))
	}
	if c.ShutdownTimeout <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("SHUTDOWN_TIMEOUT", c.ShutdownTimeout, "1s", nil))
	}

	return errors.Join(problems...)
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == persistence.DriverSQLite {
		return c.DBPath
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
