package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	defaultRabbitExchange  = "ordering.events"
	defaultIdempotencyTTL  = 24 * time.Hour
	defaultPendingTTL      = 30 * time.Second
	defaultOutboxBatchSize = 100
)

type Config struct {
	HTTPPort   string `validate:"required,numeric"`
	DBHost     string `validate:"required"`
	DBPort     string `validate:"required,numeric"`
	DBUser     string `validate:"required"`
	DBPassword string
	DBName     string `validate:"required"`
	DBSslMode  string `validate:"required,oneof=disable allow prefer require verify-ca verify-full"`

	JWTSecret string `validate:"required,min=16"`

	RabbitMQURL      string `validate:"required,url"`
	RabbitMQExchange string `validate:"required"`

	// Empty disables idempotency keys.
	RedisAddr      string        `validate:"omitempty,hostname_port"`
	IdempotencyTTL time.Duration `validate:"gt=0"`

	// How long an unfinished create blocks retries with the same key.
	IdempotencyPendingTTL time.Duration `validate:"gt=0,ltefield=IdempotencyTTL"`

	OutboxRelaySchedule string
	OutboxBatchSize     int `validate:"min=1,max=1000"`

	SeedDemoData bool
}

// LoadConfig reads the environment, after loading envFile when it exists,
// and validates the result.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading %s: %w", envFile, err)
	}

	ttl, ttlErr := durationVariable("IDEMPOTENCY_TTL", defaultIdempotencyTTL)
	pendingTTL, pendingErr := durationVariable("IDEMPOTENCY_PENDING_TTL", defaultPendingTTL)
	batchSize, batchErr := intVariable("OUTBOX_BATCH_SIZE", defaultOutboxBatchSize)
	seed, seedErr := boolVariable("SEED_DEMO_DATA", false)
	if err := errors.Join(ttlErr, pendingErr, batchErr, seedErr); err != nil {
		return Config{}, err
	}

	config := Config{
		HTTPPort:              variable("HTTP_PORT", "8080"),
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                variable("DB_PORT", "5432"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSslMode:             variable("DB_SSLMODE", "disable"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		RabbitMQURL:           os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange:      variable("RABBITMQ_EXCHANGE", defaultRabbitExchange),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		IdempotencyTTL:        ttl,
		IdempotencyPendingTTL: pendingTTL,
		OutboxRelaySchedule:   os.Getenv("OUTBOX_RELAY_SCHEDULE"),
		OutboxBatchSize:       batchSize,
		SeedDemoData:          seed,
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// DSN is the libpq connection string shared by gorm and the migrator.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func variable(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationVariable(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func intVariable(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func boolVariable(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
