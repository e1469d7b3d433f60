package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordering/cmd"
	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/postgres/catalogrepo"
	"ordering/internal/adapters/out/postgres/migrations"
	"ordering/internal/adapters/out/rabbitmq"
	redisstore "ordering/internal/adapters/out/redis"
	"ordering/internal/core/ports"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	serviceName     = "ordering"
	shutdownTimeout = 10 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = migrations.Up(config.DSN(), logger); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if config.SeedDemoData {
		if _, err = catalogrepo.SeedDemoCatalog(ctx, gormDB, logger); err != nil {
			log.Fatalf("Error seeding demo catalog: %v", err)
		}
	}

	amqpConn, err := rabbitmq.Dial(ctx, config.RabbitMQURL, config.RabbitMQExchange, logger)
	if err != nil {
		log.Fatalf("Error connecting to RabbitMQ: %v", err)
	}
	defer amqpConn.Close()
	publisher := rabbitmq.NewPublisher(amqpConn, config.RabbitMQExchange, logger)

	idempotency, closeRedis := newIdempotencyStore(ctx, config, logger)
	defer closeRedis()

	app := cmd.NewCompositionRoot(config, gormDB, publisher, idempotency, logger)

	jobManager, err := app.CreateJobManager()
	if err != nil {
		log.Fatalf("Error creating jobs: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, config, logger)
}

// newIdempotencyStore returns nil when REDIS_ADDR is unset.
func newIdempotencyStore(ctx context.Context, config cmd.Config, logger *slog.Logger) (ports.IdempotencyStore, func()) {
	if config.RedisAddr == "" {
		logger.Warn("REDIS_ADDR is not set, Idempotency-Key headers are ignored")
		return nil, func() {}
	}

	client := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}

	return redisstore.NewIdempotencyStore(client, serviceName, config.IdempotencyTTL, config.IdempotencyPendingTTL), func() {
		_ = client.Close()
	}
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, config cmd.Config, logger *slog.Logger) {
	e, err := httpin.NewRouter(app.CreateHTTPServer(), httpin.RouterConfig{
		JWTSecret: []byte(config.JWTSecret),
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Error building HTTP router: %v", err)
	}

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); startErr != nil &&
			!errors.Is(startErr, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", startErr)
		}
	}()
	logger.Info("HTTP server started", "port", config.HTTPPort)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("HTTP server stopped")
}
