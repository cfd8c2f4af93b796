package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"orders/cmd"
	ordershttp "orders/internal/adapters/in/http"
	"orders/internal/adapters/observability"
	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/outbox"
	"orders/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	instruments, shutdownTelemetry, err := observability.Init(ctx, observability.Settings{
		ServiceName:  configs.ServiceName,
		StdoutTraces: configs.OtelTracesStdout,
	}, logger)
	if err != nil {
		log.Fatalf("Error initializing telemetry: %v", err)
	}

	gormDB := openDatabase(configs, logger)
	app := cmd.NewCompositionRoot(configs, gormDB, instruments, logger)

	jobManager := app.CreateJobManager()
	if jobManager != nil {
		if err = jobManager.StartAll(); err != nil {
			log.Fatalf("Error starting jobs: %v", err)
		}
	} else {
		logger.Info("Outbox relay disabled", "postgres", configs.UsesPostgres(), "kafka", configs.KafkaHost != "")
	}

	if err = runWebServer(ctx, app, configs.HTTPPort, logger); err != nil {
		logger.Error("HTTP server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if jobManager != nil {
		jobManager.StopAll()
	}
	if err = app.Close(); err != nil {
		logger.Error("Error closing resources", "error", err)
	}
	if err = shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error("Error flushing telemetry", "error", err)
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded, using process environment: %v", err)
	}

	config := cmd.Config{
		HTTPPort:              envOrDefault("HTTP_PORT", "8080"),
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                envOrDefault("DB_PORT", "5432"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSslMode:             envOrDefault("DB_SSLMODE", "disable"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		TokenTTL:              24 * time.Hour,
		KafkaHost:             os.Getenv("KAFKA_HOST"),
		KafkaOrderEventsTopic: envOrDefault("KAFKA_ORDER_EVENTS_TOPIC", "order-events"),
		OutboxRelaySchedule:   envOrDefault("OUTBOX_RELAY_SCHEDULE", jobs.DefaultRelaySchedule),
		OutboxBatchSize:       intEnv("OUTBOX_BATCH_SIZE", outbox.DefaultBatchSize),
		ServiceName:           envOrDefault("SERVICE_NAME", "orders"),
		OtelTracesStdout:      boolEnv("OTEL_TRACES_STDOUT", false),
	}
	if config.JWTSecret == "" {
		log.Fatalf("JWT_SECRET must be set")
	}
	return config
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Fatalf("%s must be a positive integer, got %q", key, raw)
	}
	return value
}

func boolEnv(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Fatalf("%s must be a boolean, got %q", key, raw)
	}
	return value
}

// openDatabase returns nil when no database is configured, which selects the
// in-memory adapters.
func openDatabase(configs cmd.Config, logger *slog.Logger) *gorm.DB {
	if !configs.UsesPostgres() {
		logger.Warn("DB_HOST is empty, orders are kept in memory and lost on restart")
		return nil
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)
	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	return gormDB
}

func runWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) error {
	e, err := ordershttp.NewRouter(ctx, app.CreateHTTPServer(), app.CreateTokenService(), logger)
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()
	logger.Info("HTTP server started", "port", port)

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
