package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"orders/cmd"
	httpin "orders/internal/adapters/in/http"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/adapters/out/postgres/outboxrepo"
	"orders/internal/jobs"
	"orders/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	relayMetrics := metrics.NewRelayMetrics()

	jobManager := jobs.NewJobManager(
		app.CreateRelayOutboxCommandHandler(),
		app.CreateOutboxRepository(),
		relayMetrics,
		configs.OutboxRelayBatch,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app.CreateHTTPServer(), configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:         envOrDefault("HTTP_PORT", "8080"),
		DBHost:           envOrDefault("DB_HOST", "localhost"),
		DBPort:           envOrDefault("DB_PORT", "5432"),
		DBUser:           envOrDefault("DB_USER", "postgres"),
		DBPassword:       envOrDefault("DB_PASSWORD", "postgres"),
		DBName:           envOrDefault("DB_NAME", "orders"),
		DBSslMode:        envOrDefault("DB_SSLMODE", "disable"),
		KafkaBrokers:     envOrDefault("KAFKA_BROKERS", "localhost:9092"),
		KafkaOrderTopic:  envOrDefault("KAFKA_ORDER_TOPIC", "order.events"),
		InventoryBaseURL: envOrDefault("INVENTORY_BASE_URL", "http://localhost:8081"),
		InventoryTimeout: envDurationOrDefault("INVENTORY_TIMEOUT", 5*time.Second),
		OutboxRelayBatch: envIntOrDefault("OUTBOX_RELAY_BATCH", 100),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return parsed
}

func envDurationOrDefault(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return parsed
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&outboxrepo.RecordDTO{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func startWebServer(server *httpin.Server, port string) {
	e := echo.New()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
