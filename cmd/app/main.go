package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"orderflow/cmd"
	"orderflow/internal/adapters/out/kafka"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config := getConfigs()

	pipelines, err := config.Pipelines()
	if err != nil {
		logger.Error("Invalid status pipeline configuration", "error", err)
		os.Exit(1)
	}

	gormDB, err := gorm.Open(postgres.Open(config.DBConnectionString()), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	brokers := strings.Split(config.KafkaHost, ",")
	if err = kafka.EnsureTopicExists(brokers, config.KafkaStatusTopic); err != nil {
		logger.Error("Failed to ensure status topic exists", "error", err)
		os.Exit(1)
	}
	publisher := kafka.NewPublisher(brokers, config.KafkaStatusTopic)
	defer func() {
		_ = publisher.Close()
	}()

	root := cmd.NewCompositionRoot(config, gormDB, pipelines, publisher, logger)

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		logger.Error("Failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	if err = startWebServer(&root, config.HTTPPort, logger); err != nil {
		logger.Error("Web server stopped with error", "error", err)
		os.Exit(1)
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		slog.Warn("No .env file loaded, using process environment", "error", err)
	}

	return cmd.Config{
		HTTPPort:               os.Getenv("HTTP_PORT"),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 os.Getenv("DB_PORT"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              os.Getenv("DB_SSLMODE"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaStatusTopic:       os.Getenv("KAFKA_STATUS_TOPIC"),
		VerificationSigningKey: os.Getenv("VERIFICATION_SIGNING_KEY"),
		VerificationLegacyKey:  os.Getenv("VERIFICATION_LEGACY_KEY"),
		InitialOrderStatus:     os.Getenv("INITIAL_ORDER_STATUS"),
		InitialLineStatus:      os.Getenv("INITIAL_LINE_STATUS"),
		OrderPipelineJSON:      os.Getenv("ORDER_PIPELINE"),
		StatusCascadeJSON:      os.Getenv("STATUS_CASCADE"),
		LinePipelineJSON:       os.Getenv("LINE_PIPELINE"),
	}
}

func startWebServer(root *cmd.CompositionRoot, port string, logger *slog.Logger) error {
	server, err := root.CreateHTTPServer()
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err = <-errCh:
		return err
	case sig := <-quit:
		logger.Info("Shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(ctx)
	}
}
