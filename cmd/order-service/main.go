package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/app"
)

// setupLogger настраивает формат и уровень логирования по OMS_LOG_FORMAT и OMS_LOG_LEVEL.
func setupLogger(format, level string) error {
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	lvl := log.InfoLevel
	if level = strings.TrimSpace(level); level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			log.SetLevel(lvl)
			return err
		}
		lvl = parsed
	}
	log.SetLevel(lvl)
	return nil
}

// loadDotEnv подхватывает .env, если он есть. Уже выставленные переменные не перезаписываются.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

func main() {
	if err := loadDotEnv(".env"); err != nil {
		log.WithError(err).Warn("failed to load .env")
	}
	if err := setupLogger(os.Getenv("OMS_LOG_FORMAT"), os.Getenv("OMS_LOG_LEVEL")); err != nil {
		log.WithError(err).Warn("invalid OMS_LOG_LEVEL, using info")
	}

	cfg := app.LoadConfigFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"grpc_addr":      cfg.GRPCAddr,
		"http_addr":      cfg.HTTPAddr,
		"metrics_addr":   cfg.MetricsAddr,
		"storage_driver": cfg.StorageDriver,
	}).Info("запускаем checkout service")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("checkout service остановлен")
}
