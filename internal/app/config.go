package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/checkout/internal/storage/rediscache"
)

const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	GRPCAddr    string
	HTTPAddr    string
	MetricsAddr string

	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool

	// RedisAddr включает read-through кеш клиентов. Пустое значение - без кеша.
	RedisAddr        string
	CustomerCacheTTL time.Duration

	// KafkaBrokers - список брокеров через запятую. Пустое значение отключает outbox relay.
	KafkaBrokers string
	KafkaTopic   string
	KafkaDLQ     string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
	OutboxRetryDelay   time.Duration

	OTLPEndpoint string
	ServiceName  string

	ShutdownTimeout time.Duration
}

// DefaultConfig возвращает настройки для локального запуска без внешних зависимостей.
func DefaultConfig() Config {
	return Config{
		GRPCAddr:            ":50051",
		HTTPAddr:            ":8080",
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		CustomerCacheTTL:    rediscache.DefaultCustomerTTL,
		KafkaTopic:          kafka.TopicOrderEvents,
		KafkaDLQ:            kafka.TopicDeadLetterQueue,
		OutboxPollInterval:  time.Second,
		OutboxBatchSize:     100,
		OutboxMaxAttempts:   3,
		OutboxRetryDelay:    50 * time.Millisecond,
		ServiceName:         "checkout",
		ShutdownTimeout:     5 * time.Second,
	}
}

// LoadConfigFromEnv накладывает переменные окружения на DefaultConfig.
// Некорректные значения логируются и игнорируются.
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()
	logger := log.WithField("component", "config")

	setString(&cfg.GRPCAddr, "OMS_GRPC_ADDR")
	setString(&cfg.HTTPAddr, "OMS_HTTP_ADDR")
	setString(&cfg.MetricsAddr, "OMS_METRICS_ADDR")
	setString(&cfg.StorageDriver, "OMS_STORAGE_DRIVER")
	setString(&cfg.PostgresDSN, "OMS_POSTGRES_DSN")
	setBool(&cfg.PostgresAutoMigrate, "OMS_POSTGRES_AUTO_MIGRATE", logger)
	setString(&cfg.RedisAddr, "OMS_REDIS_ADDR")
	setDuration(&cfg.CustomerCacheTTL, "OMS_CUSTOMER_CACHE_TTL", logger)
	setString(&cfg.KafkaBrokers, "KAFKA_BROKERS")
	setString(&cfg.KafkaTopic, "OMS_KAFKA_TOPIC")
	setString(&cfg.KafkaDLQ, "OMS_KAFKA_DLQ_TOPIC")
	setDuration(&cfg.OutboxPollInterval, "OMS_OUTBOX_POLL_INTERVAL", logger)
	setInt(&cfg.OutboxBatchSize, "OMS_OUTBOX_BATCH_SIZE", logger)
	setInt(&cfg.OutboxMaxAttempts, "OMS_OUTBOX_MAX_ATTEMPTS", logger)
	setDuration(&cfg.OutboxRetryDelay, "OMS_OUTBOX_RETRY_DELAY", logger)
	setString(&cfg.OTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setString(&cfg.ServiceName, "OMS_SERVICE_NAME")
	setDuration(&cfg.ShutdownTimeout, "OMS_SHUTDOWN_TIMEOUT", logger)

	cfg.StorageDriver = strings.ToLower(cfg.StorageDriver)
	return cfg
}

// Brokers возвращает список брокеров Kafka без пустых элементов.
func (c Config) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func setBool(dst *bool, key string, logger *log.Entry) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		logger.WithField("env", key).WithError(err).Warn("invalid bool value, using default")
		return
	}
	*dst = v
}

func setInt(dst *int, key string, logger *log.Entry) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		logger.WithField("env", key).Warn("invalid positive integer, using default")
		return
	}
	*dst = v
}

func setDuration(dst *time.Duration, key string, logger *log.Entry) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v < 0 {
		logger.WithField("env", key).Warn("invalid duration, using default")
		return
	}
	*dst = v
}
