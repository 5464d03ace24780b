// Package app собирает сервис оформления заказов: хранилище, gRPC и REST API,
// ops-сервер с метриками и health-checks, outbox relay и трейсинг.
package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	promgrpc "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	healthcheck "github.com/vladislavdragonenkov/checkout/internal/health"
	"github.com/vladislavdragonenkov/checkout/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/checkout/internal/metrics"
	"github.com/vladislavdragonenkov/checkout/internal/service/catalog"
	grpcsvc "github.com/vladislavdragonenkov/checkout/internal/service/grpc"
	"github.com/vladislavdragonenkov/checkout/internal/service/httpapi"
	"github.com/vladislavdragonenkov/checkout/internal/service/inventory"
	"github.com/vladislavdragonenkov/checkout/internal/service/ordering"
	"github.com/vladislavdragonenkov/checkout/internal/service/outbox"
	"github.com/vladislavdragonenkov/checkout/internal/telemetry"
	"github.com/vladislavdragonenkov/checkout/internal/version"
)

// Run запускает все серверы и блокируется до отмены ctx или падения gRPC-сервера.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultConfig().ShutdownTimeout
	}
	logger.WithFields(version.Fields()).Info("starting checkout service")

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:       cfg.OTLPEndpoint,
		ServiceName:    cfg.ServiceName,
		ServiceVersion: version.GetVersion(),
		Insecure:       true,
	}, logger.WithField("component", "telemetry"))
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.WithError(err).Warn("tracing shutdown with error")
		}
	}()

	deps, err := initRuntimeDependencies(ctx, cfg, logger.WithField("component", "storage"))
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.close(); err != nil {
			logger.WithError(err).Warn("failed to close storage")
		}
	}()

	stock := inventory.NewService(deps.products, inventory.WithLogger(logger.WithField("component", "inventory")))
	orderService := ordering.NewService(deps.customers, deps.products, deps.orders, stock,
		ordering.WithOutbox(deps.outboxRepo),
		ordering.WithMetrics(metrics.NewOrderMetrics()),
		ordering.WithLogger(logger.WithField("component", "ordering")),
	)
	catalogService := catalog.NewService(deps.customers, deps.products, logger.WithField("component", "catalog"))

	producer, err := initKafkaProducer(cfg, logger)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, outbox relay disabled")
	}
	defer closeKafkaProducer(producer, logger)

	stopOutbox := startOutboxWorker(ctx, cfg, deps, producer, logger)
	defer stopOutbox()

	grpcServer, healthServer := newGRPCServer(orderService, logger)

	grpcLis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return err
	}
	apiLis, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		_ = grpcLis.Close()
		return err
	}
	opsLis, err := net.Listen("tcp", cfg.MetricsAddr)
	if err != nil {
		_ = grpcLis.Close()
		_ = apiLis.Close()
		return err
	}

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	deps.registerHealth(healthHandler)

	apiSrv := &http.Server{
		Handler:           httpapi.NewRouter(httpapi.NewHandler(orderService, catalogService, logger.WithField("component", "http-api"))),
		ReadHeaderTimeout: 5 * time.Second,
	}
	opsSrv := &http.Server{
		Handler:           newOpsRouter(healthHandler),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveHTTP(apiSrv, apiLis, "http api", logger)
	serveHTTP(opsSrv, opsLis, "ops", logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("gRPC сервер слушает %s", grpcLis.Addr())
		errCh <- grpcServer.Serve(grpcLis)
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем серверы")
		healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		stopGRPC(grpcServer, cfg.ShutdownTimeout, logger)
		shutdownHTTP(apiSrv, cfg.ShutdownTimeout, logger)
		shutdownHTTP(opsSrv, cfg.ShutdownTimeout, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(apiSrv, cfg.ShutdownTimeout, logger)
		shutdownHTTP(opsSrv, cfg.ShutdownTimeout, logger)
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	}
}

// newGRPCServer регистрирует CheckoutService, gRPC health и Prometheus-интерсептор.
func newGRPCServer(orders grpcsvc.OrderCreator, logger *log.Entry) (*grpc.Server, *health.Server) {
	grpcMetrics := promgrpc.NewServerMetrics()
	if err := prometheus.Register(grpcMetrics); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*promgrpc.ServerMetrics); ok {
				grpcMetrics = existing
			}
		} else {
			logger.WithError(err).Warn("failed to register grpc metrics")
		}
	}

	server := grpc.NewServer(grpc.ChainUnaryInterceptor(grpcMetrics.UnaryServerInterceptor()))
	grpcsvc.RegisterCheckoutServiceServer(server, grpcsvc.NewCheckoutService(orders, logger.WithField("layer", "grpc")))

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	grpcMetrics.InitializeMetrics(server)
	return server, healthServer
}

// newOpsRouter собирает служебный роутер: метрики и health-checks.
func newOpsRouter(healthHandler *healthcheck.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/healthz", healthHandler)
	r.Get("/readyz", healthHandler.ReadinessHandler)
	r.Get("/livez", healthcheck.LivenessHandler)
	return r
}

// startOutboxWorker запускает relay outbox → Kafka. Без producer сообщения копятся в outbox.
func startOutboxWorker(ctx context.Context, cfg Config, deps *runtimeDependencies, producer *kafka.Producer, logger *log.Entry) func() {
	if producer == nil {
		logger.Info("kafka is not configured, outbox relay disabled")
		return func() {}
	}

	worker := outbox.NewWorker(deps.outboxRepo, kafka.NewOutboxPublisher(producer, cfg.KafkaTopic),
		outbox.WithLogger(logger.WithField("component", "outbox-worker")),
		outbox.WithDLQPublisher(kafka.NewOutboxPublisher(producer, cfg.KafkaDLQ)),
		outbox.WithPollInterval(cfg.OutboxPollInterval),
		outbox.WithBatchSize(cfg.OutboxBatchSize),
		outbox.WithMaxAttempts(cfg.OutboxMaxAttempts),
		outbox.WithRetryBaseDelay(cfg.OutboxRetryDelay),
	)

	workerCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.Run(workerCtx)
	}()

	return func() { shutdownOutboxWorker(cancel, done, cfg.ShutdownTimeout, logger) }
}

func shutdownOutboxWorker(cancel context.CancelFunc, done <-chan struct{}, timeout time.Duration, logger *log.Entry) {
	if cancel == nil {
		return
	}
	cancel()
	if done == nil {
		return
	}
	select {
	case <-done:
	case <-time.After(timeout):
		logger.Warn("outbox worker did not stop in time")
	}
}

func serveHTTP(srv *http.Server, lis net.Listener, name string, logger *log.Entry) {
	go func() {
		logger.Infof("%s сервер слушает %s", name, lis.Addr())
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).WithField("server", name).Warn("http server failed")
		}
	}()
}

func stopGRPC(server *grpc.Server, timeout time.Duration, logger *log.Entry) {
	stopped := make(chan struct{})
	go func() {
		server.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(timeout):
		logger.Warn("graceful stop превысил таймаут, принудительно останавливаем")
		server.Stop()
	}
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, timeout time.Duration, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
