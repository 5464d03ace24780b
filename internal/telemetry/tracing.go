// Package telemetry настраивает OpenTelemetry-трейсинг сервиса.
package telemetry

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName - имя трейсера для спанов сервиса.
const InstrumentationName = "github.com/vladislavdragonenkov/checkout"

// Config описывает экспорт трейсов.
type Config struct {
	// Endpoint - адрес OTLP/HTTP коллектора (host:port). Пустое значение отключает экспорт.
	Endpoint       string
	ServiceName    string
	ServiceVersion string
	Insecure       bool
}

// ShutdownFunc сбрасывает буферизованные спаны и останавливает экспорт.
type ShutdownFunc func(ctx context.Context) error

// Setup регистрирует глобальный TracerProvider и пропагаторы W3C.
// Без Endpoint провайдер остаётся no-op, а Setup возвращает пустой shutdown.
func Setup(ctx context.Context, cfg Config, logger *log.Entry) (ShutdownFunc, error) {
	if logger == nil {
		logger = log.WithField("component", "telemetry")
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if cfg.Endpoint == "" {
		logger.Info("OTLP endpoint is not configured, tracing export disabled")
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
	))
	if err != nil {
		return nil, fmt.Errorf("build otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(tp)

	logger.WithField("endpoint", cfg.Endpoint).Info("tracing export enabled")
	return tp.Shutdown, nil
}

// Tracer возвращает трейсер сервиса из глобального провайдера.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}
