// Package telemetry はプランナーのスパンとログを OTLP/gRPC で送るプロバイダーを用意します。
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const ServiceName = "goapworld"

// Provider は登録したトレース・ログのプロバイダーをまとめて止めます。
type Provider struct {
	loggerProvider *sdklog.LoggerProvider
	shutdownFuncs  []func(context.Context) error
}

// Setup は endpoint へスパンとログを送るプロバイダーをグローバルに登録します。
// endpoint が空なら何も登録せず、otel の no-op プロバイダーのままになります。
func Setup(ctx context.Context, endpoint string) (*Provider, error) {
	p := &Provider{}
	if endpoint == "" {
		return p, nil
	}

	traceExporter, err := otlptracegrpc.New(ctx, traceOptions(endpoint)...)
	if err != nil {
		return nil, fmt.Errorf("create otlp trace exporter: %w", err)
	}
	tp := NewTracerProvider(traceExporter)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	p.shutdownFuncs = append(p.shutdownFuncs, tp.Shutdown)

	logExporter, err := otlploggrpc.New(ctx, logOptions(endpoint)...)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create otlp log exporter: %w", err), p.Shutdown(ctx))
	}
	lp := NewLoggerProvider(logExporter)
	global.SetLoggerProvider(lp)
	p.loggerProvider = lp
	p.shutdownFuncs = append(p.shutdownFuncs, lp.Shutdown)

	return p, nil
}

// NewTracerProvider は exporter にバッチ送信するトレーサープロバイダーを作ります。
func NewTracerProvider(exporter sdktrace.SpanExporter) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(newResource()),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
}

// NewLoggerProvider は exporter にバッチ送信するロガープロバイダーを作ります。
func NewLoggerProvider(exporter sdklog.Exporter) *sdklog.LoggerProvider {
	return sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(newResource()),
	)
}

func newResource() *resource.Resource {
	return resource.NewSchemaless(attribute.String("service.name", ServiceName))
}

// LogHandler はログを OTLP に流す slog.Handler です。無効な場合は nil を返します。
func (p *Provider) LogHandler() slog.Handler {
	if p.loggerProvider == nil {
		return nil
	}
	return otelslog.NewHandler(ServiceName, otelslog.WithLoggerProvider(p.loggerProvider))
}

// Enabled は OTLP への送信が有効かを返します。
func (p *Provider) Enabled() bool {
	return len(p.shutdownFuncs) > 0
}

// Shutdown は残っているスパンとログを送り出してプロバイダーを止めます。
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range p.shutdownFuncs {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	p.shutdownFuncs = nil
	return errors.Join(errs...)
}

// Instrument は HTTP ハンドラーにリクエスト単位のスパンを付けます。
func Instrument(h http.Handler) http.Handler {
	return otelhttp.NewHandler(h, ServiceName)
}

// http(s):// 付きならURLとして解釈し、host:port だけなら平文で接続する
func traceOptions(endpoint string) []otlptracegrpc.Option {
	if hasScheme(endpoint) {
		return []otlptracegrpc.Option{otlptracegrpc.WithEndpointURL(endpoint)}
	}
	return []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	}
}

func logOptions(endpoint string) []otlploggrpc.Option {
	if hasScheme(endpoint) {
		return []otlploggrpc.Option{otlploggrpc.WithEndpointURL(endpoint)}
	}
	return []otlploggrpc.Option{
		otlploggrpc.WithEndpoint(endpoint),
		otlploggrpc.WithInsecure(),
	}
}

func hasScheme(endpoint string) bool {
	return strings.Contains(endpoint, "://")
}
