package observability

// https://opentelemetry.io/docs/languages/go/exporters/

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type MetricsExporter string

const (
	NoneExporter       MetricsExporter = "none"
	StdoutExporter     MetricsExporter = "stdout"
	PrometheusExporter MetricsExporter = "prometheus"
)

type observabilityErr string

func (e observabilityErr) Error() string { return string(e) }

const ErrUnknownExporter observabilityErr = "[observability] unknown metrics exporter"

func ParseMetricsExporter(name string) (MetricsExporter, error) {
	switch exp := MetricsExporter(strings.ToLower(strings.TrimSpace(name))); exp {
	case "":
		return NoneExporter, nil
	case NoneExporter, StdoutExporter, PrometheusExporter:
		return exp, nil
	}
	return NoneExporter, ErrUnknownExporter
}

// ShutdownFunc flushes the pending metrics and releases the exporter.
type ShutdownFunc func(ctx context.Context) error

func noopShutdown(context.Context) error { return nil }

// InitMetricsExporter installs the global meter provider for the exporter
// kind. NoneExporter keeps the otel no-op provider.
func InitMetricsExporter(kind MetricsExporter, out io.Writer, interval time.Duration) (ShutdownFunc, error) {
	switch kind {
	case StdoutExporter:
		opts := []stdoutmetric.Option{stdoutmetric.WithoutTimestamps()}
		if out != nil {
			opts = append(opts, stdoutmetric.WithWriter(out))
		}
		return newConsoleMetricsExporter(interval, interval, opts...)
	case PrometheusExporter:
		return newPrometheusMetricsExporter()
	case NoneExporter:
		return noopShutdown, nil
	}
	return nil, ErrUnknownExporter
}

// Serves for test/dev environment.
func newConsoleMetricsExporter(interval, timeout time.Duration, opts ...stdoutmetric.Option) (ShutdownFunc, error) {
	exporter, err := stdoutmetric.New(opts...)
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval, timeout = 10*time.Second, 5*time.Second
	}
	mp := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(
		exporter,
		metric.WithInterval(interval),
		metric.WithTimeout(timeout),
	)))
	otel.SetMeterProvider(mp)
	return mp.Shutdown, nil
}

// Serves for the product environment and fetch stats metrics by HTTP.
func newPrometheusMetricsExporter() (ShutdownFunc, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(mp)
	return mp.Shutdown, nil
}

// NewPrometheusServer exposes the default prometheus registry, which the
// prometheus exporter registers into, on addr under /metrics.
func NewPrometheusServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
