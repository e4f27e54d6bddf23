// Package observability provides OpenTelemetry instrumentation for tracing and metrics.
package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"

	"jobmanager/internal/store"
)

// InitMetrics initializes the OpenTelemetry metrics provider with a Prometheus exporter.
// It returns the HTTP handler for the /metrics endpoint and a shutdown function.
// The shutdown function should be called on application exit for graceful cleanup.
func InitMetrics() (http.Handler, func(context.Context) error, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := metric.NewMeterProvider(
		metric.WithReader(exporter),
	)

	otel.SetMeterProvider(provider)

	return promhttp.Handler(), provider.Shutdown, nil
}

// RegisterJobGauges registers observable gauges for the number of
// running and stopped jobs. The store is queried on each scrape.
func RegisterJobGauges(jobs store.JobStore) error {
	meter := otel.Meter("jobmanager")

	running, err := meter.Int64ObservableGauge("jobmanager.jobs.running",
		otelmetric.WithDescription("Number of jobs currently flagged running"),
	)
	if err != nil {
		return fmt.Errorf("failed to create running jobs gauge: %w", err)
	}

	stopped, err := meter.Int64ObservableGauge("jobmanager.jobs.stopped",
		otelmetric.WithDescription("Number of jobs currently flagged stopped"),
	)
	if err != nil {
		return fmt.Errorf("failed to create stopped jobs gauge: %w", err)
	}

	_, err = meter.RegisterCallback(func(ctx context.Context, o otelmetric.Observer) error {
		count, err := jobs.CountJobs(ctx, store.StatusRunning)
		if err != nil {
			return err
		}
		o.ObserveInt64(running, count)

		count, err = jobs.CountJobs(ctx, store.StatusStopped)
		if err != nil {
			return err
		}
		o.ObserveInt64(stopped, count)
		return nil
	}, running, stopped)
	if err != nil {
		return fmt.Errorf("failed to register job gauge callback: %w", err)
	}
	return nil
}
