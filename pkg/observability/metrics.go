package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
	Port        int
}

// InitMetrics initializes the Prometheus metrics exporter.
// Returns the MeterProvider and an HTTP handler for the /metrics endpoint.
func InitMetrics(_ MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	handler := promhttp.Handler()

	return provider, handler, nil
}

// MarketplaceMetrics bundles the instruments the marketplace service records.
type MarketplaceMetrics struct {
	ApplicationsSubmitted metric.Int64Counter
	StatusTransitions     metric.Int64Counter
	FitScoreEvaluations   metric.Int64Counter
	RequestDuration       metric.Float64Histogram
}

// NewMarketplaceMetrics registers the marketplace instruments on the meter.
func NewMarketplaceMetrics(provider *sdkmetric.MeterProvider, serviceName string) (*MarketplaceMetrics, error) {
	meter := provider.Meter(serviceName)

	submitted, err := meter.Int64Counter("marketplace_applications_submitted_total",
		metric.WithDescription("Loan applications submitted"))
	if err != nil {
		return nil, err
	}

	transitions, err := meter.Int64Counter("marketplace_status_transitions_total",
		metric.WithDescription("Application status transitions applied"))
	if err != nil {
		return nil, err
	}

	evaluations, err := meter.Int64Counter("marketplace_fit_evaluations_total",
		metric.WithDescription("Policy fit evaluations performed, previews included"))
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("marketplace_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"))
	if err != nil {
		return nil, err
	}

	return &MarketplaceMetrics{
		ApplicationsSubmitted: submitted,
		StatusTransitions:     transitions,
		FitScoreEvaluations:   evaluations,
		RequestDuration:       duration,
	}, nil
}
