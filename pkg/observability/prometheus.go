package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Textfile is a Prometheus-backed meter for one-shot CLI runs. Instruments
// created from Meter are written in the node-exporter textfile format by Write.
type Textfile struct {
	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider
}

// NewTextfile creates a Textfile with an independent Prometheus registry.
func NewTextfile() (*Textfile, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(
		promexporter.WithRegisterer(registry),
	)
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	return &Textfile{
		registry: registry,
		provider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter)),
	}, nil
}

// Meter returns a named meter whose instruments are exported by Write.
func (tf *Textfile) Meter() metric.Meter {
	return tf.provider.Meter(meterName)
}

// Write gathers all collected metrics and writes them to path.
func (tf *Textfile) Write(path string) error {
	err := prometheus.WriteToTextfile(path, tf.registry)
	if err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}

	return nil
}

// Gather returns the current metric families, mainly for inspection in tests.
func (tf *Textfile) Gather() ([]string, error) {
	families, err := tf.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}

	return names, nil
}

// Close shuts the meter provider down.
func (tf *Textfile) Close(ctx context.Context) error {
	err := tf.provider.Shutdown(ctx)
	if err != nil && !errors.Is(err, sdkmetric.ErrReaderShutdown) {
		return fmt.Errorf("shutdown textfile meter: %w", err)
	}

	return nil
}
