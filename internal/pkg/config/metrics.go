package config

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ConfigMetrics exports the state of a binary's configuration load.
// All metric names are prefixed with the component name passed to
// NewConfigMetrics, e.g. charcount_api_config_fallbacks_total.
type ConfigMetrics struct {
	// LoadTimestamp is the Unix time of the last successful load.
	LoadTimestamp prometheus.Gauge

	// ValidationErrorsTotal counts rejected configurations by field.
	ValidationErrorsTotal *prometheus.CounterVec

	// FallbacksTotal counts environment values replaced by defaults, by field.
	FallbacksTotal *prometheus.CounterVec

	// FallbackActive is 1 while the running configuration uses any fallback.
	FallbackActive prometheus.Gauge

	componentName string
}

// NewConfigMetrics registers the configuration metrics for component with
// the default Prometheus registry. It panics if the names are already
// registered, so each component must call it once.
func NewConfigMetrics(componentName string) *ConfigMetrics {
	return &ConfigMetrics{
		LoadTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: componentName + "_config_load_timestamp",
			Help: "Unix timestamp of the last " + componentName + " configuration load",
		}),
		ValidationErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: componentName + "_config_validation_errors_total",
			Help: "Total number of " + componentName + " configuration validation errors",
		}, []string{"field"}),
		FallbacksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: componentName + "_config_fallbacks_total",
			Help: "Total number of " + componentName + " configuration values replaced by defaults",
		}, []string{"field"}),
		FallbackActive: promauto.NewGauge(prometheus.GaugeOpts{
			Name: componentName + "_config_fallback_active",
			Help: "1 if any " + componentName + " configuration fallback is active, 0 otherwise",
		}),
		componentName: componentName,
	}
}

// RecordLoad marks a successful load. fallbackFields lists the fields whose
// environment values were rejected in favour of defaults; the active gauge
// follows whether that list is empty.
func (m *ConfigMetrics) RecordLoad(fallbackFields []string) {
	for _, field := range fallbackFields {
		m.FallbacksTotal.WithLabelValues(field).Inc()
	}
	if len(fallbackFields) > 0 {
		m.FallbackActive.Set(1)
	} else {
		m.FallbackActive.Set(0)
	}
	m.LoadTimestamp.SetToCurrentTime()
}

// RecordValidationError counts a configuration rejected because of field.
func (m *ConfigMetrics) RecordValidationError(field string) {
	m.ValidationErrorsTotal.WithLabelValues(field).Inc()
}
