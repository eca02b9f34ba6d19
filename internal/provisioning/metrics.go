package provisioning

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records phase outcomes of a single run. It is exported once at the
// end of the run as a node_exporter textfile; nil receivers are no-ops.
type Metrics struct {
	registry *prometheus.Registry

	phaseDuration *prometheus.GaugeVec
	phaseTotal    *prometheus.CounterVec
	runSuccess    prometheus.Gauge
	runTimestamp  prometheus.Gauge
	warnings      prometheus.Gauge
}

// NewMetrics creates the run metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		phaseDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "hostprep",
				Subsystem: "phase",
				Name:      "duration_seconds",
				Help:      "Duration of the last execution of each provisioning phase",
			},
			[]string{"phase"},
		),
		phaseTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "hostprep",
				Subsystem: "phase",
				Name:      "executions_total",
				Help:      "Provisioning phase executions by result",
			},
			[]string{"phase", "result"},
		),
		runSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hostprep",
			Subsystem: "run",
			Name:      "success",
			Help:      "Whether the last provisioning run succeeded (1) or failed (0)",
		}),
		runTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hostprep",
			Subsystem: "run",
			Name:      "last_timestamp_seconds",
			Help:      "Unix time the last provisioning run finished",
		}),
		warnings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hostprep",
			Subsystem: "run",
			Name:      "warnings",
			Help:      "Non-fatal problems reported by the last provisioning run",
		}),
	}

	m.registry.MustRegister(m.phaseDuration, m.phaseTotal, m.runSuccess, m.runTimestamp, m.warnings)
	return m
}

// ObservePhase records the duration and result of one phase.
func (m *Metrics) ObservePhase(phase string, d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.phaseDuration.WithLabelValues(phase).Set(d.Seconds())
	m.phaseTotal.WithLabelValues(phase, result).Inc()
}

// ObserveRun records the overall outcome of a run.
func (m *Metrics) ObserveRun(finished time.Time, warnings int, err error) {
	if m == nil {
		return
	}
	if err == nil {
		m.runSuccess.Set(1)
	} else {
		m.runSuccess.Set(0)
	}
	m.runTimestamp.Set(float64(finished.Unix()))
	m.warnings.Set(float64(warnings))
}

// WriteTextfile writes the metrics in text exposition format to path,
// atomically, for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
