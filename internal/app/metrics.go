package app

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/dshills/frostline/internal/page"
)

// Metrics counts frozen row activity. It implements page.Recorder.
type Metrics struct {
	gatherer prometheus.Gatherer

	rejections     *prometheus.CounterVec
	shifts         *prometheus.CounterVec
	refreshes      prometheus.Counter
	markers        prometheus.Gauge
	pages          prometheus.Gauge
	scripts        *prometheus.CounterVec
	scriptDuration prometheus.Histogram
}

var _ page.Recorder = (*Metrics)(nil)

// NewMetrics registers the metrics in a fresh registry under namespace.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_rejections_total",
			Help:      "Edits refused because they touch frozen rows, by operation.",
		}, []string{"op"}),
		shifts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frozen_shifts_total",
			Help:      "Structural changes that moved frozen rows, by action.",
		}, []string{"action"}),
		refreshes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "marker_refreshes_total",
			Help:      "Frozen row marker refreshes.",
		}),
		markers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "markers",
			Help:      "Markers installed by the latest refresh.",
		}),
		pages: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_pages",
			Help:      "Pages currently open.",
		}),
		scripts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scripts_total",
			Help:      "Lua scripts run, by result.",
		}, []string{"result"}),
		scriptDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "script_duration_seconds",
			Help:      "Lua script run time.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
}

// Rejected records a refused edit.
func (m *Metrics) Rejected(op string) {
	m.rejections.WithLabelValues(op).Inc()
}

// Shifted records a shift of frozen rows.
func (m *Metrics) Shifted(action string) {
	m.shifts.WithLabelValues(action).Inc()
}

// MarkersRefreshed records a marker refresh that installed n markers.
func (m *Metrics) MarkersRefreshed(n int) {
	m.refreshes.Inc()
	m.markers.Set(float64(n))
}

// PagesOpen records the number of open pages.
func (m *Metrics) PagesOpen(n int) {
	m.pages.Set(float64(n))
}

// ScriptRun records a finished script.
func (m *Metrics) ScriptRun(d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.scripts.WithLabelValues(result).Inc()
	m.scriptDuration.Observe(d.Seconds())
}

// Gatherer exposes the registry, e.g. for promhttp.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.gatherer
}

// WriteText writes every metric in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}
