// Package metrics exposes Prometheus instruments for the order workflow and
// the HTTP API. All metrics are prefixed with "encargos_".
//
// Metrics:
//   - encargos_stage_changes_total{stage,value} - workflow flag writes
//   - encargos_notifications_total{channel,result} - notification attempts
//   - encargos_cascade_rows_total{kind} - order rows rewritten by cascades
//   - encargos_consistency_issues{kind} - issues found by the last audit
//   - encargos_http_requests_total{method,route,status} - API requests
//   - encargos_http_request_duration_seconds{method,route} - API latency
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics implements ports.Recorder on top of a Prometheus registry.
type Metrics struct {
	StageChanges        *prometheus.CounterVec
	Notifications       *prometheus.CounterVec
	CascadeRows         *prometheus.CounterVec
	ConsistencyIssues   *prometheus.GaugeVec
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers the instruments on reg. Passing a fresh registry keeps tests
// isolated from prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		StageChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "encargos_stage_changes_total",
				Help: "Total number of workflow flag writes",
			},
			[]string{"stage", "value"},
		),

		Notifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "encargos_notifications_total",
				Help: "Total number of customer notification attempts",
			},
			[]string{"channel", "result"}, // "ok" or "failed"
		),

		CascadeRows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "encargos_cascade_rows_total",
				Help: "Total number of order rows rewritten by cascades",
			},
			[]string{"kind"},
		),

		ConsistencyIssues: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "encargos_consistency_issues",
				Help: "Issues found by the most recent consistency audit",
			},
			[]string{"kind"}, // "orphaned", "inconsistent", "duplicate_phone"
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "encargos_http_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"method", "route", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "encargos_http_request_duration_seconds",
				Help:    "Duration of API requests in seconds",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~2.5s
			},
			[]string{"method", "route"},
		),
	}
}

func (m *Metrics) StageChanged(stage string, value bool) {
	m.StageChanges.WithLabelValues(stage, strconv.FormatBool(value)).Inc()
}

func (m *Metrics) NotificationSent(channel string, ok bool) {
	result := "failed"
	if ok {
		result = "ok"
	}
	m.Notifications.WithLabelValues(channel, result).Inc()
}

func (m *Metrics) CascadeApplied(kind string, rows int64) {
	m.CascadeRows.WithLabelValues(kind).Add(float64(rows))
}

func (m *Metrics) ConsistencyChecked(orphaned, inconsistent, duplicates int) {
	m.ConsistencyIssues.WithLabelValues("orphaned").Set(float64(orphaned))
	m.ConsistencyIssues.WithLabelValues("inconsistent").Set(float64(inconsistent))
	m.ConsistencyIssues.WithLabelValues("duplicate_phone").Set(float64(duplicates))
}

// ObserveRequest records one API request. route is the registered path
// pattern, not the raw URL.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
