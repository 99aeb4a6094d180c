package observability

import (
	"time"

	"github.com/kmazur/budgetbook-go/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the budget API.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	externalErrors  *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	budgetAlerts    *prometheus.CounterVec
	transactions    *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "budgetbook_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgetbook_external_errors_total",
				Help: "Total errors from the backing store.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgetbook_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgetbook_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgetbook_requests_total",
				Help: "Total requests processed.",
			},
			[]string{"status"},
		),
		budgetAlerts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgetbook_budget_alerts_total",
				Help: "Total budget alerts emitted, by severity.",
			},
			[]string{"severity"},
		),
		transactions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgetbook_transactions_created_total",
				Help: "Total transactions created, by kind.",
			},
			[]string{"kind"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrRequest increments the request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// IncrBudgetAlert counts an emitted budget alert by severity.
func (m *Metrics) IncrBudgetAlert(severity string) {
	m.budgetAlerts.WithLabelValues(severity).Inc()
}

// IncrTransactionCreated counts a created transaction by kind.
func (m *Metrics) IncrTransactionCreated(kind string) {
	m.transactions.WithLabelValues(kind).Inc()
}

// statusClasses are the labels the router's metrics middleware records
// requests under. 4xx and 5xx count toward the error rate.
var statusClasses = []string{"1xx", "2xx", "3xx", "4xx", "5xx"}

// GetAppSnapshot returns a snapshot of application metrics suitable for
// the GET /v1/metrics/app endpoint.
func (m *Metrics) GetAppSnapshot() *domain.AppMetrics {
	var totalRequests, errorCount float64
	for _, class := range statusClasses {
		v := getCounterValue(m.requestsTotal, class)
		totalRequests += v
		if class == "4xx" || class == "5xx" {
			errorCount += v
		}
	}
	cacheHits := getCounterValue(m.cacheHits, "transactions")
	cacheMisses := getCounterValue(m.cacheMisses, "transactions")

	errorRate := float64(0)
	if totalRequests > 0 {
		errorRate = errorCount / totalRequests
	}
	cacheHitRate := float64(0)
	if cacheHits+cacheMisses > 0 {
		cacheHitRate = cacheHits / (cacheHits + cacheMisses)
	}

	return &domain.AppMetrics{
		TotalRequests:       int64(totalRequests),
		ErrorRate:           errorRate,
		CacheHitRate:        cacheHitRate,
		AlertsWarning:       int64(getCounterValue(m.budgetAlerts, "warning")),
		AlertsError:         int64(getCounterValue(m.budgetAlerts, "error")),
		TransactionsCreated: int64(getCounterValue(m.transactions, "income") + getCounterValue(m.transactions, "expense")),
		Period:              "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
