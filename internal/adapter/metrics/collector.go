package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newsbot/internal/domain/ports"
)

const (
	MetricsNamespace = "newsbot"

	replyStatusSent   = "sent"
	replyStatusFailed = "failed"
)

// Collector records query and reply metrics in a dedicated Prometheus registry.
type Collector struct {
	registry *prometheus.Registry

	startTime      prometheus.Gauge
	queriesTotal   *prometheus.CounterVec
	searchDuration prometheus.Histogram
	repliesTotal   *prometheus.CounterVec
}

var _ ports.QueryRecorder = (*Collector)(nil)

// NewCollector creates a Collector with Go and process collectors registered.
func NewCollector() *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
		Namespace: MetricsNamespace,
	}))
	c.registry.MustRegister(collectors.NewGoCollector())

	c.startTime = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "start_timestamp_seconds",
		Help:      "The time the bot started.",
	})
	c.startTime.SetToCurrentTime()
	c.registry.MustRegister(c.startTime)

	c.queriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "queries_total",
		Help:      "News queries handled, by outcome.",
	}, []string{"outcome"})
	c.registry.MustRegister(c.queriesTotal)

	c.searchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: MetricsNamespace,
		Name:      "search_duration_seconds",
		Help:      "Time spent waiting for the news provider.",
		Buckets:   prometheus.DefBuckets,
	})
	c.registry.MustRegister(c.searchDuration)

	c.repliesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "replies_total",
		Help:      "Chat replies attempted, by delivery status.",
	}, []string{"status"})
	c.registry.MustRegister(c.repliesTotal)

	for _, outcome := range outcomes {
		c.queriesTotal.WithLabelValues(outcome)
	}

	return c
}

var outcomes = []string{
	ports.OutcomeOK,
	ports.OutcomeEmptyTopic,
	ports.OutcomeNotFound,
	ports.OutcomeNetworkError,
	ports.OutcomeError,
}

// GetRegistry exposes the underlying registry.
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}

// ObserveQuery counts a finished query. Provider latency is only recorded when a search ran.
func (c *Collector) ObserveQuery(outcome string, elapsed time.Duration) {
	c.queriesTotal.WithLabelValues(outcome).Inc()
	if outcome != ports.OutcomeEmptyTopic {
		c.searchDuration.Observe(elapsed.Seconds())
	}
}

// ObserveReply counts a reply delivery attempt.
func (c *Collector) ObserveReply(err error) {
	status := replyStatusSent
	if err != nil {
		status = replyStatusFailed
	}
	c.repliesTotal.WithLabelValues(status).Inc()
}

// Totals returns the query counters keyed by outcome.
func (c *Collector) Totals() map[string]float64 {
	totals := make(map[string]float64, len(outcomes))

	families, err := c.registry.Gather()
	if err != nil {
		return totals
	}

	name := prometheus.BuildFQName(MetricsNamespace, "", "queries_total")
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "outcome" {
					totals[label.GetValue()] = metric.GetCounter().GetValue()
				}
			}
		}
	}
	return totals
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
