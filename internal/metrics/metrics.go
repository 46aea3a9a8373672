// Package metrics содержит счётчики Prometheus сервиса.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/org-chart-api/internal/tree"
)

// Metrics хранит коллекторы на собственном реестре
type Metrics struct {
	registry *prometheus.Registry
	builds   *prometheus.CounterVec
	dropped  *prometheus.CounterVec
	nodes    prometheus.Histogram
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// New создаёт и регистрирует коллекторы
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orgchart",
			Subsystem: "tree",
			Name:      "builds_total",
			Help:      "Tree builds broken down by result.",
		}, []string{"result"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orgchart",
			Subsystem: "tree",
			Name:      "dropped_records_total",
			Help:      "Department records left out of the tree, by reason.",
		}, []string{"reason"}),
		nodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "orgchart",
			Subsystem: "tree",
			Name:      "nodes",
			Help:      "Number of nodes in built trees.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orgchart",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests broken down by route, method and status class.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "orgchart",
			Subsystem: "http",
			Name:      "latency_seconds",
			Help:      "Latency distribution of HTTP requests.",
			Buckets: []float64{
				0.005, 0.01, 0.025, 0.05,
				0.1, 0.25, 0.5,
				1, 2.5, 5, 10,
			},
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.builds, m.dropped, m.nodes, m.requests, m.latency,
	)
	return m
}

// Registry возвращает реестр коллекторов
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler отдаёт метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveBuild учитывает результат построения дерева
func (m *Metrics) ObserveBuild(report tree.Report, built bool) {
	if m == nil {
		return
	}

	if !built {
		m.builds.WithLabelValues("no_root").Inc()
	} else {
		m.builds.WithLabelValues("ok").Inc()
		m.nodes.Observe(float64(report.Reachable))
	}

	m.dropped.WithLabelValues("duplicate").Add(float64(len(report.Duplicates)))
	m.dropped.WithLabelValues("unresolved_parent").Add(float64(len(report.UnresolvedParents)))
	m.dropped.WithLabelValues("unreachable").Add(float64(len(report.Unreachable) - len(report.UnresolvedParents)))
}

// ObserveRequest учитывает HTTP запрос
func (m *Metrics) ObserveRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, statusClass(status)).Inc()
	m.latency.WithLabelValues(route).Observe(duration.Seconds())
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return strconv.Itoa(status)
	}
	return strconv.Itoa(status/100) + "xx"
}
