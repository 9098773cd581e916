package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hireloop"

// Registry owns the application's collectors. Each instance uses its own
// prometheus registry so tests can create as many as they need.
type Registry struct {
	reg *prometheus.Registry

	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	webhookDeliveries *prometheus.CounterVec
	inboundWebhooks   *prometheus.CounterVec
	searchDuration    prometheus.Histogram
	rateLimited       prometheus.Counter
}

func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		reg: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		webhookDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_deliveries_total",
			Help:      "Outbound webhook delivery attempts by outcome.",
		}, []string{"outcome"}),
		inboundWebhooks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inbound_webhooks_total",
			Help:      "Inbound webhooks by source and outcome.",
		}, []string{"source", "outcome"}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "candidate_search_duration_seconds",
			Help:      "Candidate search latency including ranking.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_key_rate_limited_total",
			Help:      "Requests rejected by the per API key rate limiter.",
		}),
	}

	reg.MustRegister(r.httpRequests, r.httpDuration, r.webhookDeliveries, r.inboundWebhooks, r.searchDuration, r.rateLimited)
	return r
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer exposes the underlying registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

func (r *Registry) ObserveRequest(method string, status int, d time.Duration) {
	r.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method).Observe(d.Seconds())
}

func (r *Registry) ObserveDelivery(outcome string) {
	r.webhookDeliveries.WithLabelValues(outcome).Inc()
}

func (r *Registry) ObserveInbound(source, outcome string) {
	r.inboundWebhooks.WithLabelValues(source, outcome).Inc()
}

func (r *Registry) ObserveSearch(d time.Duration) {
	r.searchDuration.Observe(d.Seconds())
}

func (r *Registry) ObserveRateLimited() {
	r.rateLimited.Inc()
}
