// Package metrics holds the Prometheus collectors of the storefront.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Registry is served at /metrics. It is separate from the global default registry
// so tests can read counters without interference from other packages.
var Registry = prometheus.NewRegistry()

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Orders created at checkout.",
	})

	PaymentsConfirmed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_confirmed_total",
		Help:      "Orders marked paid by the payment webhook.",
	})

	CartsAbandoned = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "carts_abandoned_total",
		Help:      "Idle carts flagged as abandoned.",
	})

	ConversionEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "conversion_events_total",
		Help:      "Conversion events by event name and outcome (queued, sent, failed, skipped).",
	}, []string{"event", "result"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequests,
		HTTPDuration,
		OrdersCreated,
		PaymentsConfirmed,
		CartsAbandoned,
		ConversionEvents,
	)
}

// Handler exposes Registry in the text exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
