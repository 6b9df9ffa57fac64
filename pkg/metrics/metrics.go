package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creatitube_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "creatitube_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "route"},
	)

	// AI client
	AIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creatitube_ai_requests_total",
			Help: "Generative text requests by operation and outcome",
		},
		[]string{"operation", "outcome"}, // outcome: success, fallback
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "creatitube_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creatitube_circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker by result",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creatitube_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Marketplace
	OrdersPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "creatitube_orders_placed_total",
			Help: "Total number of completed purchases",
		},
	)

	OrderRevenue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "creatitube_order_revenue_total",
			Help: "Sum of order totals",
		},
	)

	QueuePublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creatitube_queue_messages_published_total",
			Help: "Messages published to RabbitMQ by routing key and result",
		},
		[]string{"routing_key", "result"},
	)

	HighlightCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creatitube_highlight_cache_total",
			Help: "Highlight cache lookups by result",
		},
		[]string{"result"}, // hit, miss
	)
)

func RecordHTTPRequest(service, method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(service, method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(service, method, route).Observe(duration.Seconds())
}

func RecordAIRequest(operation string, fallback bool) {
	outcome := "success"
	if fallback {
		outcome = "fallback"
	}
	AIRequestsTotal.WithLabelValues(operation, outcome).Inc()
}

func RecordOrder(total float64) {
	OrdersPlaced.Inc()
	OrderRevenue.Add(total)
}

func RecordPublish(routingKey string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	QueuePublished.WithLabelValues(routingKey, result).Inc()
}
