package service

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsService owns the Prometheus registry and the counters the
// payment lifecycle emits. A nil MetricsService is safe to call.
type MetricsService struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	paymentsInitialized prometheus.Counter
	paymentsCompleted   prometheus.Counter
	paymentsFailed      prometheus.Counter
	webhookEvents       *prometheus.CounterVec
	amountMismatches    prometheus.Counter
}

// NewMetricsService builds the service with a private registry so test
// runs never collide on the default one.
func NewMetricsService() *MetricsService {
	s := &MetricsService{registry: prometheus.NewRegistry()}

	s.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})

	s.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	s.paymentsInitialized = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payments_initialized_total",
		Help: "Gateway transactions initialized.",
	})
	s.paymentsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payments_completed_total",
		Help: "Payments that reached completed.",
	})
	s.paymentsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payments_failed_total",
		Help: "Payments that reached failed.",
	})
	s.webhookEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_events_total",
		Help: "Webhook deliveries received by event type.",
	}, []string{"event"})
	s.amountMismatches = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "amount_mismatch_total",
		Help: "Payment amounts rejected against the catalog price.",
	})

	s.registry.MustRegister(
		s.httpRequests, s.httpDuration,
		s.paymentsInitialized, s.paymentsCompleted, s.paymentsFailed,
		s.webhookEvents, s.amountMismatches,
	)
	return s
}

// Registry exposes the underlying registry for the /metrics handler.
func (s *MetricsService) Registry() *prometheus.Registry {
	if s == nil {
		return nil
	}
	return s.registry
}

// ObserveRequest records one handled HTTP request.
func (s *MetricsService) ObserveRequest(method, path string, status int, duration time.Duration) {
	if s == nil {
		return
	}
	s.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	s.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// PaymentInitialized counts a newly initialized gateway transaction.
func (s *MetricsService) PaymentInitialized() {
	if s == nil {
		return
	}
	s.paymentsInitialized.Inc()
}

// PaymentCompleted counts a payment reaching completed.
func (s *MetricsService) PaymentCompleted() {
	if s == nil {
		return
	}
	s.paymentsCompleted.Inc()
}

// PaymentFailed counts a payment reaching failed.
func (s *MetricsService) PaymentFailed() {
	if s == nil {
		return
	}
	s.paymentsFailed.Inc()
}

// WebhookEvent counts one webhook delivery by type.
func (s *MetricsService) WebhookEvent(event string) {
	if s == nil {
		return
	}
	s.webhookEvents.WithLabelValues(event).Inc()
}

// AmountMismatch counts one rejected payment amount.
func (s *MetricsService) AmountMismatch() {
	if s == nil {
		return
	}
	s.amountMismatches.Inc()
}
