package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Gateway transaction metrics
	gatewayTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netbilling_transactions_total",
		Help: "Total number of NETbilling transactions by outcome",
	}, []string{
		"operation",      // authorization, purchase, capture, referenced_credit, unreferenced_credit
		"status",         // approved, declined, error
		"funding_source", // credit_card, stored_token, reference
	})

	gatewayTransactionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "netbilling_transaction_duration_seconds",
		Help: "Round trip time of NETbilling transactions",
		// Buckets: 100ms to 30s (typical payment processing times)
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{
		"operation",
		"status",
	})

	gatewayProtocolMismatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netbilling_protocol_mismatches_total",
		Help: "Replies that were malformed or missing status_code/trans_id",
	}, []string{
		"operation",
	})

	// Transport metrics
	transportRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netbilling_http_requests_total",
		Help: "HTTP POST attempts to the NETbilling endpoint",
	}, []string{
		"result", // ok, http_error, network_error, oversized, circuit_open
	})

	transportRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "netbilling_http_retries_total",
		Help: "Connection-level retries performed by the transport",
	})

	transportRateLimitWait = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "netbilling_rate_limit_wait_seconds",
		Help:    "Time spent waiting on the outbound rate limiter",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})

	circuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "netbilling_circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
	}, []string{
		"name",
	})
)

// RecordGatewayTransaction records one completed gateway round trip
func RecordGatewayTransaction(operation, status, fundingSource string, duration float64) {
	gatewayTransactionsTotal.WithLabelValues(operation, status, fundingSource).Inc()
	gatewayTransactionDuration.WithLabelValues(operation, status).Observe(duration)
}

// RecordProtocolMismatch counts a reply that could not be fully interpreted
func RecordProtocolMismatch(operation string) {
	gatewayProtocolMismatches.WithLabelValues(operation).Inc()
}

// RecordTransportRequest counts one HTTP attempt by result
func RecordTransportRequest(result string) {
	transportRequestsTotal.WithLabelValues(result).Inc()
}

// RecordTransportRetry counts one retry
func RecordTransportRetry() {
	transportRetriesTotal.Inc()
}

// RecordRateLimitWait observes time spent blocked on the rate limiter
func RecordRateLimitWait(seconds float64) {
	transportRateLimitWait.Observe(seconds)
}

// SetCircuitBreakerState publishes the numeric breaker state
func SetCircuitBreakerState(name string, state int) {
	circuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// GatewayTransactionCount returns the counter for the given labels.
// Exposed for tests.
func GatewayTransactionCount(operation, status, fundingSource string) prometheus.Counter {
	return gatewayTransactionsTotal.WithLabelValues(operation, status, fundingSource)
}

// ProtocolMismatchCount returns the mismatch counter for operation. Exposed for tests.
func ProtocolMismatchCount(operation string) prometheus.Counter {
	return gatewayProtocolMismatches.WithLabelValues(operation)
}
