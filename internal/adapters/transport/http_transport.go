package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/kevin07696/netbilling-gateway/internal/adapters/ports"
	pkghttp "github.com/kevin07696/netbilling-gateway/pkg/http"
	"github.com/kevin07696/netbilling-gateway/pkg/observability"
	"github.com/kevin07696/netbilling-gateway/pkg/resilience"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxResponseBytes caps how much of a reply is read
const maxResponseBytes = 1 << 20

// ErrUnexpectedStatus matches any StatusError via errors.Is
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// ErrResponseTooLarge is returned when a reply exceeds maxResponseBytes
var ErrResponseTooLarge = errors.New("response too large")

// StatusError is returned when the endpoint answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d", e.StatusCode)
}

// Is lets errors.Is(err, ErrUnexpectedStatus) match
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// Config contains configuration for the HTTP transport
type Config struct {
	// URL of the gateway endpoint
	URL string

	// Timeout for one HTTP attempt, including reading the body
	Timeout time.Duration

	// MaxRetries for connection-level failures. Zero disables retries;
	// a retried POST may be processed twice if the first one reached the gateway.
	MaxRetries      int
	RetryableErrors []string // substrings of error text that allow a retry

	// RateLimit is the sustained requests per second; zero disables limiting
	RateLimit float64
	RateBurst int

	InsecureSkipVerify bool
}

// DefaultConfig returns default transport configuration for url
func DefaultConfig(url string) *Config {
	return &Config{
		URL:             url,
		Timeout:         60 * time.Second,
		MaxRetries:      0,
		RetryableErrors: []string{"connection refused", "no such host"},
		RateBurst:       1,
	}
}

// HTTPTransport posts form-encoded bodies to the gateway endpoint
type HTTPTransport struct {
	config     *Config
	httpClient ports.HTTPClient
	logger     *zap.Logger
	breaker    *CircuitBreaker
	limiter    *rate.Limiter
	backoff    resilience.BackoffStrategy
}

// NewHTTPTransport creates a transport with an injected HTTP client
func NewHTTPTransport(config *Config, httpClient ports.HTTPClient, logger *zap.Logger) *HTTPTransport {
	if logger == nil {
		logger = zap.NewNop()
	}

	breakerConfig := DefaultCircuitBreakerConfig()
	breakerConfig.OnStateChange = func(state CircuitState) {
		logger.Warn("Gateway circuit breaker changed state", zap.String("circuit_state", state.String()))
		observability.SetCircuitBreakerState("netbilling", int(state))
	}

	t := &HTTPTransport{
		config:     config,
		httpClient: httpClient,
		logger:     logger.Named("transport"),
		breaker:    NewCircuitBreaker(breakerConfig),
		backoff:    resilience.DefaultExponentialBackoff(),
	}
	if config.RateLimit > 0 {
		burst := config.RateBurst
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), burst)
	}
	return t
}

// NewHTTPTransportWithDefaults creates a transport using the pooled client
// tuned for the NETbilling endpoint
func NewHTTPTransportWithDefaults(config *Config, logger *zap.Logger) *HTTPTransport {
	clientConfig := pkghttp.NetbillingClientConfig()
	clientConfig.InsecureSkipVerify = config.InsecureSkipVerify
	return NewHTTPTransport(config, pkghttp.NewHTTPClient(clientConfig, config.Timeout), logger)
}

// CircuitBreaker exposes the breaker guarding the endpoint
func (t *HTTPTransport) CircuitBreaker() *CircuitBreaker {
	return t.breaker
}

// Post sends body to the endpoint and returns the response body
func (t *HTTPTransport) Post(ctx context.Context, body []byte) ([]byte, error) {
	if err := t.wait(ctx); err != nil {
		return nil, err
	}

	policy := resilience.RetryPolicy{
		MaxRetries: t.config.MaxRetries,
		Backoff:    t.backoff,
		Retryable:  t.isRetryable,
		OnRetry: func(attempt int, delay time.Duration, err error) {
			t.logger.Info("Retrying gateway request with exponential backoff",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", t.config.MaxRetries),
				zap.Duration("backoff_delay", delay),
				zap.Error(err),
			)
			observability.RecordTransportRetry()
		},
	}

	var respBody []byte
	err := t.breaker.Call(func() error {
		return resilience.Retry(ctx, policy, func() error {
			b, err := t.send(ctx, body)
			if err != nil {
				return err
			}
			respBody = b
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, ErrCircuitOpen) || errors.Is(err, ErrTooManyRequests) {
			t.logger.Warn("Circuit breaker is open, rejecting gateway request",
				zap.String("circuit_state", t.breaker.State().String()),
			)
			observability.RecordTransportRequest("circuit_open")
		}
		return nil, err
	}
	return respBody, nil
}

func (t *HTTPTransport) wait(ctx context.Context) error {
	if t.limiter == nil {
		return nil
	}
	start := time.Now()
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	observability.RecordRateLimitWait(time.Since(start).Seconds())
	return nil
}

// send performs a single POST attempt
func (t *HTTPTransport) send(ctx context.Context, body []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.config.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if id := ports.RequestIDFromContext(ctx); id != "" {
		httpReq.Header.Set("X-Request-ID", id)
	}

	startTime := time.Now()
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		t.logger.Error("Failed to send gateway request",
			zap.Error(err),
			zap.Duration("elapsed", time.Since(startTime)),
		)
		observability.RecordTransportRequest("network_error")
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes+1))
	if err != nil {
		observability.RecordTransportRequest("network_error")
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(respBody) > maxResponseBytes {
		t.logger.Error("Gateway response exceeds size limit",
			zap.Int("status_code", httpResp.StatusCode),
			zap.Int("limit_bytes", maxResponseBytes),
		)
		observability.RecordTransportRequest("oversized")
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, maxResponseBytes)
	}

	t.logger.Debug("Received gateway response",
		zap.Int("status_code", httpResp.StatusCode),
		zap.Duration("elapsed", time.Since(startTime)),
		zap.Int("body_length", len(respBody)),
	)

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		observability.RecordTransportRequest("http_error")
		return nil, &StatusError{StatusCode: httpResp.StatusCode, Body: string(respBody)}
	}

	observability.RecordTransportRequest("ok")
	return respBody, nil
}

// isRetryable allows retries only for failures that happen before the
// gateway could have seen the request
func (t *HTTPTransport) isRetryable(err error) bool {
	if err == nil || errors.Is(err, ErrUnexpectedStatus) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, retryable := range t.config.RetryableErrors {
		if strings.Contains(errStr, retryable) {
			return true
		}
	}
	return false
}
