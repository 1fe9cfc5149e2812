package ports

import "context"

// Transport performs the HTTP POST of a form-encoded body to the gateway
// endpoint and returns the raw response body. TLS, timeouts and
// connection-level retries belong to the implementation.
type Transport interface {
	Post(ctx context.Context, body []byte) ([]byte, error)
}

type requestIDKey struct{}

// WithRequestID attaches a correlation id that transports forward to the gateway
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the correlation id set by WithRequestID
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
