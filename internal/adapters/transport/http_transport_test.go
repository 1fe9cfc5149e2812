package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kevin07696/netbilling-gateway/internal/adapters/ports"
	"github.com/kevin07696/netbilling-gateway/pkg/resilience"
	"github.com/kevin07696/netbilling-gateway/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func textResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func dialError() error {
	return &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connect: connection refused")}
}

func TestHTTPTransport_Post(t *testing.T) {
	var gotBody, gotContentType, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte("status_code=1&trans_id=110270311543"))
	}))
	defer server.Close()

	transport := NewHTTPTransportWithDefaults(DefaultConfig(server.URL), zap.NewNop())

	ctx := ports.WithRequestID(context.Background(), "req-1")
	reply, err := transport.Post(ctx, []byte("amount=1.00&tran_type=S"))
	require.NoError(t, err)

	assert.Equal(t, "status_code=1&trans_id=110270311543", string(reply))
	assert.Equal(t, "amount=1.00&tran_type=S", gotBody)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "req-1", gotRequestID)
}

func TestHTTPTransport_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	config := DefaultConfig(server.URL)
	config.MaxRetries = 3
	transport := NewHTTPTransportWithDefaults(config, zap.NewNop())

	_, err := transport.Post(context.Background(), []byte("amount=1.00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "upstream down", statusErr.Body)
}

func TestHTTPTransport_RetriesDialErrors(t *testing.T) {
	attempts := 0
	client := mocks.NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		attempts++
		if attempts < 3 {
			return nil, dialError()
		}
		return textResponse(http.StatusOK, "status_code=1&trans_id=T1"), nil
	})

	config := DefaultConfig("https://gateway.test/gw")
	config.MaxRetries = 2
	transport := NewHTTPTransport(config, client, zap.NewNop())
	transport.backoff = &resilience.FixedBackoff{Delay: time.Millisecond}

	reply, err := transport.Post(context.Background(), []byte("amount=1.00"))
	require.NoError(t, err)
	assert.Equal(t, "status_code=1&trans_id=T1", string(reply))
	assert.Len(t, client.Calls, 3)
}

func TestHTTPTransport_NoRetryByDefault(t *testing.T) {
	client := mocks.NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return nil, dialError()
	})

	transport := NewHTTPTransport(DefaultConfig("https://gateway.test/gw"), client, zap.NewNop())

	_, err := transport.Post(context.Background(), []byte("amount=1.00"))
	require.Error(t, err)
	assert.Len(t, client.Calls, 1)
}

func TestHTTPTransport_ReadErrorsNotRetried(t *testing.T) {
	client := mocks.NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("read tcp: i/o timeout")
	})

	config := DefaultConfig("https://gateway.test/gw")
	config.MaxRetries = 3
	transport := NewHTTPTransport(config, client, zap.NewNop())
	transport.backoff = &resilience.FixedBackoff{Delay: time.Millisecond}

	_, err := transport.Post(context.Background(), []byte("amount=1.00"))
	require.Error(t, err)
	assert.Len(t, client.Calls, 1, "the request may have reached the gateway")
}

func TestHTTPTransport_ResponseSizeLimit(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"at limit", maxResponseBytes, false},
		{"over limit", maxResponseBytes + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.Repeat("a", tt.size)
			client := mocks.NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
				return textResponse(http.StatusOK, body), nil
			})

			config := DefaultConfig("https://gateway.test/gw")
			config.MaxRetries = 3
			transport := NewHTTPTransport(config, client, zap.NewNop())
			transport.backoff = &resilience.FixedBackoff{Delay: time.Millisecond}

			reply, err := transport.Post(context.Background(), []byte("amount=1.00"))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrResponseTooLarge)
				assert.Nil(t, reply)
			} else {
				require.NoError(t, err)
				assert.Len(t, reply, tt.size)
			}
			assert.Len(t, client.Calls, 1)
		})
	}
}

func TestHTTPTransport_CircuitOpens(t *testing.T) {
	client := mocks.NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return textResponse(http.StatusServiceUnavailable, ""), nil
	})

	transport := NewHTTPTransport(DefaultConfig("https://gateway.test/gw"), client, zap.NewNop())

	for i := 0; i < 5; i++ {
		_, err := transport.Post(context.Background(), nil)
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
	}
	assert.Equal(t, StateOpen, transport.CircuitBreaker().State())

	_, err := transport.Post(context.Background(), nil)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Len(t, client.Calls, 5)
}

func TestHTTPTransport_RateLimitHonorsContext(t *testing.T) {
	client := mocks.NewMockHTTPClient(nil)

	config := DefaultConfig("https://gateway.test/gw")
	config.RateLimit = 0.001
	config.RateBurst = 1
	transport := NewHTTPTransport(config, client, zap.NewNop())

	_, err := transport.Post(context.Background(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = transport.Post(ctx, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait")
	assert.Len(t, client.Calls, 1)
}

func TestHTTPTransport_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	transport := NewHTTPTransportWithDefaults(DefaultConfig(server.URL), zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := transport.Post(ctx, []byte("amount=1.00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StateClosed, transport.CircuitBreaker().State())
	assert.Equal(t, uint32(0), transport.CircuitBreaker().Failures())
}

func TestIsRetryable(t *testing.T) {
	transport := NewHTTPTransport(DefaultConfig("https://gateway.test/gw"), mocks.NewMockHTTPClient(nil), zap.NewNop())

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"dial", dialError(), true},
		{"connection reset after send", errors.New("read: connection reset by peer"), false},
		{"dns", errors.New("lookup gateway.test: no such host"), true},
		{"status", &StatusError{StatusCode: 500}, false},
		{"deadline", context.DeadlineExceeded, false},
		{"other", errors.New("EOF"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transport.isRetryable(tt.err))
		})
	}
}
