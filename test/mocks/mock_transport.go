package mocks

import (
	"context"
	"sync"
)

// TransportCall records one Post invocation
type TransportCall struct {
	Ctx  context.Context
	Body []byte
}

// MockTransport is a mock implementation of ports.Transport for testing
type MockTransport struct {
	mu       sync.Mutex
	PostFunc func(ctx context.Context, body []byte) ([]byte, error)
	Calls    []TransportCall
}

// NewMockTransport returns a transport that always answers with reply
func NewMockTransport(reply string) *MockTransport {
	return &MockTransport{
		PostFunc: func(ctx context.Context, body []byte) ([]byte, error) {
			return []byte(reply), nil
		},
	}
}

// NewFailingMockTransport returns a transport whose every Post fails with err
func NewFailingMockTransport(err error) *MockTransport {
	return &MockTransport{
		PostFunc: func(ctx context.Context, body []byte) ([]byte, error) {
			return nil, err
		},
	}
}

// Post captures the call and delegates to PostFunc
func (m *MockTransport) Post(ctx context.Context, body []byte) ([]byte, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, TransportCall{Ctx: ctx, Body: append([]byte(nil), body...)})
	m.mu.Unlock()

	if m.PostFunc != nil {
		return m.PostFunc(ctx, body)
	}
	return []byte("status_code=1&trans_id=MOCK000001"), nil
}

// LastBody returns the body of the most recent call, or nil
func (m *MockTransport) LastBody() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return nil
	}
	return m.Calls[len(m.Calls)-1].Body
}

// CallCount returns the number of Post calls
func (m *MockTransport) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
