package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/kevin07696/netbilling-gateway/internal/adapters/ports"
)

// MockSecretManager is an in-memory SecretManagerAdapter for tests
type MockSecretManager struct {
	mu      sync.Mutex
	secrets map[string]string
	Err     error
	Calls   []string
}

// NewMockSecretManager creates a mock holding the given path -> value pairs
func NewMockSecretManager(secrets map[string]string) *MockSecretManager {
	m := &MockSecretManager{secrets: make(map[string]string, len(secrets))}
	for k, v := range secrets {
		m.secrets[k] = v
	}
	return m
}

// GetSecret returns the stored value, Err if set, or a not-found error
func (m *MockSecretManager) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, path)
	if m.Err != nil {
		return nil, m.Err
	}
	value, ok := m.secrets[path]
	if !ok {
		return nil, fmt.Errorf("secret not found: %s", path)
	}
	return &ports.Secret{Value: value, Version: "mock"}, nil
}
