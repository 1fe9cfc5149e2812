package transport

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errEndpoint = errors.New("endpoint failure")

func newTestBreaker(maxFailures uint32) (*CircuitBreaker, *time.Time, *[]CircuitState) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	var transitions []CircuitState

	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:         maxFailures,
		Timeout:             30 * time.Second,
		MaxRequestsHalfOpen: 1,
		OnStateChange: func(state CircuitState) {
			transitions = append(transitions, state)
		},
	})
	cb.now = func() time.Time { return now }
	return cb, &now, &transitions
}

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	cb, _, transitions := newTestBreaker(3)

	for i := 0; i < 3; i++ {
		err := cb.Call(func() error { return errEndpoint })
		assert.ErrorIs(t, err, errEndpoint)
	}
	assert.Equal(t, StateOpen, cb.State())
	assert.Equal(t, []CircuitState{StateOpen}, *transitions)

	called := false
	err := cb.Call(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb, _, _ := newTestBreaker(3)

	_ = cb.Call(func() error { return errEndpoint })
	_ = cb.Call(func() error { return errEndpoint })
	assert.Equal(t, uint32(2), cb.Failures())

	require.NoError(t, cb.Call(func() error { return nil }))
	assert.Equal(t, uint32(0), cb.Failures())
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb, now, transitions := newTestBreaker(1)

	_ = cb.Call(func() error { return errEndpoint })
	require.Equal(t, StateOpen, cb.State())

	*now = now.Add(31 * time.Second)
	require.NoError(t, cb.Call(func() error { return nil }))

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, []CircuitState{StateOpen, StateHalfOpen, StateClosed}, *transitions)
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb, now, _ := newTestBreaker(1)

	_ = cb.Call(func() error { return errEndpoint })
	*now = now.Add(31 * time.Second)

	err := cb.Call(func() error { return errEndpoint })
	assert.ErrorIs(t, err, errEndpoint)
	assert.Equal(t, StateOpen, cb.State())

	err = cb.Call(func() error { return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestCircuitBreaker_HalfOpenProbeBudget(t *testing.T) {
	cb, now, _ := newTestBreaker(1)

	_ = cb.Call(func() error { return errEndpoint })
	*now = now.Add(31 * time.Second)

	err := cb.Call(func() error {
		// a second caller arrives while the probe is in flight
		inner := cb.Call(func() error { return nil })
		assert.ErrorIs(t, inner, ErrTooManyRequests)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_ContextErrorsNotCounted(t *testing.T) {
	cb, _, _ := newTestBreaker(1)

	err := cb.Call(func() error { return fmt.Errorf("send: %w", context.DeadlineExceeded) })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	err = cb.Call(func() error { return context.Canceled })
	assert.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(0), cb.Failures())
}

func TestCircuitState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", CircuitState(9).String())
}
