package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testBreaker(t *testing.T, cfg CircuitBreakerConfig) (*CircuitBreaker, *time.Time) {
	t.Helper()
	b := NewCircuitBreaker(cfg)
	now := time.Date(2026, 4, 3, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	b, _ := testBreaker(t, CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenMaxReq: 1})

	require.NoError(t, b.Allow())

	b.RecordFailure()
	require.Equal(t, CircuitStateClosed, b.State())

	b.RecordFailure()
	require.Equal(t, CircuitStateOpen, b.State())
	require.True(t, errors.Is(b.Allow(), ErrCircuitOpen))
}

func TestCircuitBreaker_HalfOpenProbeCloses(t *testing.T) {
	b, now := testBreaker(t, CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: 5 * time.Second, HalfOpenMaxReq: 1})

	b.RecordFailure()
	require.Equal(t, CircuitStateOpen, b.State())

	*now = now.Add(6 * time.Second)
	require.NoError(t, b.Allow())
	require.Equal(t, CircuitStateHalfOpen, b.State())

	b.RecordSuccess()
	require.Equal(t, CircuitStateClosed, b.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, now := testBreaker(t, CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: 5 * time.Second, HalfOpenMaxReq: 1})

	b.RecordFailure()
	*now = now.Add(6 * time.Second)
	require.NoError(t, b.Allow())

	b.RecordFailure()
	require.Equal(t, CircuitStateOpen, b.State())
	require.True(t, errors.Is(b.Allow(), ErrCircuitOpen))
}

func TestCircuitBreaker_HalfOpenBoundsProbes(t *testing.T) {
	b, now := testBreaker(t, CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: 5 * time.Second, HalfOpenMaxReq: 1})

	b.RecordFailure()
	*now = now.Add(6 * time.Second)

	require.NoError(t, b.Allow())
	require.True(t, errors.Is(b.Allow(), ErrCircuitOpen))
}

func TestNormalizeCircuitBreakerConfig_FillsDefaults(t *testing.T) {
	cfg := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: true})

	require.Equal(t, 5, cfg.FailureThreshold)
	require.Equal(t, 15*time.Second, cfg.OpenTimeout)
	require.Equal(t, 2, cfg.HalfOpenMaxReq)
}
