package executor

import (
	"sync"
	"time"
)

// circuitState is the breaker's own two-state flag, kept as a string to match the
// teacher's bridge-sdk/circuit_breaker.go representation.
type circuitState string

const (
	circuitClosed circuitState = "closed"
	circuitOpen   circuitState = "open"
)

// CircuitBreaker trips after FailureThreshold consecutive transport
// failures (per destination chain/transport) and refuses further attempts
// until ResetTimeout has elapsed, ported from the teacher's
// bridge-sdk/circuit_breaker.go.
type CircuitBreaker struct {
	Name             string
	FailureThreshold int
	ResetTimeout     time.Duration

	mutex        sync.RWMutex
	state        circuitState
	failureCount int
	nextAttempt  *time.Time
}

// NewCircuitBreaker returns a closed breaker for name.
func NewCircuitBreaker(name string, failureThreshold int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		Name:             name,
		FailureThreshold: failureThreshold,
		ResetTimeout:     resetTimeout,
		state:            circuitClosed,
	}
}

// RecordFailure registers a transport failure, tripping the breaker open
// once FailureThreshold is reached.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	cb.failureCount++
	if cb.failureCount >= cb.FailureThreshold {
		cb.state = circuitOpen
		next := time.Now().Add(cb.ResetTimeout)
		cb.nextAttempt = &next
	}
}

// RecordSuccess resets the breaker to closed.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	cb.failureCount = 0
	cb.state = circuitClosed
	cb.nextAttempt = nil
}

// CanExecute reports whether a StepForward attempt should be allowed
// through: always true when closed, true again once ResetTimeout has
// elapsed since tripping.
func (cb *CircuitBreaker) CanExecute() bool {
	cb.mutex.RLock()
	defer cb.mutex.RUnlock()

	if cb.state == circuitClosed {
		return true
	}
	return cb.nextAttempt != nil && time.Now().After(*cb.nextAttempt)
}

// State reports the breaker's current state as a string for logging/metrics.
func (cb *CircuitBreaker) State() string {
	cb.mutex.RLock()
	defer cb.mutex.RUnlock()
	return string(cb.state)
}
