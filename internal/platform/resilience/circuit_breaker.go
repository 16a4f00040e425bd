// Package resilience guards outbound calls to remote dependencies.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// StateChangeFunc observes breaker transitions. It runs with the breaker
// lock released.
type StateChangeFunc func(from, to CircuitState)

// CircuitBreaker opens after FailureThreshold consecutive failures. Once
// OpenTimeout has passed it admits up to HalfOpenMaxReq probes; that many
// successes close it and any failure opens it again.
type CircuitBreaker struct {
	cfg      CircuitBreakerConfig
	clock    clockwork.Clock
	onChange StateChangeFunc

	mu        sync.Mutex
	state     CircuitState
	failures  int
	openedAt  time.Time
	probes    int
	successes int
}

func NewCircuitBreaker(cfg CircuitBreakerConfig, clock clockwork.Clock) *CircuitBreaker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CircuitBreaker{
		cfg:   cfg.WithDefaults(),
		clock: clock,
		state: CircuitStateClosed,
	}
}

// OnStateChange registers fn; call it before the breaker is shared.
func (b *CircuitBreaker) OnStateChange(fn StateChangeFunc) {
	b.onChange = fn
}

// Execute runs fn when the breaker admits the call. Only errors for which
// isFailure returns true count against the breaker; a nil isFailure counts
// every error.
func (b *CircuitBreaker) Execute(ctx context.Context, isFailure func(error) bool, fn func(ctx context.Context) error) error {
	if err := b.Allow(); err != nil {
		return err
	}
	err := fn(ctx)
	if err != nil && (isFailure == nil || isFailure(err)) {
		b.RecordFailure()
	} else {
		b.RecordSuccess()
	}
	return err
}

func (b *CircuitBreaker) Allow() error {
	var err error
	b.transition(func() {
		if b.state == CircuitStateOpen {
			if b.cooling() {
				err = ErrCircuitOpen
				return
			}
			b.enter(CircuitStateHalfOpen)
		}
		if b.state != CircuitStateHalfOpen {
			return
		}
		if b.probes >= b.cfg.HalfOpenMaxReq {
			err = ErrCircuitOpen
			return
		}
		b.probes++
	})
	return err
}

func (b *CircuitBreaker) RecordSuccess() {
	b.transition(func() {
		switch b.state {
		case CircuitStateClosed:
			b.failures = 0
		case CircuitStateHalfOpen:
			b.probes = max(b.probes-1, 0)
			b.successes++
			if b.successes >= b.cfg.HalfOpenMaxReq && b.probes == 0 {
				b.enter(CircuitStateClosed)
			}
		}
	})
}

func (b *CircuitBreaker) RecordFailure() {
	b.transition(func() {
		switch b.state {
		case CircuitStateClosed:
			b.failures++
			if b.failures >= b.cfg.FailureThreshold {
				b.enter(CircuitStateOpen)
			}
		case CircuitStateHalfOpen:
			b.enter(CircuitStateOpen)
		case CircuitStateOpen:
			b.openedAt = b.clock.Now()
		}
	})
}

// State reports the effective state; an open breaker whose timeout elapsed
// reads as half-open even before the next Allow.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && !b.cooling() {
		return CircuitStateHalfOpen
	}
	return b.state
}

// transition runs fn under the lock and reports a state change afterwards.
func (b *CircuitBreaker) transition(fn func()) {
	b.mu.Lock()
	from := b.state
	fn()
	to := b.state
	b.mu.Unlock()

	if from != to && b.onChange != nil {
		b.onChange(from, to)
	}
}

func (b *CircuitBreaker) cooling() bool {
	return b.clock.Since(b.openedAt) < b.cfg.OpenTimeout
}

// enter switches state and clears every counter.
func (b *CircuitBreaker) enter(state CircuitState) {
	b.state = state
	b.failures, b.probes, b.successes = 0, 0, 0
	switch state {
	case CircuitStateOpen:
		b.openedAt = b.clock.Now()
	case CircuitStateClosed:
		b.openedAt = time.Time{}
	}
}
