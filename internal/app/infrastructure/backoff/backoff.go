package backoff

import (
	"context"
	"fmt"
	"github.com/jonboulle/clockwork"
	"math"
	"sync/atomic"
	"time"
)

type Action int

const (
	Stop  Action = iota // permanent error, abort immediately
	Retry               // transient error, wait and run again
)

type Classify func(err error) Action

// Operation is one attempt. reset is called by the operation once it has
// reached a healthy state, so later failures start again from the base delay.
type Operation func(ctx context.Context, reset func()) error

const (
	DefaultMaxAttempts = 5
	DefaultBaseDelay   = time.Second
	DefaultMultiplier  = 2.0
)

// Policy retries an operation with exponential backoff. MaxAttempts counts
// every run of the operation, the first one included.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
	MaxDelay    time.Duration

	Clock   clockwork.Clock
	OnRetry func(attempt int, err error, delay time.Duration)
}

func Default() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		Multiplier:  DefaultMultiplier,
	}
}

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.BaseDelay < 0 {
		p.BaseDelay = 0
	}
	if p.Multiplier < 1 {
		p.Multiplier = DefaultMultiplier
	}
	if p.Clock == nil {
		p.Clock = clockwork.NewRealClock()
	}
	return p
}

// Delay is BaseDelay * Multiplier^attempt, capped at MaxDelay when set.
func (p Policy) Delay(attempt int) time.Duration {
	p = p.withDefaults()

	delay := time.Duration(math.MaxInt64)
	if d := float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(attempt)); d < math.MaxInt64 {
		delay = time.Duration(d)
	}
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}

// Do runs op until it succeeds, classify says Stop, the attempts run out or
// ctx is done. Cancellation is returned as ctx.Err() without another attempt.
func (p Policy) Do(ctx context.Context, classify Classify, op Operation) error {
	p = p.withDefaults()

	var failures atomic.Int64
	reset := func() { failures.Store(0) }

	for {
		err := op(ctx, reset)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if classify(err) == Stop {
			return &PermanentError{Err: err}
		}

		attempt := int(failures.Add(1))
		if attempt >= p.MaxAttempts {
			return &ExhaustedError{Attempts: attempt, Err: err}
		}

		delay := p.Delay(attempt - 1)
		if p.OnRetry != nil {
			p.OnRetry(attempt, err, delay)
		}

		select {
		case <-p.Clock.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }
