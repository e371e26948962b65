package backoff

import (
	"context"
	"errors"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

var errTransient = errors.New("transient")

func alwaysRetry(error) Action { return Retry }
func alwaysStop(error) Action  { return Stop }

func fastPolicy() Policy {
	return Policy{MaxAttempts: 5, BaseDelay: time.Millisecond, Multiplier: 2}
}

func TestPolicy_Delay(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		attempt int
		want    time.Duration
	}{
		{name: "first wait is base", policy: Default(), attempt: 0, want: time.Second},
		{name: "doubles", policy: Default(), attempt: 1, want: 2 * time.Second},
		{name: "fourth wait", policy: Default(), attempt: 3, want: 8 * time.Second},
		{name: "capped", policy: Policy{BaseDelay: time.Second, Multiplier: 2, MaxDelay: 3 * time.Second}, attempt: 4, want: 3 * time.Second},
		{name: "multiplier below one defaults", policy: Policy{BaseDelay: time.Second}, attempt: 1, want: 2 * time.Second},
		{name: "overflow saturates", policy: Policy{BaseDelay: time.Hour, Multiplier: 10}, attempt: 100, want: time.Duration(1<<63 - 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Delay(tt.attempt))
		})
	}
}

func TestDo_SuccessFirstAttempt(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), alwaysRetry, func(context.Context, func()) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_SucceedsOnThirdAttempt(t *testing.T) {
	var delays []time.Duration
	p := fastPolicy()
	p.OnRetry = func(_ int, _ error, d time.Duration) { delays = append(delays, d) }

	calls := 0
	err := p.Do(context.Background(), alwaysRetry, func(context.Context, func()) error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	require.Len(t, delays, 2)
	assert.LessOrEqual(t, delays[0], delays[1])
}

func TestDo_PermanentErrorStopsImmediately(t *testing.T) {
	permanent := errors.New("bad credentials")
	calls := 0
	err := fastPolicy().Do(context.Background(), alwaysStop, func(context.Context, func()) error {
		calls++
		return permanent
	})

	var permErr *PermanentError
	require.ErrorAs(t, err, &permErr)
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDo_ExhaustedAttempts(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), alwaysRetry, func(context.Context, func()) error {
		calls++
		return errTransient
	})

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 5, exhausted.Attempts)
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 5, calls)
}

func TestDo_ResetRestartsAttemptCount(t *testing.T) {
	p := fastPolicy()
	p.MaxAttempts = 2

	var attempts []int
	p.OnRetry = func(attempt int, _ error, _ time.Duration) { attempts = append(attempts, attempt) }

	calls := 0
	err := p.Do(context.Background(), alwaysRetry, func(_ context.Context, reset func()) error {
		calls++
		if calls < 4 {
			reset()
			return errTransient
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 4, calls)
	assert.Equal(t, []int{1, 1, 1}, attempts)
}

func TestDo_CancelledDuringOperation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := fastPolicy().Do(ctx, alwaysRetry, func(context.Context, func()) error {
		calls++
		cancel()
		return errTransient
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDo_CancelledDuringWait(t *testing.T) {
	fc := clockwork.NewFakeClock()
	p := fastPolicy()
	p.Clock = fc
	p.BaseDelay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- p.Do(ctx, alwaysRetry, func(context.Context, func()) error { return errTransient })
	}()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	require.NoError(t, fc.BlockUntilContext(waitCtx, 1))
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Do did not return after cancel")
	}
}

func TestDo_WaitsOnClock(t *testing.T) {
	fc := clockwork.NewFakeClock()
	p := Default()
	p.Clock = fc

	calls := make(chan int, 5)
	done := make(chan error, 1)
	go func() {
		n := 0
		done <- p.Do(context.Background(), alwaysRetry, func(context.Context, func()) error {
			n++
			calls <- n
			if n < 3 {
				return errTransient
			}
			return nil
		})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.Equal(t, 1, <-calls)
	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(time.Second)

	assert.Equal(t, 2, <-calls)
	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(time.Second)
	select {
	case <-calls:
		t.Fatal("second wait should be two seconds")
	case <-time.After(20 * time.Millisecond):
	}
	fc.Advance(time.Second)

	assert.Equal(t, 3, <-calls)
	require.NoError(t, <-done)
}
