package backoff

import (
	"context"
	"time"
)

// Strategy computes the wait before attempt n+1 from the first wait
type Strategy func(n int, start time.Duration) time.Duration

// Exponential doubles the wait every attempt
func Exponential(n int, start time.Duration) time.Duration {
	return start << uint(n)
}

// Constant always waits start
func Constant(_ int, start time.Duration) time.Duration {
	return start
}

// Backoff tracks waits of one retry loop, it is not safe for concurrent use
type Backoff struct {
	LastDuration time.Duration
	NextDuration time.Duration

	strategy Strategy
	start    time.Duration
	limit    time.Duration
	count    int
}

// New caps every wait at limit, a zero limit means uncapped
func New(strategy Strategy, start, limit time.Duration) *Backoff {
	b := &Backoff{strategy: strategy, start: start, limit: limit}
	b.Reset()
	return b
}

func NewExponential(start, limit time.Duration) *Backoff {
	return New(Exponential, start, limit)
}

func NewConstant(start time.Duration) *Backoff {
	return New(Constant, start, 0)
}

// Count is the number of completed waits since the last Reset
func (b *Backoff) Count() int {
	return b.count
}

func (b *Backoff) Reset() {
	b.count = 0
	b.LastDuration = 0
	b.NextDuration = b.next()
}

func (b *Backoff) next() time.Duration {
	d := b.strategy(b.count, b.start)
	if b.limit > 0 && (d > b.limit || d <= 0) {
		return b.limit
	}
	return d
}

// Backoff sleeps for NextDuration, it returns the context error when ctx is done first
func (b *Backoff) Backoff(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := time.NewTimer(b.NextDuration)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
	}
	b.count++
	b.LastDuration = b.NextDuration
	b.NextDuration = b.next()
	return nil
}

// Retry runs fn until it succeeds, returns an error retryable rejects, or has been retried
// retries times. The last fn error is returned; a done ctx ends the wait with ctx.Err().
func Retry(ctx context.Context, b *Backoff, retries int, retryable func(error) bool, fn func() error) error {
	for {
		err := fn()
		if err == nil || !retryable(err) || b.Count() >= retries {
			return err
		}
		if werr := b.Backoff(ctx); werr != nil {
			return werr
		}
	}
}
