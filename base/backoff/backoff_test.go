package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponential(t *testing.T) {
	req := require.New(t)
	b := NewExponential(time.Millisecond, 4*time.Millisecond)
	req.Equal(time.Millisecond, b.NextDuration)

	for _, want := range []time.Duration{2 * time.Millisecond, 4 * time.Millisecond, 4 * time.Millisecond} {
		req.NoError(b.Backoff(context.Background()))
		req.Equal(want, b.NextDuration)
	}
	req.Equal(3, b.Count())

	b.Reset()
	req.Equal(0, b.Count())
	req.Equal(time.Millisecond, b.NextDuration)
}

func TestConstant(t *testing.T) {
	req := require.New(t)
	b := NewConstant(time.Millisecond)
	req.NoError(b.Backoff(context.Background()))
	req.Equal(time.Millisecond, b.NextDuration)
	req.Equal(time.Millisecond, b.LastDuration)
}

func TestBackoffCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := NewConstant(time.Hour)
	require.Equal(t, context.Canceled, b.Backoff(ctx))
	require.Equal(t, 0, b.Count())
}

func TestRetry(t *testing.T) {
	req := require.New(t)
	errAgain := errors.New("again")
	errFatal := errors.New("fatal")
	isAgain := func(err error) bool { return err == errAgain }

	calls := 0
	err := Retry(context.Background(), NewConstant(time.Millisecond), 1, isAgain, func() error {
		calls++
		if calls == 1 {
			return errAgain
		}
		return nil
	})
	req.NoError(err)
	req.Equal(2, calls)

	calls = 0
	err = Retry(context.Background(), NewConstant(time.Millisecond), 1, isAgain, func() error {
		calls++
		return errAgain
	})
	req.Equal(errAgain, err)
	req.Equal(2, calls)

	calls = 0
	err = Retry(context.Background(), NewConstant(time.Millisecond), 3, isAgain, func() error {
		calls++
		return errFatal
	})
	req.Equal(errFatal, err)
	req.Equal(1, calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Retry(ctx, NewConstant(time.Hour), 1, isAgain, func() error { return errAgain })
	req.Equal(context.Canceled, err)
}

func TestExponentialOverflowIsCapped(t *testing.T) {
	b := New(Exponential, time.Second, time.Minute)
	b.count = 80
	require.Equal(t, time.Minute, b.next())
}
