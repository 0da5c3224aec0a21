package lifecycle

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type counter struct {
	steps    atomic.Int32
	released atomic.Int32
	limit    int32
	fail     error
	panics   bool
}

func (*counter) String() string { return "COUNTER" }

func (c *counter) Step(stop <-chan struct{}) error {
	select {
	case <-stop:
		return ErrStop
	default:
	}
	if c.panics {
		panic("boom")
	}
	if n := c.steps.Add(1); c.limit > 0 && n >= c.limit {
		if c.fail != nil {
			return c.fail
		}
		return ErrStop
	}
	time.Sleep(time.Millisecond)
	return nil
}

func (c *counter) Release() { c.released.Add(1) }

func waitDone(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("runner did not finish")
	}
}

func TestRunnerStart(t *testing.T) {
	t.Parallel()

	w := &counter{}
	r := NewRunner(w)
	require.NoError(t, r.Start(func(*counter) error { return nil }))
	require.ErrorIs(t, r.Start(func(*counter) error { return nil }), ErrStartedAlready)

	r.Close()
	waitDone(t, r.Done())
	require.Equal(t, int32(1), w.released.Load())
}

func TestRunnerOpenError(t *testing.T) {
	t.Parallel()

	w := &counter{}
	r := NewRunner(w)
	errOpen := errors.New("open")
	require.ErrorIs(t, r.Start(func(*counter) error { return errOpen }), errOpen)
	waitDone(t, r.Done())
	require.Zero(t, w.steps.Load())
	require.Equal(t, int32(1), w.released.Load())

	r.Close()
	require.Equal(t, int32(1), w.released.Load())
}

func TestRunnerStops(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		w    *counter
	}{
		{name: "stop", w: &counter{limit: 3}},
		{name: "error", w: &counter{limit: 3, fail: errors.New("step")}},
		{name: "panic", w: &counter{panics: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewRunner(tt.w)
			require.NoError(t, r.Start(func(*counter) error { return nil }))
			waitDone(t, r.Done())
			require.Equal(t, int32(1), tt.w.released.Load())

			r.Close()
			require.Equal(t, int32(1), tt.w.released.Load())
		})
	}
}

func TestRunnerCloseBeforeStart(t *testing.T) {
	t.Parallel()

	w := &counter{}
	r := NewRunner(w)
	r.Close()
	waitDone(t, r.Done())
	require.Equal(t, int32(1), w.released.Load())
	require.ErrorIs(t, r.Start(func(*counter) error { return nil }), ErrClosed)
	require.Zero(t, w.steps.Load())
}

func TestRunnerCloseTwice(t *testing.T) {
	t.Parallel()

	w := &counter{}
	r := NewRunner(w)
	require.NoError(t, r.Start(func(*counter) error { return nil }))
	r.Close()
	r.Close()
	require.Equal(t, int32(1), w.released.Load())
}
