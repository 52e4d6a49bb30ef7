package probe

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/olivier-w/pingtrace/internal/samples"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *samples.Store {
	t.Helper()
	s, err := samples.New(16)
	require.NoError(t, err)
	return s
}

func TestProbe_NewRunner_validation(t *testing.T) {
	t.Parallel()

	log := newTestLogger()
	store := newTestStore(t)
	prober := ProberFunc(func(context.Context) (time.Duration, error) { return 0, nil })
	valid := RunnerConfig{Host: "h", Prober: prober, Store: store, Interval: time.Second, Timeout: time.Second}

	_, err := NewRunner(nil, valid)
	require.Error(t, err)

	cfg := valid
	cfg.Prober = nil
	_, err = NewRunner(log, cfg)
	require.Error(t, err)

	cfg = valid
	cfg.Store = nil
	_, err = NewRunner(log, cfg)
	require.Error(t, err)

	cfg = valid
	cfg.Interval = 0
	_, err = NewRunner(log, cfg)
	require.Error(t, err)

	cfg = valid
	cfg.Timeout = -time.Second
	_, err = NewRunner(log, cfg)
	require.Error(t, err)

	r, err := NewRunner(log, valid)
	require.NoError(t, err)
	require.NotNil(t, r.cfg.Clock)
	require.Equal(t, "h", r.Host())
	require.Same(t, store, r.Store())
}

func TestProbe_Runner_writesOneSamplePerTick(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	store := newTestStore(t)
	var calls atomic.Int32
	prober := ProberFunc(func(context.Context) (time.Duration, error) {
		n := calls.Add(1)
		if n == 2 {
			return 0, ErrNoReply
		}
		return time.Duration(n) * time.Millisecond, nil
	})

	r, err := NewRunner(newTestLogger(), RunnerConfig{
		Host: "runner-ticks", Prober: prober, Store: store,
		Interval: time.Second, Timeout: 500 * time.Millisecond, Clock: clock,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	present := func(off int64) func() bool {
		return func() bool {
			_, ok := store.Get(off)
			return ok
		}
	}
	require.Eventually(t, present(0), time.Second, 5*time.Millisecond)
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	clock.Advance(time.Second)
	require.Eventually(t, present(1), time.Second, 5*time.Millisecond)
	clock.Advance(time.Second)
	require.Eventually(t, present(2), time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	s0, _ := store.Get(0)
	require.True(t, s0.OK())
	require.Equal(t, 1, s0.Millis())
	require.Equal(t, clock.Now().Add(-2*time.Second), s0.StartTime)

	s1, _ := store.Get(1)
	require.Equal(t, samples.StatusTimeout, s1.Status)
	require.Zero(t, s1.RTT)

	s2, _ := store.Get(2)
	require.Equal(t, 3, s2.Millis())
	require.Equal(t, int64(2), store.Cursor())
}

func TestProbe_Runner_slowProbeKeepsItsOffset(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	store := newTestStore(t)
	release := make(chan struct{})
	var calls atomic.Int32
	prober := ProberFunc(func(ctx context.Context) (time.Duration, error) {
		if calls.Add(1) == 1 {
			<-release
			return 40 * time.Millisecond, nil
		}
		return 5 * time.Millisecond, nil
	})

	r, err := NewRunner(newTestLogger(), RunnerConfig{
		Host: "runner-slow", Prober: prober, Store: store,
		Interval: time.Second, Timeout: time.Minute, Clock: clock,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Second)
	require.Eventually(t, func() bool {
		_, ok := store.Get(1)
		return ok
	}, time.Second, 5*time.Millisecond)

	// Offset 0 is reserved but still empty.
	require.Equal(t, int64(1), store.Cursor())
	_, ok := store.Get(0)
	require.False(t, ok)

	close(release)
	require.Eventually(t, func() bool {
		_, ok := store.Get(0)
		return ok
	}, time.Second, 5*time.Millisecond)
	s0, _ := store.Get(0)
	require.Equal(t, 40, s0.Millis())
	s1, _ := store.Get(1)
	require.Equal(t, 5, s1.Millis())

	cancel()
	require.NoError(t, <-done)
}

func TestProbe_Runner_rttBeyondTimeoutIsTimeout(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	store := newTestStore(t)
	prober := ProberFunc(func(context.Context) (time.Duration, error) {
		return 2 * time.Second, nil
	})
	r, err := NewRunner(newTestLogger(), RunnerConfig{
		Host: "runner-late", Prober: prober, Store: store,
		Interval: time.Second, Timeout: time.Second, Clock: clock,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool {
		_, ok := store.Get(0)
		return ok
	}, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	s0, _ := store.Get(0)
	require.Equal(t, samples.StatusTimeout, s0.Status)
}

func TestProbe_Runner_cancelDropsInflight(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	prober := ProberFunc(func(ctx context.Context) (time.Duration, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	r, err := NewRunner(newTestLogger(), RunnerConfig{
		Host: "runner-cancel", Prober: prober, Store: store,
		Interval: time.Hour, Timeout: time.Hour, Clock: clockwork.NewFakeClock(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return store.Cursor() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	require.Zero(t, store.Count())
}
