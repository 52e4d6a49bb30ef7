package probe

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/olivier-w/pingtrace/internal/metrics"
	"github.com/olivier-w/pingtrace/internal/samples"
)

// RunnerConfig configures a Runner.
type RunnerConfig struct {
	Host     string
	Prober   Prober
	Store    *samples.Store
	Interval time.Duration
	Timeout  time.Duration
	Clock    clockwork.Clock
}

// Runner probes one host on a fixed interval. Each tick reserves the next
// offset in the store with ClearNext and fills it with AppendAt once the
// probe completes, so a slow reply never shifts later samples. The runner is
// the store's only writer.
type Runner struct {
	log *slog.Logger
	cfg RunnerConfig
}

// NewRunner validates cfg and returns a runner.
func NewRunner(log *slog.Logger, cfg RunnerConfig) (*Runner, error) {
	if log == nil {
		return nil, fmt.Errorf("log is nil")
	}
	if cfg.Prober == nil {
		return nil, fmt.Errorf("prober is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("interval must be positive")
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive")
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return &Runner{log: log.With("host", cfg.Host), cfg: cfg}, nil
}

// Store returns the store the runner writes to.
func (r *Runner) Store() *samples.Store {
	return r.cfg.Store
}

// Host returns the display name of the probed host.
func (r *Runner) Host() string {
	return r.cfg.Host
}

// Run probes until ctx is cancelled, then waits for in-flight probes.
func (r *Runner) Run(ctx context.Context) error {
	ticker := r.cfg.Clock.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	r.log.Info("probe runner started", "interval", r.cfg.Interval, "timeout", r.cfg.Timeout)
	r.tick(ctx, &wg)
	for {
		select {
		case <-ctx.Done():
			r.log.Info("probe runner stopped")
			return nil
		case <-ticker.Chan():
			r.tick(ctx, &wg)
		}
	}
}

func (r *Runner) tick(ctx context.Context, wg *sync.WaitGroup) {
	start := r.cfg.Clock.Now()
	offset := r.cfg.Store.ClearNext()

	wg.Add(1)
	go func() {
		defer wg.Done()
		sample := r.probe(ctx, start)
		if ctx.Err() != nil {
			return
		}
		r.cfg.Store.AppendAt(offset, sample)
		r.record(sample, start)
	}()
}

func (r *Runner) probe(ctx context.Context, start time.Time) samples.Sample {
	pctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	rtt, err := r.cfg.Prober.Probe(pctx)
	if err == nil && rtt > r.cfg.Timeout {
		err = ErrNoReply
	}
	status := StatusOf(err)
	if err != nil {
		r.log.Debug("probe failed", "status", status, "error", err)
		rtt = 0
	}
	return samples.Sample{StartTime: start, RTT: rtt, Status: status}
}

func (r *Runner) record(sample samples.Sample, start time.Time) {
	host := r.cfg.Host
	metrics.ProbesTotal.WithLabelValues(host, sample.Status.String()).Inc()
	metrics.ProbeDuration.WithLabelValues(host).Observe(r.cfg.Clock.Since(start).Seconds())
	if sample.OK() {
		metrics.ProbeRTT.WithLabelValues(host).Set(float64(sample.Millis()))
	}
	buffered := min(r.cfg.Store.Cursor()+1, int64(r.cfg.Store.Capacity()))
	metrics.SamplesBuffered.WithLabelValues(host).Set(float64(buffered))
}
