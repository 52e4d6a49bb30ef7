package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/pingtrace/internal/config"
	"github.com/olivier-w/pingtrace/internal/probe"
	"github.com/olivier-w/pingtrace/internal/samples"
	"github.com/olivier-w/pingtrace/internal/ui"
)

var errGroupClosed = errors.New("runner group closed")

// runnerGroup owns the probe goroutines so run can wait for them after the
// TUI exits. Once Wait is called no further runner starts.
type runnerGroup struct {
	log    *slog.Logger
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func newRunnerGroup(log *slog.Logger) *runnerGroup {
	return &runnerGroup{log: log}
}

func (g *runnerGroup) start(ctx context.Context, r *probe.Runner) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return errGroupClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		if err := r.Run(ctx); err != nil {
			g.log.Error("probe runner failed", "host", r.Host(), "error", err)
		}
	}()
	return nil
}

func (g *runnerGroup) Wait() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
	g.wg.Wait()
}

// openGraphs resolves every host, creates its store and prober, and starts
// probing. Nothing is started unless every host resolves. Each host name is
// sent on status before it is resolved.
func openGraphs(ctx context.Context, log *slog.Logger, settings config.Settings, hosts []string, lookup probe.Lookuper, group *runnerGroup, status chan<- string) (tea.Model, error) {
	runners := make([]*probe.Runner, 0, len(hosts))
	graphs := make([]ui.Graph, 0, len(hosts))
	for _, host := range hosts {
		select {
		case status <- host:
		default:
		}

		addr, err := probe.Resolve(ctx, log, lookup, host)
		if err != nil {
			return nil, err
		}
		prober, err := newProber(settings, addr)
		if err != nil {
			return nil, err
		}
		store, err := samples.New(settings.Capacity)
		if err != nil {
			return nil, err
		}
		r, err := probe.NewRunner(log, probe.RunnerConfig{
			Host:     host,
			Prober:   prober,
			Store:    store,
			Interval: settings.Interval,
			Timeout:  settings.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", host, err)
		}
		log.Info("resolved host", "host", host, "addr", addr, "probe", settings.Probe)
		runners = append(runners, r)
		graphs = append(graphs, ui.Graph{Name: host, Store: store})
	}

	for _, r := range runners {
		if err := group.start(ctx, r); err != nil {
			return nil, err
		}
	}
	return ui.New(graphs, settings, nil), nil
}

func newProber(settings config.Settings, addr string) (probe.Prober, error) {
	switch settings.Probe {
	case config.ProbeICMP:
		return probe.NewICMPProber(addr, settings.Privileged), nil
	case config.ProbeTCP:
		return probe.NewTCPProber(addr, settings.TCPPort), nil
	default:
		return nil, fmt.Errorf("unknown probe %q", settings.Probe)
	}
}
