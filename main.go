package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"
	"github.com/olivier-w/pingtrace/internal/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	logFile    string
	verbose    bool
	settings   config.Settings
}

func newRootCmd() *cobra.Command {
	opts := &options{settings: config.Default()}
	cmd := &cobra.Command{
		Use:           "pingtrace [flags] HOST...",
		Short:         "Chart round-trip latency to one or more hosts",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := resolveSettings(cmd.Flags(), opts.configPath, opts.settings)
			if err != nil {
				return err
			}
			log, closeLog, err := newLogger(opts.logFile, opts.verbose)
			if err != nil {
				return err
			}
			defer closeLog()
			return run(cmd.Context(), log, settings, args)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&opts.configPath, "config", "c", "", "YAML settings file; flags override it")
	fs.StringVar(&opts.logFile, "log-file", "", "append logs to this file (logs are discarded when empty)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")
	config.BindFlags(fs, &opts.settings)
	return cmd
}

// resolveSettings layers explicitly set flags over the config file, if any.
func resolveSettings(fs *pflag.FlagSet, path string, flagged config.Settings) (config.Settings, error) {
	settings := flagged
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Settings{}, err
		}
		if err := config.Overlay(fs, &loaded); err != nil {
			return config.Settings{}, err
		}
		settings = loaded
	}
	if err := settings.Validate(); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

// newLogger writes to path because the terminal belongs to the chart.
func newLogger(path string, verbose bool) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newFileLogger(f, verbose), func() { _ = f.Close() }, nil
}

func newFileLogger(w io.Writer, verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}))
}

func run(ctx context.Context, log *slog.Logger, settings config.Settings, hosts []string) error {
	ctx, cancel := context.WithCancel(ctx)

	if settings.MetricsAddr != "" {
		srv := serveMetrics(log, settings.MetricsAddr)
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	group := newRunnerGroup(log)
	defer group.Wait()
	defer cancel()

	open := func(status chan<- string) (tea.Model, error) {
		return openGraphs(ctx, log, settings, hosts, nil, group, status)
	}
	program := tea.NewProgram(newStartupModel(hosts, open), tea.WithAltScreen(), tea.WithMouseAllMotion())
	final, err := program.Run()
	if err != nil {
		return err
	}
	if startup, ok := final.(startupModel); ok && startup.err != nil {
		return startup.err
	}
	return nil
}

func serveMetrics(log *slog.Logger, addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", "error", err)
		}
	}()
	return srv
}
