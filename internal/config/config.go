// Package config holds the user-tunable settings for pingtrace.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSettings wraps every validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

const (
	ProbeICMP = "icmp"
	ProbeTCP  = "tcp"
)

// Settings configures probing and the chart.
type Settings struct {
	Capacity            int           `yaml:"capacity"`
	Interval            time.Duration `yaml:"interval"`
	Timeout             time.Duration `yaml:"timeout"`
	DelayMostRecentPing bool          `yaml:"delay_most_recent_ping"`

	ThresholdBad   int `yaml:"threshold_bad"`
	ThresholdWorse int `yaml:"threshold_worse"`

	ShowLastPing          bool   `yaml:"show_last_ping"`
	ShowAverage           bool   `yaml:"show_average"`
	ShowJitter            bool   `yaml:"show_jitter"`
	ShowMinMax            bool   `yaml:"show_min_max"`
	ShowPacketLoss        bool   `yaml:"show_packet_loss"`
	ShowTimestamps        bool   `yaml:"show_timestamps"`
	ShowDateOnTimeline    bool   `yaml:"show_date_on_timeline"`
	WarnGraphNotLive      bool   `yaml:"warn_graph_not_live"`
	AlwaysShowServerNames bool   `yaml:"always_show_server_names"`
	TimeFormat            string `yaml:"time_format"`

	Probe      string `yaml:"probe"`
	TCPPort    int    `yaml:"tcp_port"`
	Privileged bool   `yaml:"privileged"`

	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		Capacity:            100000,
		Interval:            time.Second,
		Timeout:             time.Second,
		DelayMostRecentPing: true,
		ThresholdBad:        100,
		ThresholdWorse:      100,
		ShowTimestamps:      true,
		WarnGraphNotLive:    true,
		Probe:               ProbeICMP,
		TCPPort:             443,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	return s, nil
}

// Validate reports the first setting that cannot be used.
func (s Settings) Validate() error {
	switch {
	case s.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidSettings, s.Capacity)
	case s.Interval <= 0:
		return fmt.Errorf("%w: interval must be positive, got %v", ErrInvalidSettings, s.Interval)
	case s.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive, got %v", ErrInvalidSettings, s.Timeout)
	case s.ThresholdBad < 0 || s.ThresholdWorse < 0:
		return fmt.Errorf("%w: thresholds must not be negative", ErrInvalidSettings)
	case s.Probe != ProbeICMP && s.Probe != ProbeTCP:
		return fmt.Errorf("%w: unknown probe %q", ErrInvalidSettings, s.Probe)
	case s.Probe == ProbeTCP && (s.TCPPort <= 0 || s.TCPPort > 65535):
		return fmt.Errorf("%w: tcp port out of range: %d", ErrInvalidSettings, s.TCPPort)
	}
	return nil
}
