package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// BindFlags registers a flag for every setting, defaulting to the values in s.
func BindFlags(fs *pflag.FlagSet, s *Settings) {
	fs.IntVar(&s.Capacity, "capacity", s.Capacity, "number of samples kept per host")
	fs.DurationVar(&s.Interval, "interval", s.Interval, "time between probes")
	fs.DurationVar(&s.Timeout, "timeout", s.Timeout, "probe timeout")
	fs.BoolVar(&s.DelayMostRecentPing, "delay-most-recent", s.DelayMostRecentPing, "hide the newest sample until its probe completes")
	fs.IntVar(&s.ThresholdBad, "threshold-bad", s.ThresholdBad, "latency in ms drawn as bad")
	fs.IntVar(&s.ThresholdWorse, "threshold-worse", s.ThresholdWorse, "latency in ms drawn as worse")
	fs.BoolVar(&s.ShowLastPing, "show-last", s.ShowLastPing, "show the last latency")
	fs.BoolVar(&s.ShowAverage, "show-average", s.ShowAverage, "show the average latency")
	fs.BoolVar(&s.ShowJitter, "show-jitter", s.ShowJitter, "show jitter (max - min)")
	fs.BoolVar(&s.ShowMinMax, "show-min-max", s.ShowMinMax, "show min and max latency")
	fs.BoolVar(&s.ShowPacketLoss, "show-loss", s.ShowPacketLoss, "show packet loss")
	fs.BoolVar(&s.ShowTimestamps, "timestamps", s.ShowTimestamps, "show the timeline row")
	fs.BoolVar(&s.ShowDateOnTimeline, "show-date", s.ShowDateOnTimeline, "prefix the timeline with the date")
	fs.BoolVar(&s.WarnGraphNotLive, "warn-not-live", s.WarnGraphNotLive, "warn when the graph is scrolled back")
	fs.BoolVar(&s.AlwaysShowServerNames, "show-names", s.AlwaysShowServerNames, "always show host names")
	fs.StringVar(&s.TimeFormat, "time-format", s.TimeFormat, "Go time layout for hover hints")
	fs.StringVar(&s.Probe, "probe", s.Probe, "probe type: icmp or tcp")
	fs.IntVar(&s.TCPPort, "tcp-port", s.TCPPort, "port for tcp probes")
	fs.BoolVar(&s.Privileged, "privileged", s.Privileged, "use raw sockets for icmp probes")
	fs.StringVar(&s.MetricsAddr, "metrics-addr", s.MetricsAddr, "address to serve prometheus metrics on (disabled when empty)")
}

// Overlay replays every flag the user set explicitly in fs onto dst, so
// command-line flags win over a config file. Flags not registered by
// BindFlags are ignored.
func Overlay(fs *pflag.FlagSet, dst *Settings) error {
	target := pflag.NewFlagSet("overlay", pflag.ContinueOnError)
	BindFlags(target, dst)

	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil || target.Lookup(f.Name) == nil {
			return
		}
		if setErr := target.Set(f.Name, f.Value.String()); setErr != nil {
			err = fmt.Errorf("flag --%s: %w", f.Name, setErr)
		}
	})
	return err
}
