package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olivier-w/pingtrace/internal/chart"
	"github.com/olivier-w/pingtrace/internal/config"
	"github.com/olivier-w/pingtrace/internal/graph"
	"github.com/olivier-w/pingtrace/internal/samples"
	"github.com/olivier-w/pingtrace/internal/util"
)

// chartColumns converts the visible samples into drawable columns. Heights
// are in rows; the scale works in sub-rows.
func chartColumns(s *samples.Store, w graph.Window, sc graph.Scale, bad, worse int) []chart.Column {
	cols := make([]chart.Column, w.Displayable)
	for i := 0; i < w.Displayable; i++ {
		sample, ok := s.At(w.Index(i))
		switch {
		case !ok:
			cols[i] = chart.Column{Kind: chart.KindEmpty}
		case !sample.OK():
			cols[i] = chart.Column{Kind: chart.KindFailure}
		default:
			ms := sample.Millis()
			kind := chart.KindGood
			switch graph.Classify(ms, bad, worse) {
			case graph.LevelBad:
				kind = chart.KindBad
			case graph.LevelWorse:
				kind = chart.KindWorse
			}
			cols[i] = chart.Column{Kind: kind, Height: float64(sc.Y(ms)) / chart.SubRows}
		}
	}
	return cols
}

// statusText builds the line above a chart: live warning, loss, the
// bracketed readouts and the host name or hover hint.
func statusText(cfg config.Settings, vp graph.Viewport, st graph.Stats, name, hint string) string {
	var b strings.Builder
	if cfg.WarnGraphNotLive {
		b.WriteString(vp.NotLiveLabel())
	}
	if cfg.ShowPacketLoss {
		b.WriteString(util.FormatLoss(st.Loss))
		b.WriteString(" ")
	}

	var vals []string
	if cfg.ShowLastPing {
		vals = append(vals, strconv.Itoa(st.Last))
	}
	if cfg.ShowAverage {
		vals = append(vals, strconv.Itoa(st.Average))
	}
	if cfg.ShowJitter {
		vals = append(vals, strconv.Itoa(st.Jitter()))
	}
	if cfg.ShowMinMax {
		vals = append(vals, strconv.Itoa(st.Min), strconv.Itoa(st.Max))
	}
	if len(vals) > 0 {
		b.WriteString("[" + strings.Join(vals, ",") + "] ")
	}

	if hint != "" {
		if name != "" {
			b.WriteString(name + " ")
		}
		b.WriteString(hint + " ")
	} else if cfg.AlwaysShowServerNames && name != "" {
		b.WriteString(name + " ")
	}
	return strings.TrimRight(b.String(), " ")
}

// hintText describes the sample under the mouse. mouseMs is the latency at
// the pointer's height.
func hintText(sample samples.Sample, p graph.Point, layout string, mouseMs int) string {
	suffix := fmt.Sprintf(", Mouse ms: %d", mouseMs)
	switch p {
	case graph.PointNoData:
		return "No Data Yet" + suffix
	case graph.PointPending:
		return "Waiting for response" + suffix
	}
	ts := util.FormatTimestamp(sample.StartTime, layout)
	if !sample.OK() {
		return ts + ": " + sample.Status.String() + suffix
	}
	return ts + ": " + util.FormatRTT(sample.RTT) + suffix
}

// overlayText is the notice written over the start of the timeline row.
func overlayText(w graph.Window, vp graph.Viewport) string {
	if w.Empty() && w.HasData() {
		return fmt.Sprintf("The graph begins %d lines to the right. ", w.Lead)
	}
	if vp.JustWentLive() {
		return "The graph is now displaying live data. "
	}
	return ""
}

// timelineText labels each minute boundary under the chart. A tick mark is
// drawn when the sample was taken within two seconds of the minute. The
// first label may be prefixed with the date.
func timelineText(s *samples.Store, w graph.Window, width int, showDate bool, overlay string) string {
	if width <= 0 {
		return ""
	}
	line := []rune(strings.Repeat(" ", width))
	put := func(x int, text string) {
		for _, r := range text {
			if x >= 0 && x < width {
				line[x] = r
			}
			x++
		}
	}

	lead := width - w.Displayable
	lastMinute := -1
	prefix := ""
	for i := 0; i < w.Displayable; i++ {
		sample, ok := s.At(w.Index(i))
		if !ok {
			continue
		}
		minute := sample.StartTime.Minute()
		if lastMinute != -1 && minute == lastMinute {
			continue
		}
		if showDate && lastMinute == -1 {
			prefix = sample.StartTime.Format(util.DateLayout)
		}
		x := lead + i
		if sample.StartTime.Second() < 2 {
			put(x, "╵")
		}
		put(x+1, sample.StartTime.Format(util.StampLayout))
		lastMinute = minute
	}

	put(0, prefix+overlay)
	return string(line)
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat(" ", n)
}
