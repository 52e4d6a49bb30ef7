package util

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultTimeLayout is used for hover hints when no layout is configured.
	DefaultTimeLayout = "3:04:05 PM"
	// StampLayout labels minutes on the timeline row.
	StampLayout = "3:04 PM"
	// DateLayout prefixes the first timeline stamp.
	DateLayout = "2006-1-2 "
)

// FormatTimestamp formats t with layout, falling back to DefaultTimeLayout
// when layout is blank.
func FormatTimestamp(t time.Time, layout string) string {
	if strings.TrimSpace(layout) == "" {
		layout = DefaultTimeLayout
	}
	return t.Format(layout)
}

// FormatRTT formats a round-trip time as whole milliseconds.
func FormatRTT(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%d ms", d/time.Millisecond)
}

// FormatLoss formats a packet loss percentage with two decimals.
func FormatLoss(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}
