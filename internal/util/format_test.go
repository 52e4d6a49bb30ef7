package util

import (
	"testing"
	"time"
)

func TestFormatTimestampDefaultsLayout(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	if got := FormatTimestamp(ts, ""); got != "2:05:07 PM" {
		t.Fatalf("expected default layout, got %q", got)
	}
	if got := FormatTimestamp(ts, "  "); got != "2:05:07 PM" {
		t.Fatalf("expected default layout for blank input, got %q", got)
	}
	if got := FormatTimestamp(ts, "15:04"); got != "14:05" {
		t.Fatalf("expected custom layout, got %q", got)
	}
	if got := ts.Format(DateLayout); got != "2024-3-9 " {
		t.Fatalf("unexpected date layout output %q", got)
	}
}

func TestFormatRTT(t *testing.T) {
	if got := FormatRTT(42*time.Millisecond + 900*time.Microsecond); got != "42 ms" {
		t.Fatalf("expected truncated ms, got %q", got)
	}
	if got := FormatRTT(-time.Second); got != "0 ms" {
		t.Fatalf("expected negative clamp, got %q", got)
	}
}

func TestFormatLoss(t *testing.T) {
	if got := FormatLoss(20); got != "20.00%" {
		t.Fatalf("expected 20.00%%, got %q", got)
	}
	if got := FormatLoss(100.0 / 3); got != "33.33%" {
		t.Fatalf("expected 33.33%%, got %q", got)
	}
}
