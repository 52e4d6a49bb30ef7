package graph

import "math"

// Scale compresses latencies into the drawable height.
type Scale struct {
	Factor    float64
	BadLine   int
	WorseLine int
}

// ResolveScale picks a factor that keeps max on screen. Compression saturates
// at 1.5x the worse threshold so a single outlier cannot flatten the rest of
// the chart.
func ResolveScale(max, height, bad, worse int) Scale {
	factor := 1.0
	if max > height {
		forScaling := math.Max(math.Min(float64(max)*1.1, float64(worse)*1.5), float64(height))
		if forScaling > 0 {
			factor = float64(height) / forScaling
		}
	}
	return ScaleFor(factor, bad, worse)
}

// ScaleFor builds a Scale from an explicit factor, placing the threshold
// lines accordingly.
func ScaleFor(factor float64, bad, worse int) Scale {
	return Scale{
		Factor:    factor,
		BadLine:   int(math.Round(factor * float64(bad))),
		WorseLine: int(math.Round(factor * float64(worse))),
	}
}

// Y converts a latency to a height in rows.
func (sc Scale) Y(ms int) int {
	return int(float64(ms) * sc.Factor)
}

// Value converts a height in rows back to milliseconds.
func (sc Scale) Value(rows int) int {
	if sc.Factor == 0 {
		return 0
	}
	return int(float64(rows) / sc.Factor)
}

// Level classifies a successful round trip against the alert thresholds.
type Level uint8

const (
	LevelGood Level = iota
	LevelBad
	LevelWorse
)

// Classify returns the level for a latency of ms.
func Classify(ms, bad, worse int) Level {
	switch {
	case ms < bad:
		return LevelGood
	case ms < worse:
		return LevelBad
	default:
		return LevelWorse
	}
}
