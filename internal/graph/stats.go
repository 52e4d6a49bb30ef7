package graph

import "github.com/olivier-w/pingtrace/internal/samples"

// Stats summarizes the successful round trips in a window, in milliseconds.
// Min and Max are zero when the window has no successful sample.
type Stats struct {
	Count        int
	SuccessCount int
	Sum          int
	Min          int
	Max          int
	Last         int
	Average      int
	Loss         float64
}

// Jitter is the spread between the fastest and slowest reply.
func (st Stats) Jitter() int {
	d := st.Max - st.Min
	if d < 0 {
		return -d
	}
	return d
}

// Aggregate scans the window once. Empty slots are skipped but still count
// toward the loss denominator, which is the full window width.
func Aggregate(s *samples.Store, w Window) Stats {
	st := Stats{Count: w.Displayable}
	first := true
	for i := 0; i < w.Displayable; i++ {
		sample, ok := s.At(w.Index(i))
		if !ok || !sample.OK() {
			continue
		}
		v := sample.Millis()
		st.SuccessCount++
		st.Sum += v
		st.Last = v
		if first || v < st.Min {
			st.Min = v
		}
		if first || v > st.Max {
			st.Max = v
		}
		first = false
	}
	if st.Count > 0 {
		st.Loss = float64(st.Count-st.SuccessCount) / float64(st.Count) * 100
	}
	if st.SuccessCount > 0 {
		st.Average = st.Sum / st.SuccessCount
	}
	return st
}
