package graph

import "github.com/olivier-w/pingtrace/internal/samples"

// Point describes what sits under a column of the chart.
type Point uint8

const (
	// PointNoData means the column is outside the data region.
	PointNoData Point = iota
	// PointPending means the slot is reserved but its probe has not completed.
	PointPending
	// PointSample means a sample was found.
	PointSample
)

// PointAt returns the sample drawn in column x of a chart width columns
// wide. Data is right-aligned, so the leftmost width-Displayable columns are
// blank.
func PointAt(s *samples.Store, w Window, width, x int) (samples.Sample, Point) {
	col := x - (width - w.Displayable)
	if w.Empty() || col < 0 || col >= w.Displayable {
		return samples.Sample{}, PointNoData
	}
	idx := w.Index(col)
	if idx < 0 || idx >= s.Capacity() {
		return samples.Sample{}, PointNoData
	}
	sample, ok := s.At(idx)
	if !ok {
		return samples.Sample{}, PointPending
	}
	return sample, PointSample
}
