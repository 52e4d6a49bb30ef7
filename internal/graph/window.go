// Package graph turns a sample store into what a strip chart needs: the
// visible window, statistics over it, and a vertical scale.
package graph

import "github.com/olivier-w/pingtrace/internal/samples"

// Window is the circular range of slots visible in a viewport.
type Window struct {
	// Start is the slot index of the leftmost visible sample.
	Start int
	// Displayable is the number of visible samples, never negative.
	Displayable int
	// Buffered is the number of samples available up to the scroll position,
	// clamped to capacity. It goes negative when scrolled past the oldest data.
	Buffered int
	// Lead is how many columns to the right the data begins when the window
	// is scrolled before the first sample.
	Lead int
	// Cursor is the store cursor the window was resolved against.
	Cursor int64

	capacity int
}

// Resolve computes the window for a viewport width columns wide, scrolled
// scroll samples back from the live edge. With delayMostRecent the newest
// offset is held back so a slot reserved for an in-flight probe is not drawn.
//
// The cursor is read once; the window is a snapshot and may lag the writer.
func Resolve(s *samples.Store, width, scroll int, delayMostRecent bool) Window {
	capacity := int64(s.Capacity())
	w := Window{Cursor: s.Cursor(), capacity: int(capacity)}
	if w.Cursor == -1 {
		return w
	}
	if width < 0 {
		width = 0
	}
	if scroll < 0 {
		scroll = 0
	}

	countOffset := int64(-scroll)
	if !delayMostRecent {
		countOffset++
	}
	buffered := min(w.Cursor+countOffset, capacity)
	displayable := min(buffered, int64(width))

	w.Buffered = int(buffered)
	w.Start = int(samples.FloorMod(w.Cursor+countOffset-displayable, capacity))
	if displayable > 0 {
		w.Displayable = int(displayable)
	} else {
		w.Lead = int(-displayable)
	}
	return w
}

// Index returns the slot index of the i-th visible column.
func (w Window) Index(i int) int {
	if w.capacity == 0 {
		return 0
	}
	return int(samples.FloorMod(int64(w.Start+i), int64(w.capacity)))
}

// Empty reports whether there is nothing to draw.
func (w Window) Empty() bool {
	return w.Displayable == 0
}

// HasData reports whether the store had been written to when the window was
// resolved.
func (w Window) HasData() bool {
	return w.Cursor != -1
}
