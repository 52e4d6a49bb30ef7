package graph

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// liveBannerDuration is how long JustWentLive stays true.
const liveBannerDuration = time.Second

// Viewport is the scroll position shared by every chart, plus the instant
// it last returned to the live edge.
type Viewport struct {
	clock  clockwork.Clock
	scroll int
	liveAt time.Time
}

// NewViewport returns a viewport tracking the live edge.
func NewViewport(clock clockwork.Clock) Viewport {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return Viewport{clock: clock}
}

// Scroll is the distance in samples from the live edge.
func (v Viewport) Scroll() int {
	return v.scroll
}

// SetScroll moves to n samples back, clamping at the live edge.
func (v *Viewport) SetScroll(n int) {
	if n < 0 {
		n = 0
	}
	if n == 0 && v.scroll != 0 {
		v.liveAt = v.now()
	}
	v.scroll = n
}

// ScrollBy moves delta samples further into the past (negative toward live).
func (v *Viewport) ScrollBy(delta int) {
	v.SetScroll(v.scroll + delta)
}

// Live reports whether the viewport follows new data.
func (v Viewport) Live() bool {
	return v.scroll == 0
}

// JustWentLive reports whether the viewport returned to the live edge
// within the last second.
func (v Viewport) JustWentLive() bool {
	if !v.Live() || v.liveAt.IsZero() {
		return false
	}
	return v.now().Sub(v.liveAt) < liveBannerDuration
}

// NotLiveLabel is the status prefix shown while scrolled back.
func (v Viewport) NotLiveLabel() string {
	if v.Live() {
		return ""
	}
	return fmt.Sprintf("NOT LIVE -%d: ", v.scroll)
}

func (v Viewport) now() time.Time {
	if v.clock == nil {
		return time.Now()
	}
	return v.clock.Now()
}
