// Package chart draws latency strip charts as terminal text.
package chart

import (
	"strings"

	"github.com/muesli/termenv"
)

// SubRows is the vertical resolution of one text row. Latencies are scaled
// in sub-rows so a chart of n rows behaves like one n*SubRows pixels tall.
const SubRows = 8

// LineRow returns the first row lying entirely at or above a line drawn at
// sub-row sub.
func LineRow(sub int) int {
	if sub <= 0 {
		return 0
	}
	return (sub + SubRows - 1) / SubRows
}

// Kind selects the color of a column.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindGood
	KindBad
	KindWorse
	KindFailure
)

// Column is one sample. Height is in rows and may be fractional; failures
// fill the whole column regardless of Height.
type Column struct {
	Kind   Kind
	Height float64
}

// Frame is everything needed to draw one chart. Columns are right-aligned;
// when there are more columns than Width the oldest are dropped.
type Frame struct {
	Width     int
	Height    int
	Columns   []Column
	BadLine   int
	WorseLine int
}

var (
	colorGood     = colorRGB{R: 64, G: 128, B: 64}
	colorBad      = colorRGB{R: 128, G: 128, B: 0}
	colorWorse    = colorRGB{R: 255, G: 255, B: 0}
	colorFailure  = colorRGB{R: 255, G: 0, B: 0}
	colorBandFg   = colorRGB{R: 128, G: 128, B: 128}
	bandBad       = colorRGB{R: 35, G: 35, B: 0}
	bandWorse     = colorRGB{R: 40, G: 0, B: 0}
	eighthsBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
)

// Renderer writes frames using the terminal's color profile.
type Renderer struct {
	profile termenv.Profile
}

// NewRenderer detects the color profile from the environment.
func NewRenderer() Renderer {
	return Renderer{profile: detectProfile()}
}

// Render returns Height lines of Width cells, top row first.
func (r Renderer) Render(f Frame) string {
	if f.Width <= 0 || f.Height <= 0 {
		return ""
	}
	cols := f.Columns
	if len(cols) > f.Width {
		cols = cols[len(cols)-f.Width:]
	}
	lead := f.Width - len(cols)

	rows := make([]string, f.Height)
	for row := 0; row < f.Height; row++ {
		level := f.Height - 1 - row
		band := f.band(level)

		var sb strings.Builder
		color := newANSIState(r.profile)
		for x := 0; x < f.Width; x++ {
			c := Column{}
			if x >= lead {
				c = cols[x-lead]
			}
			ch, fg := cell(c, level)
			color.set(&sb, cellColor{fg: fg, bg: band})
			sb.WriteRune(ch)
		}
		color.reset(&sb)
		rows[row] = sb.String()
	}
	return strings.Join(rows, "\n")
}

func (f Frame) band(level int) *colorRGB {
	switch {
	case f.WorseLine < f.Height && level >= f.WorseLine:
		return &bandWorse
	case f.BadLine < f.Height && level >= f.BadLine:
		return &bandBad
	default:
		return nil
	}
}

func cell(c Column, level int) (rune, colorRGB) {
	var fg colorRGB
	switch c.Kind {
	case KindEmpty:
		return ' ', colorBandFg
	case KindFailure:
		return '█', colorFailure
	case KindGood:
		fg = colorGood
	case KindBad:
		fg = colorBad
	default:
		fg = colorWorse
	}

	h := c.Height
	if h >= float64(level+1) {
		return '█', fg
	}
	idx := 0
	if h > float64(level) {
		idx = int((h - float64(level)) * 8)
	}
	// Every reply shows at least a sliver on the bottom row.
	if level == 0 && idx == 0 {
		idx = 1
	}
	return eighthsBlocks[min(idx, 8)], fg
}
