package chart

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type colorRGB struct {
	R uint8
	G uint8
	B uint8
}

func (c colorRGB) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// seqCache maps profile, layer and color to an escape sequence.
var seqCache sync.Map

// cellColor is a foreground/background pair. A nil background leaves the
// terminal default.
type cellColor struct {
	fg colorRGB
	bg *colorRGB
}

func (c cellColor) key() uint64 {
	k := uint64(c.fg.R)<<16 | uint64(c.fg.G)<<8 | uint64(c.fg.B)
	if c.bg != nil {
		k |= 1<<48 | uint64(c.bg.R)<<40 | uint64(c.bg.G)<<32 | uint64(c.bg.B)<<24
	}
	return k
}

// ansiState emits a new sequence only when the cell color changes.
type ansiState struct {
	profile termenv.Profile
	current uint64
}

const noColor = ^uint64(0)

func newANSIState(p termenv.Profile) ansiState {
	return ansiState{profile: p, current: noColor}
}

func (s *ansiState) set(sb *strings.Builder, c cellColor) {
	if s.profile == termenv.Ascii {
		return
	}
	key := c.key()
	if key == s.current {
		return
	}
	if s.current != noColor {
		sb.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	}
	sb.WriteString(colorSequence(s.profile, c.fg, false))
	if c.bg != nil {
		sb.WriteString(colorSequence(s.profile, *c.bg, true))
	}
	s.current = key
}

func (s *ansiState) reset(sb *strings.Builder) {
	if s.profile == termenv.Ascii || s.current == noColor {
		return
	}
	sb.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	s.current = noColor
}

// colorSequence degrades c to the profile and returns the full escape
// sequence, or "" when the profile has no colors.
func colorSequence(p termenv.Profile, c colorRGB, background bool) string {
	cacheKey := uint64(p)<<33 | uint64(c.R)<<16 | uint64(c.G)<<8 | uint64(c.B)
	if background {
		cacheKey |= 1 << 32
	}
	if seq, ok := seqCache.Load(cacheKey); ok {
		return seq.(string)
	}

	seq := ""
	if col := p.Color(c.hex()); col != nil {
		if s := col.Sequence(background); s != "" {
			seq = termenv.CSI + s + "m"
		}
	}
	seqCache.Store(cacheKey, seq)
	return seq
}

func detectProfile() termenv.Profile {
	return lipgloss.ColorProfile()
}
