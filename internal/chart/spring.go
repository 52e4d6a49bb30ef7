package chart

import "github.com/charmbracelet/harmonica"

// Smoother eases a set of values toward their targets, one spring per
// index. The first Step for an index jumps straight to the target.
type Smoother struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
	init   []bool
}

// NewSmoother returns a smoother stepped fps times per second.
func NewSmoother(fps int, frequency, damping float64) Smoother {
	return Smoother{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// Resize sets the number of tracked values, resetting all of them.
func (s *Smoother) Resize(n int) {
	if len(s.pos) == n {
		return
	}
	s.pos = make([]float64, n)
	s.vel = make([]float64, n)
	s.init = make([]bool, n)
}

// Step advances value i one frame toward target and returns it.
func (s *Smoother) Step(i int, target float64) float64 {
	if i < 0 || i >= len(s.pos) {
		return target
	}
	if !s.init[i] {
		s.pos[i], s.vel[i], s.init[i] = target, 0, true
		return target
	}
	p, v := s.spring.Update(s.pos[i], s.vel[i], target)
	s.pos[i] = p
	s.vel[i] = v
	return p
}

// Value returns the current value for i without stepping.
func (s *Smoother) Value(i int) (float64, bool) {
	if i < 0 || i >= len(s.pos) || !s.init[i] {
		return 0, false
	}
	return s.pos[i], true
}
