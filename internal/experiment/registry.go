package experiment

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/griddlepan/internal/pan"
)

// Easer moves a running offset toward a target one frame at a time.
type Easer interface {
	Reset(containerWidth float64)
	Step(running, target float64) float64
}

type Registry struct {
	easers map[string]func(fps int) Easer
}

func NewRegistry() *Registry {
	r := &Registry{
		easers: make(map[string]func(fps int) Easer),
	}

	r.easers["griddle"] = func(int) Easer { return &griddle{} }
	r.easers["spring"] = func(fps int) Easer { return newSpring(fps, 6.0, 0.5) }
	r.easers["critical"] = func(fps int) Easer { return newSpring(fps, 6.0, 1.0) }
	r.easers["linear"] = func(int) Easer { return &linear{} }

	return r
}

func (r *Registry) GetEaser(name string, fps int) (Easer, error) {
	fn, ok := r.easers[name]
	if !ok {
		return nil, fmt.Errorf("unknown easer: %s", name)
	}
	return fn(fps), nil
}

func (r *Registry) ListEasers() []string {
	names := make([]string, 0, len(r.easers))
	for name := range r.easers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// griddle is the widget's own decaying-denominator easer.
type griddle struct {
	state pan.PanState
}

func (g *griddle) Reset(w float64) { g.state = g.state.Reset(w) }

func (g *griddle) Step(running, target float64) float64 {
	g.state.RunningOffset, g.state.TargetOffset = running, target
	g.state = g.state.Advance()
	return g.state.RunningOffset
}

type spring struct {
	s   harmonica.Spring
	vel float64
}

func newSpring(fps int, freq, damping float64) *spring {
	return &spring{s: harmonica.NewSpring(harmonica.FPS(fps), freq, damping)}
}

func (s *spring) Reset(float64) { s.vel = 0 }

func (s *spring) Step(running, target float64) float64 {
	var pos float64
	pos, s.vel = s.s.Update(running, s.vel, target)
	return pos
}

// linear covers a fixed share of the container per frame.
type linear struct {
	rate float64
}

func (l *linear) Reset(w float64) { l.rate = w * pan.MinSpeedRatio }

func (l *linear) Step(running, target float64) float64 {
	d := target - running
	switch {
	case d > l.rate:
		return running + l.rate
	case d < -l.rate:
		return running - l.rate
	}
	return target
}
