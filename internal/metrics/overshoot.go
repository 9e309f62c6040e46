package metrics

import (
	"math"

	"github.com/san-kum/griddlepan/internal/sim"
)

// Overshoot is the largest distance the running offset travelled past a
// fixed target. A target change starts a new approach.
type Overshoot struct {
	name    string
	max     float64
	target  float64
	side    float64
	samples int
}

func NewOvershoot() *Overshoot {
	return &Overshoot{name: "overshoot"}
}

func (o *Overshoot) Name() string { return o.name }

func (o *Overshoot) Observe(s sim.Sample) {
	d := s.Running - s.Target
	if math.IsNaN(d) {
		return
	}

	if o.samples == 0 || s.Target != o.target {
		o.target = s.Target
		o.side = sign(d)
		o.samples++
		return
	}
	o.samples++

	cur := sign(d)
	if o.side == 0 {
		o.side = cur
		return
	}
	if cur != 0 && cur != o.side {
		o.max = math.Max(o.max, math.Abs(d))
	}
}

func (o *Overshoot) Value() float64 { return o.max }

func (o *Overshoot) Reset() {
	o.max = 0
	o.target = 0
	o.side = 0
	o.samples = 0
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
