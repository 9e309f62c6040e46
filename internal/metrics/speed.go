package metrics

import (
	"math"

	"github.com/san-kum/griddlepan/internal/sim"
)

// SpeedFloor is the smallest easing denominator seen while playing.
type SpeedFloor struct {
	name    string
	min     float64
	samples int
}

func NewSpeedFloor() *SpeedFloor {
	return &SpeedFloor{
		name: "speed_floor",
		min:  math.Inf(1),
	}
}

func (f *SpeedFloor) Name() string {
	return f.name
}

func (f *SpeedFloor) Observe(s sim.Sample) {
	if !s.Playing {
		return
	}
	f.min = math.Min(f.min, s.Speed)
	f.samples++
}

func (f *SpeedFloor) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return f.min
}

func (f *SpeedFloor) Reset() {
	f.min = math.Inf(1)
	f.samples = 0
}
