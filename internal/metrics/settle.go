package metrics

import (
	"math"

	"github.com/san-kum/griddlepan/internal/sim"
)

// SettleFrames counts the frames until the running offset last entered the
// tolerance band around the target. A run that ends outside the band
// reports every observed frame.
type SettleFrames struct {
	name        string
	tolerance   float64
	lastOutside int
	samples     int
}

func NewSettleFrames(tolerance float64) *SettleFrames {
	return &SettleFrames{
		name:        "settle_frames",
		tolerance:   tolerance,
		lastOutside: -1,
	}
}

func (s *SettleFrames) Name() string { return s.name }

func (s *SettleFrames) Observe(x sim.Sample) {
	d := math.Abs(x.Running - x.Target)
	if math.IsNaN(d) || d > s.tolerance {
		s.lastOutside = s.samples
	}
	s.samples++
}

func (s *SettleFrames) Value() float64 {
	return float64(s.lastOutside + 1)
}

func (s *SettleFrames) Reset() {
	s.lastOutside = -1
	s.samples = 0
}
