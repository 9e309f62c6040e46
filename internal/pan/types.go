package pan

import "math"

const (
	// StartSpeedRatio scales the container width into the initial speed denominator.
	StartSpeedRatio = 0.5
	// MinSpeedRatio scales the container width into the speed floor.
	MinSpeedRatio = 0.05
	// SpeedDecay is subtracted from the speed on every playing frame.
	SpeedDecay = 2.0

	// Class is added to the bound element shortly after creation.
	Class = "griddlepan"
	// TouchClass is added when the host reports a touch-capable device.
	TouchClass = "griddlepan-touch"
)

// Bounds is the measured geometry of a container and its content strip.
// It is always replaced as a whole.
type Bounds struct {
	ContainerLeft  float64
	ContainerWidth float64
	ContentWidth   float64
}

// Overflow is how far the content extends past the container.
func (b Bounds) Overflow() float64 {
	return b.ContentWidth - b.ContainerWidth
}

// Position clamps a raw pointer coordinate into [0, ContainerWidth],
// relative to the container's left edge.
func (b Bounds) Position(clientX float64) float64 {
	x := clientX - b.ContainerLeft
	if x < 0 {
		x = 0
	}
	if x > b.ContainerWidth {
		x = b.ContainerWidth
	}
	return x
}

// Fraction is the clamped pointer position as a fraction of the container
// width. It is NaN for a zero-width container.
func (b Bounds) Fraction(clientX float64) float64 {
	return b.Position(clientX) / b.ContainerWidth
}

// TargetOffset maps a pointer coordinate onto a content translation.
// Offsets are non-positive: content moves left as the pointer moves right.
func (b Bounds) TargetOffset(clientX float64) float64 {
	return 0 - b.Overflow()*b.Fraction(clientX)
}

// PanState holds the animated values of one widget.
type PanState struct {
	TargetOffset  float64
	RunningOffset float64
	Speed         float64
	MinSpeed      float64
	Playing       bool
}

// Reset returns a fresh state for the given container width. The playing
// flag is carried over.
func (s PanState) Reset(containerWidth float64) PanState {
	return PanState{
		Speed:    containerWidth * StartSpeedRatio,
		MinSpeed: containerWidth * MinSpeedRatio,
		Playing:  s.Playing,
	}
}

// Advance performs one easing step regardless of the playing flag.
func (s PanState) Advance() PanState {
	s.Speed -= SpeedDecay
	if s.Speed < s.MinSpeed {
		s.Speed = s.MinSpeed
	}
	delta := (s.RunningOffset - s.TargetOffset) / s.Speed
	s.RunningOffset -= delta
	return s
}

// Distance is the absolute gap between the running and target offsets.
func (s PanState) Distance() float64 {
	return math.Abs(s.RunningOffset - s.TargetOffset)
}

// Finite reports whether both offsets are finite numbers.
func (s PanState) Finite() bool {
	return finite(s.TargetOffset) && finite(s.RunningOffset)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
