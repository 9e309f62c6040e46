// Package metrics scores headless pan runs.
//
// Every metric implements sim.Metric and is fed one sim.Sample per frame:
//
//	overshoot      largest travel past a fixed target (0 for the griddle easer)
//	settle_frames  frames until the offset last entered the tolerance band
//	speed_floor    smallest easing denominator seen while playing
//	non_finite     frames with a NaN or infinite offset
package metrics

import "github.com/san-kum/griddlepan/internal/sim"

// DefaultTolerance is the settle band in pixels.
const DefaultTolerance = 0.5

// Default returns a fresh instance of every metric.
func Default() []sim.Metric {
	return []sim.Metric{
		NewOvershoot(),
		NewSettleFrames(DefaultTolerance),
		NewSpeedFloor(),
		NewNonFinite(),
	}
}
