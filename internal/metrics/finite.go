package metrics

import (
	"math"

	"github.com/san-kum/griddlepan/internal/sim"
)

// NonFinite counts frames whose target or running offset is NaN or
// infinite, as produced by a zero-width container.
type NonFinite struct {
	name  string
	count int
}

func NewNonFinite() *NonFinite {
	return &NonFinite{name: "non_finite"}
}

func (n *NonFinite) Name() string { return n.name }

func (n *NonFinite) Observe(s sim.Sample) {
	if bad(s.Target) || bad(s.Running) {
		n.count++
	}
}

func (n *NonFinite) Value() float64 { return float64(n.count) }

func (n *NonFinite) Reset() { n.count = 0 }

func bad(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
