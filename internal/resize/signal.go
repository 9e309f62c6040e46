// Package resize debounces raw window-resize notifications into a single
// settled signal.
//
// The package owns no timers. A host reports each raw resize with
// [Signal.Raw], waits the returned delay on its own scheduler, then calls
// [Signal.Settle] with the returned generation. Only the newest generation
// dispatches; older ones are stale and ignored.
package resize

import "time"

// DefaultWindow is the quiet period after the last raw resize.
const DefaultWindow = 100 * time.Millisecond

// Pending is a settle the host must schedule.
type Pending struct {
	Gen   uint64
	Delay time.Duration
}

type subscriber struct {
	name string
	fn   func()
}

// Signal is a debounced resize event. It is not safe for concurrent use.
type Signal struct {
	window time.Duration
	gen    uint64
	subs   []subscriber
}

// New returns a signal with the given debounce window; zero or negative
// selects DefaultWindow.
func New(window time.Duration) *Signal {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Signal{window: window}
}

// Subscribe registers fn under name, replacing an existing entry.
func (s *Signal) Subscribe(name string, fn func()) {
	for i := range s.subs {
		if s.subs[i].name == name {
			s.subs[i].fn = fn
			return
		}
	}
	s.subs = append(s.subs, subscriber{name: name, fn: fn})
}

func (s *Signal) Unsubscribe(name string) {
	for i := range s.subs {
		if s.subs[i].name == name {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

func (s *Signal) Subscribers() int { return len(s.subs) }

// Raw records a raw resize and invalidates any settle still in flight.
func (s *Signal) Raw() Pending {
	s.gen++
	return Pending{Gen: s.gen, Delay: s.window}
}

// Immediate is Raw without the debounce delay, used for the first bind.
func (s *Signal) Immediate() Pending {
	s.gen++
	return Pending{Gen: s.gen}
}

// Settle dispatches to every subscriber if gen is still current.
func (s *Signal) Settle(gen uint64) bool {
	if gen != s.gen {
		return false
	}
	subs := append([]subscriber(nil), s.subs...)
	for _, sub := range subs {
		sub.fn()
	}
	return true
}
