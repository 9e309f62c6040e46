package sim

import "github.com/san-kum/griddlepan/internal/pan"

// Strip is a headless moveable surface.
type Strip struct {
	x      float64
	styled bool
	writes int
}

func (s *Strip) SetTranslateX(x float64) {
	s.x = x
	s.styled = true
	s.writes++
}

// Translate returns the last written translation and whether an inline
// style is currently applied.
func (s *Strip) Translate() (float64, bool) { return s.x, s.styled }

func (s *Strip) Writes() int { return s.writes }

// Host is a deterministic pan.Host. Frames only run when Frame is called.
type Host struct {
	left, width float64
	contents    map[string]float64
	strips      map[string]*Strip
	touch       bool

	classes     []string
	native      bool
	styleResets int

	queue  []func()
	moves  []func(float64)
	enters []func()
	leaves []func()
}

func NewHost(left, width float64) *Host {
	return &Host{
		left:     left,
		width:    width,
		contents: make(map[string]float64),
		strips:   make(map[string]*Strip),
	}
}

// SetContent registers a content strip of the given width under selector.
func (h *Host) SetContent(selector string, width float64) {
	h.contents[selector] = width
	if _, ok := h.strips[selector]; !ok {
		h.strips[selector] = &Strip{}
	}
}

func (h *Host) RemoveContent(selector string) {
	delete(h.contents, selector)
	delete(h.strips, selector)
}

func (h *Host) SetGeometry(left, width float64) {
	h.left, h.width = left, width
}

func (h *Host) SetTouch(touch bool) { h.touch = touch }

func (h *Host) AddClass(name string) {
	if h.HasClass(name) {
		return
	}
	h.classes = append(h.classes, name)
}

func (h *Host) HasClass(name string) bool {
	for _, c := range h.classes {
		if c == name {
			return true
		}
	}
	return false
}

func (h *Host) ClearChildStyles() {
	for _, s := range h.strips {
		s.x, s.styled = 0, false
	}
	h.styleResets++
}

func (h *Host) EnableNativeScroll() { h.native = true }

func (h *Host) ContainerLeft() float64  { return h.left }
func (h *Host) ContainerWidth() float64 { return h.width }

func (h *Host) ContentWidth(selector string) (float64, bool) {
	w, ok := h.contents[selector]
	return w, ok
}

func (h *Host) Touch() bool { return h.touch }

func (h *Host) Surface(selector string) pan.Surface {
	s, ok := h.strips[selector]
	if !ok {
		return nil
	}
	return s
}

func (h *Host) Strip(selector string) *Strip { return h.strips[selector] }

func (h *Host) RequestFrame(fn func()) { h.queue = append(h.queue, fn) }

func (h *Host) OnPointerMove(fn func(clientX float64)) func() {
	h.moves = append(h.moves, fn)
	idx := len(h.moves) - 1
	return func() { h.moves[idx] = nil }
}

func (h *Host) OnHover(enter, leave func()) func() {
	h.enters = append(h.enters, enter)
	h.leaves = append(h.leaves, leave)
	idx := len(h.enters) - 1
	return func() { h.enters[idx], h.leaves[idx] = nil, nil }
}

// Frame runs every callback requested before this call and returns how
// many ran. Callbacks requested while draining wait for the next frame.
func (h *Host) Frame() int {
	q := h.queue
	h.queue = nil
	for _, fn := range q {
		fn()
	}
	return len(q)
}

func (h *Host) MovePointer(clientX float64) {
	for _, fn := range h.moves {
		if fn != nil {
			fn(clientX)
		}
	}
}

func (h *Host) Enter() { dispatch(h.enters) }
func (h *Host) Leave() { dispatch(h.leaves) }

func dispatch(fns []func()) {
	for _, fn := range fns {
		if fn != nil {
			fn()
		}
	}
}

func (h *Host) PendingFrames() int  { return len(h.queue) }
func (h *Host) HoverListeners() int { return live(h.enters) }
func (h *Host) NativeScroll() bool  { return h.native }
func (h *Host) StyleResets() int    { return h.styleResets }
func (h *Host) Classes() []string   { return append([]string(nil), h.classes...) }

func (h *Host) MoveListeners() int {
	n := 0
	for _, fn := range h.moves {
		if fn != nil {
			n++
		}
	}
	return n
}

func live(fns []func()) int {
	n := 0
	for _, fn := range fns {
		if fn != nil {
			n++
		}
	}
	return n
}
