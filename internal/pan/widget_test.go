package pan_test

import (
	"math"
	"testing"

	"github.com/san-kum/griddlepan/internal/pan"
	"github.com/san-kum/griddlepan/internal/resize"
	"github.com/san-kum/griddlepan/internal/sim"
)

func newHost(width, content float64) *sim.Host {
	h := sim.NewHost(0, width)
	h.SetContent(pan.DefaultContainer, content)
	return h
}

func frames(h *sim.Host, n int) {
	for i := 0; i < n; i++ {
		h.Frame()
	}
}

func TestInitState(t *testing.T) {
	h := newHost(200, 600)
	w := pan.New(h, nil, nil)

	if !w.Initialized() {
		t.Fatal("widget should be initialized")
	}
	b := w.Bounds()
	if b.ContainerWidth != 200 || b.ContentWidth != 600 {
		t.Errorf("bounds = %+v", b)
	}
	st := w.State()
	if st.Speed != 100 || st.MinSpeed != 10 {
		t.Errorf("speeds = (%v, %v), want (100, 10)", st.Speed, st.MinSpeed)
	}
	if st.Playing {
		t.Error("pause-on-mouse-out widget should wait for the pointer")
	}

	frames(h, 1)
	if !h.HasClass(pan.Class) {
		t.Errorf("classes = %v, want %q", h.Classes(), pan.Class)
	}
}

func TestMapPointerToOffset(t *testing.T) {
	h := newHost(200, 600)
	w := pan.New(h, nil, nil)

	if got := w.MapPointerToOffset(0); got != 0 {
		t.Errorf("left edge = %v, want 0", got)
	}
	if got := w.MapPointerToOffset(200); got != -400 {
		t.Errorf("right edge = %v, want -400", got)
	}
	if got := w.MapPointerToOffset(-50); got != 0 {
		t.Errorf("outside left = %v, want 0", got)
	}

	first := w.MapPointerToOffset(123.4)
	second := w.MapPointerToOffset(123.4)
	if math.Float64bits(first) != math.Float64bits(second) {
		t.Errorf("not deterministic: %v vs %v", first, second)
	}
}

func TestMapPointerMeasuresFresh(t *testing.T) {
	h := newHost(200, 600)
	w := pan.New(h, nil, nil)

	h.SetGeometry(100, 400)
	if got := w.MapPointerToOffset(500); got != -200 {
		t.Errorf("offset = %v, want -200 after geometry change", got)
	}
	if w.Bounds().ContainerLeft != 100 {
		t.Errorf("bounds not refreshed: %+v", w.Bounds())
	}
}

func TestMissingContentDegradesToZero(t *testing.T) {
	h := sim.NewHost(0, 200)
	w := pan.New(h, nil, &pan.Override{Container: pan.String(".missing"), PauseOnMouseOut: pan.Bool(false)})

	if got := w.MapPointerToOffset(150); got != 0 {
		t.Errorf("offset = %v, want 0", got)
	}
	if w.Bounds().ContentWidth != 0 {
		t.Errorf("content width = %v, want 0", w.Bounds().ContentWidth)
	}
	frames(h, 5)
	if w.State().RunningOffset != 0 {
		t.Errorf("running = %v, want 0", w.State().RunningOffset)
	}
}

func TestSpeedDecayMonotonic(t *testing.T) {
	h := newHost(200, 600)
	w := pan.New(h, nil, &pan.Override{PauseOnMouseOut: pan.Bool(false)})
	h.MovePointer(200)

	prev := w.State().Speed
	for i := 0; i < 100; i++ {
		h.Frame()
		st := w.State()
		if st.Speed > prev {
			t.Fatalf("frame %d: speed rose from %v to %v", i, prev, st.Speed)
		}
		if st.Speed < st.MinSpeed {
			t.Fatalf("frame %d: speed %v below floor %v", i, st.Speed, st.MinSpeed)
		}
		prev = st.Speed
	}
	if prev != 10 {
		t.Errorf("speed after 100 frames = %v, want floor 10", prev)
	}
}

func TestConvergenceWithoutOvershoot(t *testing.T) {
	h := newHost(200, 600)
	w := pan.New(h, nil, &pan.Override{PauseOnMouseOut: pan.Bool(false)})
	h.MovePointer(200)

	prev := w.State().Distance()
	for i := 0; i < 300; i++ {
		h.Frame()
		d := w.State().Distance()
		if d > prev {
			t.Fatalf("frame %d: distance grew %v -> %v", i, prev, d)
		}
		prev = d
	}
	if prev > 0.01 {
		t.Errorf("distance after 300 frames = %v", prev)
	}

	x, styled := h.Strip(pan.DefaultContainer).Translate()
	if !styled || math.Abs(x-(-400)) > 0.01 {
		t.Errorf("translate = (%v, %v), want ~-400", x, styled)
	}
}

func TestPauseOnMouseOut(t *testing.T) {
	h := newHost(200, 600)
	w := pan.New(h, nil, nil)
	h.Enter()
	h.MovePointer(200)
	frames(h, 3)

	h.Leave()
	before := w.State()
	writes := h.Strip(pan.DefaultContainer).Writes()
	frames(h, 10)
	after := w.State()
	if after != before {
		t.Errorf("paused state changed: %+v -> %+v", before, after)
	}
	if got := h.Strip(pan.DefaultContainer).Writes(); got != writes {
		t.Errorf("paused widget wrote %d transforms", got-writes)
	}
	if h.PendingFrames() != 1 {
		t.Errorf("loop should keep ticking while paused, pending = %d", h.PendingFrames())
	}

	h.Enter()
	frames(h, 10)
	if w.State().RunningOffset == before.RunningOffset {
		t.Error("running offset should move after pointer enter")
	}
}

func TestNoPauseWhenDisabled(t *testing.T) {
	h := newHost(200, 600)
	w := pan.New(h, nil, &pan.Override{PauseOnMouseOut: pan.Bool(false)})

	if !w.Playing() {
		t.Fatal("widget should play from init")
	}
	if h.HoverListeners() != 0 {
		t.Errorf("hover listeners = %d, want 0", h.HoverListeners())
	}
	w.PointerLeave()
	if !w.Playing() {
		t.Error("leave must not pause without pause-on-mouse-out")
	}
}

func TestZeroWidthContainer(t *testing.T) {
	h := newHost(0, 600)
	w := pan.New(h, nil, &pan.Override{PauseOnMouseOut: pan.Bool(false)})

	h.MovePointer(10)
	if got := w.State().TargetOffset; !math.IsNaN(got) {
		t.Fatalf("target = %v, want NaN", got)
	}

	frames(h, 5)
	x, _ := h.Strip(pan.DefaultContainer).Translate()
	if !math.IsNaN(x) {
		t.Errorf("translate = %v, want NaN", x)
	}
	if h.PendingFrames() != 1 {
		t.Errorf("loop stopped after non-finite frame, pending = %d", h.PendingFrames())
	}
}

func TestReinitIsIdempotent(t *testing.T) {
	h := newHost(200, 600)
	w := pan.New(h, nil, nil)
	frames(h, 1)

	w.Init()
	w.Init()

	if h.PendingFrames() != 1 {
		t.Errorf("pending frames = %d, want 1", h.PendingFrames())
	}
	if h.MoveListeners() != 1 {
		t.Errorf("move listeners = %d, want 1", h.MoveListeners())
	}
	if h.HoverListeners() != 1 {
		t.Errorf("hover listeners = %d, want 1", h.HoverListeners())
	}

	before := w.Frames()
	frames(h, 4)
	if got := w.Frames() - before; got != 4 {
		t.Errorf("render steps over 4 frames = %d, want 4", got)
	}
}

func TestReinitResetsOffsets(t *testing.T) {
	h := newHost(200, 600)
	w := pan.New(h, nil, &pan.Override{PauseOnMouseOut: pan.Bool(false)})
	h.MovePointer(200)
	frames(h, 20)

	h.SetGeometry(0, 300)
	w.Init()
	st := w.State()
	if st.TargetOffset != 0 || st.RunningOffset != 0 {
		t.Errorf("offsets = (%v, %v), want zero", st.TargetOffset, st.RunningOffset)
	}
	if st.Speed != 150 || st.MinSpeed != 15 {
		t.Errorf("speeds = (%v, %v), want (150, 15)", st.Speed, st.MinSpeed)
	}
	if !st.Playing {
		t.Error("re-init should keep playing")
	}
}

func TestTouchFallback(t *testing.T) {
	h := newHost(200, 600)
	h.SetTouch(true)
	pan.New(h, nil, nil)

	if !h.NativeScroll() {
		t.Error("touch host should switch to native scroll")
	}
	if !h.HasClass(pan.TouchClass) {
		t.Errorf("classes = %v, want %q", h.Classes(), pan.TouchClass)
	}
	if h.MoveListeners() != 0 {
		t.Errorf("move listeners = %d, want 0", h.MoveListeners())
	}
}

func TestCancelKeepsLoop(t *testing.T) {
	h := newHost(200, 600)
	w := pan.New(h, nil, &pan.Override{PauseOnMouseOut: pan.Bool(false)})
	h.MovePointer(100)
	frames(h, 5)

	w.Cancel()
	if _, styled := h.Strip(pan.DefaultContainer).Translate(); styled {
		t.Error("cancel should strip the inline transform")
	}
	if h.StyleResets() != 1 {
		t.Errorf("style resets = %d, want 1", h.StyleResets())
	}
	if !w.Playing() || h.PendingFrames() != 1 {
		t.Error("cancel must not stop the loop or change play state")
	}

	h.Frame()
	if _, styled := h.Strip(pan.DefaultContainer).Translate(); !styled {
		t.Error("next playing frame should write a transform again")
	}
}

func TestBeforeEndCallbacks(t *testing.T) {
	h := newHost(200, 600)
	var got []pan.Element
	w := pan.New(h, nil, &pan.Override{
		Before: func(el pan.Element) { got = append(got, el) },
	})

	w.Before()
	w.End()
	if len(got) != 1 || got[0] != pan.Element(h) {
		t.Fatalf("before callback calls = %v", got)
	}

	w.Option(&pan.Override{End: func(el pan.Element) { got = append(got, el) }})
	w.End()
	if len(got) != 2 {
		t.Errorf("end callback not invoked after option, calls = %d", len(got))
	}
}

func TestOptionDoesNotReinit(t *testing.T) {
	h := newHost(200, 600)
	w := pan.New(h, nil, &pan.Override{PauseOnMouseOut: pan.Bool(false)})
	h.MovePointer(200)
	frames(h, 3)
	running := w.State().RunningOffset

	w.Option(&pan.Override{Container: pan.String(".other")})
	if w.Options().Container != ".other" {
		t.Errorf("container = %q", w.Options().Container)
	}
	if w.State().RunningOffset != running {
		t.Error("option must not reset state")
	}
}

func TestResizeSubscription(t *testing.T) {
	h := newHost(200, 600)
	sig := resize.New(resize.DefaultWindow)
	w := pan.New(h, sig, &pan.Override{IsResizable: pan.Bool(true)})

	if sig.Subscribers() != 1 || !w.ResizeBound() {
		t.Fatalf("subscribers = %d, want 1", sig.Subscribers())
	}

	h.SetGeometry(10, 400)
	sig.Settle(sig.Raw().Gen)
	if b := w.Bounds(); b.ContainerLeft != 10 || b.ContainerWidth != 400 {
		t.Errorf("bounds after resize = %+v", b)
	}
	if w.State().Speed != 100 {
		t.Error("resize must not reset speed")
	}

	w.Init()
	if sig.Subscribers() != 1 {
		t.Errorf("re-init double subscribed: %d", sig.Subscribers())
	}

	w.Option(&pan.Override{IsResizable: pan.Bool(false)})
	w.Init()
	if sig.Subscribers() != 0 || w.ResizeBound() {
		t.Errorf("subscribers after disabling = %d, want 0", sig.Subscribers())
	}
}

func TestNotResizableIgnoresSignal(t *testing.T) {
	h := newHost(200, 600)
	sig := resize.New(resize.DefaultWindow)
	w := pan.New(h, sig, nil)

	h.SetGeometry(0, 500)
	sig.Settle(sig.Raw().Gen)
	if w.Bounds().ContainerWidth != 200 {
		t.Errorf("non-resizable widget re-measured: %+v", w.Bounds())
	}
}
