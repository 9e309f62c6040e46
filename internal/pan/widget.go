package pan

import "fmt"

// Widget pans one element's content strip. All methods must be called from
// the host's single event/frame thread.
type Widget struct {
	host   Host
	resize ResizeSource
	opts   Options

	bounds       Bounds
	contentFound bool
	state        PanState
	moveable     Surface

	initialized bool
	loopArmed   bool
	frames      uint64

	unbindMove  func()
	unbindHover func()
	resizeName  string
	resizeBound bool
}

// New merges o over the defaults, binds the resize signal when configured
// and initializes the widget. resize may be nil.
func New(host Host, resize ResizeSource, o *Override) *Widget {
	w := &Widget{
		host:   host,
		resize: resize,
		opts:   DefaultOptions().Merge(o),
	}
	w.resizeName = fmt.Sprintf("%s.%p", Class, w)

	host.RequestFrame(func() { host.AddClass(Class) })

	w.Init()
	return w
}

// Option merges o into the current options without re-initializing.
func (w *Widget) Option(o *Override) {
	w.opts = w.opts.Merge(o)
}

// Init measures geometry, resets the pan state and installs listeners and
// the render loop. Calling it again resets offsets and speed but never
// installs a second listener or loop.
func (w *Widget) Init() {
	w.Measure()
	w.state = w.state.Reset(w.bounds.ContainerWidth)
	w.moveable = w.host.Surface(w.opts.Container)

	if !w.loopArmed {
		w.loopArmed = true
		w.host.RequestFrame(w.RenderStep)
	}

	if w.host.Touch() {
		w.host.AddClass(TouchClass)
		w.host.EnableNativeScroll()
	} else if w.unbindMove == nil {
		w.unbindMove = w.host.OnPointerMove(w.PointerMove)
	}

	if w.opts.PauseOnMouseOut {
		if w.unbindHover == nil {
			w.unbindHover = w.host.OnHover(w.PointerEnter, w.PointerLeave)
		}
	} else {
		w.play()
	}

	w.syncResize()
	w.initialized = true
}

func (w *Widget) syncResize() {
	if w.resize == nil {
		return
	}
	switch {
	case w.opts.IsResizable && !w.resizeBound:
		w.resize.Subscribe(w.resizeName, w.Resize)
		w.resizeBound = true
	case !w.opts.IsResizable && w.resizeBound:
		w.resize.Unsubscribe(w.resizeName)
		w.resizeBound = false
	}
}

// Measure re-reads the container and content geometry.
func (w *Widget) Measure() Bounds {
	content, found := w.host.ContentWidth(w.opts.Container)
	w.contentFound = found
	w.bounds = Bounds{
		ContainerLeft:  w.host.ContainerLeft(),
		ContainerWidth: w.host.ContainerWidth(),
		ContentWidth:   content,
	}
	return w.bounds
}

// Resize handles a settled resize signal.
func (w *Widget) Resize() {
	w.Measure()
}

// MapPointerToOffset re-measures and stores the target offset for clientX.
// Without a content strip the target stays at 0.
func (w *Widget) MapPointerToOffset(clientX float64) float64 {
	w.Measure()
	if !w.contentFound {
		w.state.TargetOffset = 0
		return 0
	}
	w.state.TargetOffset = w.bounds.TargetOffset(clientX)
	return w.state.TargetOffset
}

// PointerMove is the pointer-move listener.
func (w *Widget) PointerMove(clientX float64) {
	w.MapPointerToOffset(clientX)
}

// PointerEnter resumes playing when pause-on-mouse-out is configured.
func (w *Widget) PointerEnter() {
	if w.opts.PauseOnMouseOut {
		w.play()
	}
}

// PointerLeave pauses when pause-on-mouse-out is configured.
func (w *Widget) PointerLeave() {
	if w.opts.PauseOnMouseOut {
		w.pause()
	}
}

func (w *Widget) play()  { w.state.Playing = true }
func (w *Widget) pause() { w.state.Playing = false }

// RenderStep advances one frame and requests the next one. A paused widget
// leaves its state and the surface alone but keeps the loop alive.
func (w *Widget) RenderStep() {
	if w.state.Playing {
		w.state = w.state.Advance()
		if w.moveable != nil {
			w.moveable.SetTranslateX(w.state.RunningOffset)
		}
	}
	w.frames++
	w.host.RequestFrame(w.RenderStep)
}

// Before invokes the configured before callback with the bound element.
func (w *Widget) Before() {
	if w.opts.Before != nil {
		w.opts.Before(w.host)
	}
}

// End invokes the configured end callback with the bound element.
func (w *Widget) End() {
	if w.opts.End != nil {
		w.opts.End(w.host)
	}
}

// Cancel strips inline styles from the element's children. The render
// loop and the play state are not affected.
func (w *Widget) Cancel() {
	w.host.ClearChildStyles()
}

func (w *Widget) Options() Options  { return w.opts }
func (w *Widget) Bounds() Bounds    { return w.bounds }
func (w *Widget) State() PanState   { return w.state }
func (w *Widget) Playing() bool     { return w.state.Playing }
func (w *Widget) Initialized() bool { return w.initialized }
func (w *Widget) Frames() uint64    { return w.frames }
func (w *Widget) ResizeBound() bool { return w.resizeBound }
