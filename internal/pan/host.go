package pan

// Element is the DOM-like node a widget is bound to.
type Element interface {
	AddClass(name string)
	// ClearChildStyles strips inline style from every child of the element.
	ClearChildStyles()
	// EnableNativeScroll switches the element to host-native horizontal
	// scrolling, the fallback for touch devices.
	EnableNativeScroll()
}

// Layout exposes live geometry. ContentWidth reports false when the
// selector matches nothing.
type Layout interface {
	ContainerLeft() float64
	ContainerWidth() float64
	ContentWidth(selector string) (float64, bool)
}

// Surface is the moveable content strip.
type Surface interface {
	SetTranslateX(x float64)
}

// Host supplies everything a widget needs from its environment.
type Host interface {
	Element
	Layout

	// Touch reports a touch-capable device. It is consulted on every Init.
	Touch() bool
	// Surface returns the strip matched by selector, or nil.
	Surface(selector string) Surface
	// RequestFrame runs fn once, before the next repaint.
	RequestFrame(fn func())

	OnPointerMove(fn func(clientX float64)) (unbind func())
	OnHover(enter, leave func()) (unbind func())
}

// ResizeSource is a debounced window-resize signal.
type ResizeSource interface {
	Subscribe(name string, fn func())
	Unsubscribe(name string)
}
