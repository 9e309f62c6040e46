package pan

// DefaultContainer is the selector of the moving content strip.
const DefaultContainer = ".items"

// Options configures a widget.
type Options struct {
	// Container selects the content strip inside the bound element.
	Container string
	// PauseOnMouseOut pauses the render loop while the pointer is outside
	// the element.
	PauseOnMouseOut bool
	// IsResizable re-measures geometry on the debounced resize signal.
	IsResizable bool

	Before func(Element)
	End    func(Element)
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Container:       DefaultContainer,
		PauseOnMouseOut: true,
	}
}

// Override carries optional replacements for Options. Nil fields leave the
// current value untouched.
type Override struct {
	Container       *string
	PauseOnMouseOut *bool
	IsResizable     *bool
	Before          func(Element)
	End             func(Element)
}

// Merge applies o over a copy of opts.
func (opts Options) Merge(o *Override) Options {
	if o == nil {
		return opts
	}
	if o.Container != nil {
		opts.Container = *o.Container
	}
	if o.PauseOnMouseOut != nil {
		opts.PauseOnMouseOut = *o.PauseOnMouseOut
	}
	if o.IsResizable != nil {
		opts.IsResizable = *o.IsResizable
	}
	if o.Before != nil {
		opts.Before = o.Before
	}
	if o.End != nil {
		opts.End = o.End
	}
	return opts
}

// String returns a pointer to s, for building an Override.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for building an Override.
func Bool(b bool) *bool { return &b }
