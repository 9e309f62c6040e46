// Package bridge binds at most one pan.Widget to each element and routes
// commands to it.
package bridge

import (
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/san-kum/griddlepan/internal/pan"
)

// Element identifies a host element and the collaborators a widget on it
// needs.
type Element struct {
	ID     uuid.UUID
	Host   pan.Host
	Resize pan.ResizeSource
}

// NewElement assigns a fresh handle to host.
func NewElement(host pan.Host, resize pan.ResizeSource) Element {
	return Element{ID: uuid.New(), Host: host, Resize: resize}
}

// Registry maps element handles to their widgets.
type Registry struct {
	widgets map[uuid.UUID]*pan.Widget
	logger  *log.Logger
}

func NewRegistry() *Registry {
	return &Registry{
		widgets: make(map[uuid.UUID]*pan.Widget),
		logger:  log.Default(),
	}
}

// SetLogger replaces the rejection sink; nil discards.
func (r *Registry) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	r.logger = l
}

// Apply creates a widget for el, or merges o into the existing one and
// re-initializes it.
func (r *Registry) Apply(el Element, o *pan.Override) *pan.Widget {
	if w, ok := r.widgets[el.ID]; ok {
		w.Option(o)
		w.Init()
		return w
	}
	w := pan.New(el.Host, el.Resize, o)
	r.widgets[el.ID] = w
	return w
}

// Call resolves name and dispatches it. Rejections are logged and returned.
func (r *Registry) Call(id uuid.UUID, name string, args ...any) error {
	cmd, err := ParseCommand(name)
	if err != nil {
		return r.reject(err)
	}
	return r.Dispatch(id, cmd, args...)
}

// Dispatch runs cmd on the widget bound to id.
func (r *Registry) Dispatch(id uuid.UUID, cmd Command, args ...any) error {
	w, ok := r.widgets[id]
	if !ok {
		return r.reject(fmt.Errorf("%w; attempted to call method %q", ErrNotInitialized, cmd))
	}

	switch cmd {
	case CmdOption:
		o, err := overrideArg(args)
		if err != nil {
			return r.reject(err)
		}
		w.Option(o)
	case CmdBefore:
		w.Before()
	case CmdEnd:
		w.End()
	default:
		return r.reject(fmt.Errorf("%w: %v", ErrUnknownCommand, cmd))
	}
	return nil
}

func overrideArg(args []any) (*pan.Override, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: option needs an override", ErrInvalidArgument)
	}
	switch o := args[0].(type) {
	case *pan.Override:
		return o, nil
	case pan.Override:
		return &o, nil
	default:
		return nil, fmt.Errorf("%w: option got %T", ErrInvalidArgument, args[0])
	}
}

func (r *Registry) reject(err error) error {
	r.logger.Print(err)
	return err
}

// Widget returns the widget bound to id.
func (r *Registry) Widget(id uuid.UUID) (*pan.Widget, bool) {
	w, ok := r.widgets[id]
	return w, ok
}

func (r *Registry) Len() int { return len(r.widgets) }
