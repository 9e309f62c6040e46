package bridge

import "errors"

var (
	// ErrNotInitialized indicates a command sent to an element with no widget.
	ErrNotInitialized = errors.New("bridge: cannot call methods prior to initialization")

	// ErrUnknownCommand indicates a command name the widget does not expose.
	ErrUnknownCommand = errors.New("bridge: no such method")

	// ErrPrivateCommand indicates an underscore-prefixed command name.
	ErrPrivateCommand = errors.New("bridge: method is private")

	// ErrInvalidArgument indicates a command argument of the wrong type.
	ErrInvalidArgument = errors.New("bridge: invalid argument")
)
