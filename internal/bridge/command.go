package bridge

import (
	"fmt"
	"strings"
)

// Command is a public widget method reachable through the bridge.
type Command int

const (
	CmdOption Command = iota + 1
	CmdBefore
	CmdEnd
)

var commandNames = map[string]Command{
	"option": CmdOption,
	"before": CmdBefore,
	"end":    CmdEnd,
}

func (c Command) String() string {
	for name, cmd := range commandNames {
		if cmd == c {
			return name
		}
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand resolves a method name. Underscore-prefixed names are
// lifecycle internals and are always rejected.
func ParseCommand(name string) (Command, error) {
	if strings.HasPrefix(name, "_") {
		return 0, fmt.Errorf("%w: %q", ErrPrivateCommand, name)
	}
	cmd, ok := commandNames[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return cmd, nil
}
