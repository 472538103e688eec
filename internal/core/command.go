package core

import "context"

type CmdRouter interface {
	Execute(ctx context.Context, sess Session, input string) (Result, bool)
	ListCommands() []Command
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sess Session, args []string) (string, error)
}

// Terminator is implemented by commands that end the console loop.
type Terminator interface {
	Terminates() bool
}

// Result is the outcome of a dispatched command line.
type Result struct {
	Output string
	Exit   bool
}
