package core

import "context"

// Session is the mutable client context commands operate on. Host and
// port can only change while disconnected.
type Session interface {
	Host() string
	SetHost(host string) error
	Port() int
	SetPort(port int) error
	Identity() string
	State() State

	Login(ctx context.Context) error
	Logoff() error
	Shutdown() error
	Send(ctx context.Context, text string) error
}

// Display is the single sink for everything the user sees.
type Display interface {
	Display(text string)
	Incoming(text string)
}

// Prompter reads one more line of operator input.
type Prompter interface {
	Prompt(ctx context.Context, label string) (string, error)
}
