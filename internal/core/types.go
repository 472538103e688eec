package core

import "errors"

const (
	AppName    = "simplechat"
	AppVersion = "0.1.0"

	// CommandPrefix marks a console line as a control command.
	CommandPrefix = '#'

	// MessageSeparator goes between the identity and the text of an
	// outgoing chat line, and in front of incoming ones.
	MessageSeparator = "> "

	DefaultHost = "localhost"
	DefaultPort = 5555
)

var (
	ErrConnected    = errors.New("already connected")
	ErrNotConnected = errors.New("not connected")
	ErrInvalidPort  = errors.New("invalid port")
)

// State is the connection state as seen by the console.
type State int

const (
	StateDisconnected State = iota
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// ValidPort reports whether p is a usable TCP port number.
func ValidPort(p int) bool {
	return p > 0 && p <= 65535
}
