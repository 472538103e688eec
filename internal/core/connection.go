package core

import "context"

// Connection is a single logical connection to a chat server.
type Connection interface {
	// Open dials the configured host and port. It returns ErrConnected
	// when the connection is already open.
	Open(ctx context.Context) error
	// Close is idempotent: closing a closed connection returns nil.
	Close() error
	// Send writes one chat line. It returns ErrNotConnected when closed.
	Send(ctx context.Context, text string) error
	IsConnected() bool

	Host() string
	SetHost(host string)
	Port() int
	SetPort(port int)
	Identity() string
	SetIdentity(id string)

	// SetListener registers the receiver of asynchronous events. Events
	// are delivered from the connection's own goroutine.
	SetListener(l ConnectionListener)
}

// ConnectionListener receives inbound traffic and remote disconnects.
// It is never called for a close initiated through Connection.Close.
type ConnectionListener interface {
	MessageReceived(text string)
	ConnectionClosed()
	ConnectionError(err error)
}
