// Package link holds what the chat transports share: where to dial, who
// the client is and who receives connection events.
package link

import (
	"net"
	"strconv"
	"sync"

	"github.com/sandevgo/simplechat/internal/core"
)

// Endpoint implements the addressing half of core.Connection. Transports
// embed it and add Open, Close and Send.
type Endpoint struct {
	mu       sync.Mutex
	host     string
	port     int
	identity string
	listener core.ConnectionListener
}

func NewEndpoint() Endpoint {
	return Endpoint{host: core.DefaultHost, port: core.DefaultPort}
}

func (e *Endpoint) Host() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.host
}

func (e *Endpoint) SetHost(host string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.host = host
}

func (e *Endpoint) Port() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.port
}

func (e *Endpoint) SetPort(port int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.port = port
}

// Addr is host:port in dialable form.
func (e *Endpoint) Addr() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return net.JoinHostPort(e.host, strconv.Itoa(e.port))
}

func (e *Endpoint) Identity() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.identity
}

func (e *Endpoint) SetIdentity(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.identity = id
}

func (e *Endpoint) SetListener(l core.ConnectionListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listener = l
}

func (e *Endpoint) Listener() core.ConnectionListener {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.listener
}
