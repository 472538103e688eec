package state

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"github.com/sandevgo/simplechat/internal/core"
	"github.com/sandevgo/simplechat/pkg/log"
)

// Session owns the client configuration and the connection state. All
// mutation goes through its methods, which serialize the console
// goroutine with the connection's event goroutine.
type Session struct {
	mu       sync.Mutex
	conn     core.Connection
	display  core.Display
	logger   *zerolog.Logger
	host     string
	port     int
	identity string
	state    core.State
}

func NewSession(
	ctx context.Context,
	conn core.Connection,
	identity, host string,
	port int,
) *Session {
	s := &Session{
		conn:     conn,
		display:  nopDisplay{},
		logger:   log.FromCtx(ctx),
		host:     host,
		port:     port,
		identity: identity,
		state:    core.StateDisconnected,
	}
	conn.SetIdentity(identity)
	conn.SetListener(s)
	return s
}

// SetDisplay routes asynchronous notifications to d.
func (s *Session) SetDisplay(d core.Display) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d == nil {
		d = nopDisplay{}
	}
	s.display = d
}

func (s *Session) Host() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.host
}

func (s *Session) SetHost(host string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == core.StateConnected {
		return core.ErrConnected
	}
	s.host = host
	s.logger.Debug().Str("host", host).Msg("host changed")
	return nil
}

func (s *Session) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

func (s *Session) SetPort(port int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == core.StateConnected {
		return core.ErrConnected
	}
	if !core.ValidPort(port) {
		return fmt.Errorf("%w: %d", core.ErrInvalidPort, port)
	}
	s.port = port
	s.logger.Debug().Int("port", port).Msg("port changed")
	return nil
}

func (s *Session) Identity() string {
	return s.identity
}

func (s *Session) State() core.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.address()
}

func (s *Session) address() string {
	return net.JoinHostPort(s.host, strconv.Itoa(s.port))
}

// Login opens the connection with the current host and port. The state
// only becomes connected when the open succeeds.
func (s *Session) Login(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == core.StateConnected {
		return core.ErrConnected
	}

	s.conn.SetHost(s.host)
	s.conn.SetPort(s.port)
	s.conn.SetIdentity(s.identity)

	if err := s.conn.Open(ctx); err != nil {
		s.logger.Warn().Err(err).Str("addr", s.address()).Msg("login failed")
		return fmt.Errorf("cannot connect to %s: %w", s.address(), err)
	}

	s.state = core.StateConnected
	s.logger.Info().Str("addr", s.address()).Msg("logged in")
	return nil
}

// Logoff closes an open connection. It returns core.ErrNotConnected and
// changes nothing when already disconnected.
func (s *Session) Logoff() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != core.StateConnected {
		return core.ErrNotConnected
	}

	s.state = core.StateDisconnected
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("close connection: %w", err)
	}
	s.logger.Info().Str("addr", s.address()).Msg("logged off")
	return nil
}

// Shutdown closes the connection whatever the current state is.
func (s *Session) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = core.StateDisconnected
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("close connection: %w", err)
	}
	return nil
}

// Send forwards text prefixed with the client identity. It does not
// check the state: a closed connection reports its own error.
func (s *Session) Send(ctx context.Context, text string) error {
	return s.conn.Send(ctx, s.identity+core.MessageSeparator+text)
}

func (s *Session) MessageReceived(text string) {
	s.currentDisplay().Incoming(text)
}

func (s *Session) ConnectionClosed() {
	if s.dropConnection() {
		s.logger.Info().Msg("server closed the connection")
		s.currentDisplay().Display("Server is no longer connected.")
	}
}

func (s *Session) ConnectionError(err error) {
	if s.dropConnection() {
		s.logger.Warn().Err(err).Msg("connection lost")
		s.currentDisplay().Display(fmt.Sprintf("Error: connection lost: %v", err))
	}
}

// dropConnection moves a connected session to disconnected and reports
// whether a transition happened. A transport still reporting an open
// connection means the event belongs to one already replaced by Login.
func (s *Session) dropConnection() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != core.StateConnected || s.conn.IsConnected() {
		return false
	}
	s.state = core.StateDisconnected
	return true
}

func (s *Session) currentDisplay() core.Display {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display
}

type nopDisplay struct{}

func (nopDisplay) Display(string)  {}
func (nopDisplay) Incoming(string) {}
