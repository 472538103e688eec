package test

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/simplechat/internal/core"
)

// FakeConnection is an in-memory core.Connection.
type FakeConnection struct {
	mu       sync.Mutex
	host     string
	port     int
	identity string
	open     bool
	listener core.ConnectionListener

	OpenErr  error
	CloseErr error
	SendErr  error
	Sent     []string
	Opens    int
	Closes   int
	// OpenedAt records host:port for each successful Open.
	OpenedAt []string
}

func NewFakeConnection() *FakeConnection {
	return &FakeConnection{}
}

func (f *FakeConnection) Open(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.open {
		return core.ErrConnected
	}
	if f.OpenErr != nil {
		return f.OpenErr
	}
	f.open = true
	f.Opens++
	f.OpenedAt = append(f.OpenedAt, net.JoinHostPort(f.host, strconv.Itoa(f.port)))
	return nil
}

func (f *FakeConnection) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closes++
	f.open = false
	return f.CloseErr
}

func (f *FakeConnection) Send(ctx context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open {
		return core.ErrNotConnected
	}
	if f.SendErr != nil {
		return f.SendErr
	}
	f.Sent = append(f.Sent, text)
	return nil
}

func (f *FakeConnection) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *FakeConnection) Host() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.host
}

func (f *FakeConnection) SetHost(host string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.host = host
}

func (f *FakeConnection) Port() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.port
}

func (f *FakeConnection) SetPort(port int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.port = port
}

func (f *FakeConnection) Identity() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.identity
}

func (f *FakeConnection) SetIdentity(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.identity = id
}

func (f *FakeConnection) SetListener(l core.ConnectionListener) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listener = l
}

// Deliver simulates an inbound server line.
func (f *FakeConnection) Deliver(text string) {
	f.mu.Lock()
	l := f.listener
	f.mu.Unlock()
	if l != nil {
		l.MessageReceived(text)
	}
}

// DropRemote simulates the server closing the connection.
func (f *FakeConnection) DropRemote(err error) {
	f.mu.Lock()
	f.open = false
	f.mu.Unlock()
	f.Notify(err)
}

// Notify fires a close (nil) or error event without touching the
// connection, like a read loop of an earlier connection finishing late.
func (f *FakeConnection) Notify(err error) {
	f.mu.Lock()
	l := f.listener
	f.mu.Unlock()
	if l == nil {
		return
	}
	if err != nil {
		l.ConnectionError(err)
		return
	}
	l.ConnectionClosed()
}

func (f *FakeConnection) SentLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Sent...)
}

// Recorder is a core.Display that keeps every line.
type Recorder struct {
	mu    sync.Mutex
	Lines []string
}

func (r *Recorder) Display(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lines = append(r.Lines, text)
}

func (r *Recorder) Incoming(text string) {
	r.Display(core.MessageSeparator + text)
}

func (r *Recorder) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.Lines...)
}

// ChatServer is a newline-framed TCP server that echoes every received
// line to all connected clients.
type ChatServer struct {
	ln       net.Listener
	mu       sync.Mutex
	conns    map[net.Conn]struct{}
	received []string
	wg       sync.WaitGroup
}

// StartChatServer listens on an ephemeral loopback port. The server is
// stopped when the test ends.
func StartChatServer(t *testing.T) *ChatServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &ChatServer{ln: ln, conns: make(map[net.Conn]struct{})}
	s.wg.Add(1)
	go s.accept()
	t.Cleanup(s.Stop)
	return s
}

func (s *ChatServer) Host() string {
	return s.ln.Addr().(*net.TCPAddr).IP.String()
}

func (s *ChatServer) Port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *ChatServer) accept() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go s.serve(conn)
	}
}

func (s *ChatServer) serve(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")
		s.mu.Lock()
		s.received = append(s.received, line)
		s.mu.Unlock()
		s.Broadcast(line)
	}
}

// Broadcast writes line to every connected client.
func (s *ChatServer) Broadcast(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		c.Write([]byte(line + "\n")) //nolint:errcheck
	}
}

// Clients returns the number of connected clients.
func (s *ChatServer) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Received returns every line the server has read so far.
func (s *ChatServer) Received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.received...)
}

// KickAll closes every client connection from the server side.
func (s *ChatServer) KickAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		c.Close()
	}
}

func (s *ChatServer) Stop() {
	s.ln.Close()
	s.KickAll()
	s.wg.Wait()
}

// Eventually polls cond until it holds or the timeout passes.
func Eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met: %s", msg)
}
