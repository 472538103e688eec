// Package tcp implements the chat connection over a plain TCP stream
// carrying one message per newline-terminated line.
package tcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sandevgo/simplechat/internal/core"
	"github.com/sandevgo/simplechat/internal/transport/link"
	"github.com/sandevgo/simplechat/pkg/log"
	"github.com/sandevgo/simplechat/pkg/retry"
)

type Config struct {
	DialTimeout time.Duration
	// DialRetries is the number of extra dial attempts after a
	// transient failure.
	DialRetries int
}

type Client struct {
	link.Endpoint

	mu     sync.Mutex
	cfg    Config
	logger *zerolog.Logger
	conn   net.Conn
	connID string
}

func NewClient(ctx context.Context, cfg Config) *Client {
	return &Client{
		Endpoint: link.NewEndpoint(),
		cfg:      cfg,
		logger:   log.FromCtx(ctx),
	}
}

func (c *Client) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return core.ErrConnected
	}

	addr := c.Addr()
	dialer := net.Dialer{Timeout: c.cfg.DialTimeout}

	rc := retry.NewDefaultConfig()
	rc.MaxRetries = c.cfg.DialRetries
	rc.Retryable = retry.Transient

	var conn net.Conn
	err := retry.NewRetrier(rc).Do(ctx, func() error {
		var err error
		conn, err = dialer.DialContext(ctx, "tcp", addr)
		return err
	})
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}

	c.conn = conn
	c.connID = uuid.NewString()
	c.logger.Debug().Str("conn_id", c.connID).Str("addr", addr).Msg("connection opened")

	go c.readLoop(conn, c.connID, c.Listener())
	return nil
}

// readLoop delivers inbound lines until the stream ends. Events are only
// reported while conn is still the current connection, so a local Close
// stays silent. Lines are not length-limited.
func (c *Client) readLoop(conn net.Conn, connID string, l core.ConnectionListener) {
	r := bufio.NewReader(conn)

	var err error
	for {
		var line string
		line, err = r.ReadString('\n')
		if line != "" && l != nil && c.isCurrent(conn) {
			l.MessageReceived(strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			break
		}
	}

	if !c.release(conn) {
		return
	}
	c.logger.Debug().Str("conn_id", connID).Err(err).Msg("connection ended by peer")

	if l == nil {
		return
	}
	if errors.Is(err, io.EOF) {
		l.ConnectionClosed()
		return
	}
	l.ConnectionError(err)
}

func (c *Client) isCurrent(conn net.Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn == conn
}

// release forgets conn if it is still current and reports whether it was.
func (c *Client) release(conn net.Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != conn {
		return false
	}
	c.conn.Close()
	c.conn = nil
	return true
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.logger.Debug().Str("conn_id", c.connID).Msg("connection closed")
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

func (c *Client) Send(ctx context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return core.ErrNotConnected
	}

	// A context without deadline clears any previous one.
	deadline, _ := ctx.Deadline()
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}

	if _, err := c.conn.Write([]byte(text + "\n")); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}
