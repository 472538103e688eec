// Package websocket implements the chat connection over a WebSocket,
// one text frame per message.
package websocket

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/sandevgo/simplechat/internal/core"
	"github.com/sandevgo/simplechat/internal/transport/link"
	"github.com/sandevgo/simplechat/pkg/log"
	"github.com/sandevgo/simplechat/pkg/retry"
)

const closeWait = time.Second

type Config struct {
	DialTimeout time.Duration
	DialRetries int
	// Path is the request path of the chat endpoint, "/" when empty.
	Path string
}

type Client struct {
	link.Endpoint

	mu     sync.Mutex
	cfg    Config
	logger *zerolog.Logger
	conn   *websocket.Conn
	connID string
}

func NewClient(ctx context.Context, cfg Config) *Client {
	if cfg.Path == "" {
		cfg.Path = "/"
	}
	return &Client{
		Endpoint: link.NewEndpoint(),
		cfg:      cfg,
		logger:   log.FromCtx(ctx),
	}
}

func (c *Client) endpoint() string {
	u := url.URL{
		Scheme: "ws",
		Host:   c.Addr(),
		Path:   c.cfg.Path,
	}
	return u.String()
}

func (c *Client) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return core.ErrConnected
	}

	endpoint := c.endpoint()
	dialer := websocket.Dialer{
		Proxy:            websocket.DefaultDialer.Proxy,
		HandshakeTimeout: c.cfg.DialTimeout,
	}

	rc := retry.NewDefaultConfig()
	rc.MaxRetries = c.cfg.DialRetries
	rc.Retryable = retry.Transient

	var conn *websocket.Conn
	err := retry.NewRetrier(rc).Do(ctx, func() error {
		var (
			resp *http.Response
			err  error
		)
		conn, resp, err = dialer.DialContext(ctx, endpoint, nil)
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("dial %s: %w", endpoint, err)
	}

	c.conn = conn
	c.connID = uuid.NewString()
	c.logger.Debug().Str("conn_id", c.connID).Str("url", endpoint).Msg("connection opened")

	go c.readLoop(conn, c.connID, c.Listener())
	return nil
}

func (c *Client) readLoop(conn *websocket.Conn, connID string, l core.ConnectionListener) {
	var err error
	for {
		var (
			kind int
			data []byte
		)
		kind, data, err = conn.ReadMessage()
		if err != nil {
			break
		}
		if kind != websocket.TextMessage {
			continue
		}
		if l != nil && c.isCurrent(conn) {
			l.MessageReceived(string(data))
		}
	}

	if !c.release(conn) {
		return
	}
	c.logger.Debug().Str("conn_id", connID).Err(err).Msg("connection ended by peer")

	if l == nil {
		return
	}
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		l.ConnectionClosed()
		return
	}
	l.ConnectionError(err)
}

func (c *Client) isCurrent(conn *websocket.Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn == conn
}

func (c *Client) release(conn *websocket.Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != conn {
		return false
	}
	c.conn.Close()
	c.conn = nil
	return true
}

// Close sends a close frame and drops the connection without waiting
// for the peer's reply.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	conn := c.conn
	c.conn = nil

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "logoff")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeWait))

	err := conn.Close()
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

	deadline, _ := ctx.Deadline()
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}
