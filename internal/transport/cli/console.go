package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/sandevgo/simplechat/internal/core"
	"github.com/sandevgo/simplechat/internal/service/command"
	"github.com/sandevgo/simplechat/internal/service/ui"
	"github.com/sandevgo/simplechat/pkg/log"
)

// ErrInterrupted is returned by a LineReader when the operator hits
// Ctrl+C on an empty line.
var ErrInterrupted = errors.New("interrupted")

// LineReader is the console input source.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// promptRenderer is implemented by readers that draw the prompt
// themselves.
type promptRenderer interface {
	RendersPrompt() bool
}

// Console is the read-eval loop of the chat client. It is the single
// output sink for the session, so writes are serialized: connection
// events arrive on another goroutine.
type Console struct {
	mu     sync.Mutex
	in     LineReader
	out    io.Writer
	styles ui.Styles
	sess   core.Session
	router core.CmdRouter
	quit   bool
}

func NewConsole(in LineReader, out io.Writer, sess core.Session, styles ui.Styles) *Console {
	c := &Console{
		in:     in,
		out:    out,
		styles: styles,
		sess:   sess,
	}
	c.router = command.NewRouter(c)
	return c
}

// Start runs the loop until #quit, Ctrl+C or the end of input. Neither
// ends in an error: a broken input stream is reported once and the
// connection is closed.
func (c *Console) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Debug().Str("identity", c.sess.Identity()).Msg("console started")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := c.readLine("")
		if err != nil {
			if ctx.Err() != nil {
				// Input was closed by Shutdown.
				return nil
			}
			if errors.Is(err, ErrInterrupted) {
				c.quit = c.execute(ctx, string(core.CommandPrefix)+"quit")
				return nil
			}
			logger.Debug().Err(err).Msg("console input ended")
			c.Display("Unexpected error while reading from console!")
			if err := c.sess.Shutdown(); err != nil {
				logger.Warn().Err(err).Msg("close after input failure")
			}
			return nil
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		if c.execute(ctx, line) {
			c.quit = true
			return nil
		}
	}
}

// execute handles one line and reports whether the loop should end.
func (c *Console) execute(ctx context.Context, line string) bool {
	if res, ok := c.router.Execute(ctx, c.sess, line); ok {
		if res.Output != "" {
			c.Display(res.Output)
		}
		return res.Exit
	}

	if err := c.sess.Send(ctx, line); err != nil {
		log.FromCtx(ctx).Debug().Err(err).Msg("send failed")
		if errors.Is(err, core.ErrNotConnected) {
			c.Display("Error: cannot send message, not connected to server.")
		} else {
			c.Display(fmt.Sprintf("Error: could not send message to server: %v", err))
		}
	}
	return false
}

// Quit reports whether the loop ended on #quit. Only valid after Start
// returns.
func (c *Console) Quit() bool {
	return c.quit
}

func (c *Console) Shutdown(ctx context.Context) error {
	if err := c.sess.Shutdown(); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("close on shutdown failed")
	}
	return c.in.Close()
}

// Display writes one or more lines.
func (c *Console) Display(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "Error:") {
			line = c.styles.Error(line)
		}
		fmt.Fprintln(c.out, line)
	}
}

// Incoming shows a message relayed by the server. Terminal escape
// sequences are removed so a peer cannot drive the operator's terminal.
func (c *Console) Incoming(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line := core.MessageSeparator + ansi.Strip(text)
	fmt.Fprintln(c.out, c.styles.Incoming(line))
}

// Prompt reads the second line of a two-step command.
func (c *Console) Prompt(ctx context.Context, label string) (string, error) {
	return c.readLine(label)
}

func (c *Console) readLine(prompt string) (string, error) {
	if r, ok := c.in.(promptRenderer); ok && r.RendersPrompt() {
		return c.in.ReadLine(prompt)
	}
	if prompt != "" {
		c.mu.Lock()
		fmt.Fprint(c.out, prompt)
		c.mu.Unlock()
	}
	return c.in.ReadLine(prompt)
}
