package command

import (
	"context"

	"github.com/sandevgo/simplechat/internal/core"
	"github.com/sandevgo/simplechat/pkg/log"
)

type QuitCommand struct {
	formatter *ResponseFormatter
}

func NewQuitCommand() *QuitCommand {
	return &QuitCommand{formatter: NewResponseFormatter()}
}

func (c *QuitCommand) Name() string {
	return "quit"
}

func (c *QuitCommand) Description() string {
	return "Disconnect and exit"
}

func (c *QuitCommand) Terminates() bool {
	return true
}

// Execute closes the connection on a best-effort basis; a failing close
// is logged and never keeps the client from exiting.
func (c *QuitCommand) Execute(ctx context.Context, sess core.Session, args []string) (string, error) {
	if err := sess.Shutdown(); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("close on quit failed")
	}
	return c.formatter.Combine(
		"Disconnecting from server...",
		"Exiting. Goodbye.",
	), nil
}
