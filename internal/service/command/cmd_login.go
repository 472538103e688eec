package command

import (
	"context"
	"errors"

	"github.com/sandevgo/simplechat/internal/core"
)

type LoginCommand struct {
	formatter *ResponseFormatter
}

func NewLoginCommand() *LoginCommand {
	return &LoginCommand{formatter: NewResponseFormatter()}
}

func (c *LoginCommand) Name() string {
	return "login"
}

func (c *LoginCommand) Description() string {
	return "Connect to the current host and port"
}

func (c *LoginCommand) Execute(ctx context.Context, sess core.Session, args []string) (string, error) {
	if err := sess.Login(ctx); err != nil {
		if errors.Is(err, core.ErrConnected) {
			return c.formatter.Failure("you are already logged in."), nil
		}
		return "", err
	}
	return c.formatter.Success("Logged in."), nil
}

type LogoffCommand struct {
	formatter *ResponseFormatter
}

func NewLogoffCommand() *LogoffCommand {
	return &LogoffCommand{formatter: NewResponseFormatter()}
}

func (c *LogoffCommand) Name() string {
	return "logoff"
}

func (c *LogoffCommand) Description() string {
	return "Disconnect from the server"
}

func (c *LogoffCommand) Execute(ctx context.Context, sess core.Session, args []string) (string, error) {
	if err := sess.Logoff(); err != nil {
		if errors.Is(err, core.ErrNotConnected) {
			return c.formatter.Failure("you are not logged in."), nil
		}
		return "", err
	}
	return c.formatter.Success("Disconnected from server."), nil
}
