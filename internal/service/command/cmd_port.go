package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sandevgo/simplechat/internal/core"
)

type SetPortCommand struct {
	prompter  core.Prompter
	formatter *ResponseFormatter
}

func NewSetPortCommand(prompter core.Prompter) *SetPortCommand {
	return &SetPortCommand{
		prompter:  prompter,
		formatter: NewResponseFormatter(),
	}
}

func (c *SetPortCommand) Name() string {
	return "setport"
}

func (c *SetPortCommand) Description() string {
	return "Change the server port (while logged off)"
}

func (c *SetPortCommand) Execute(ctx context.Context, sess core.Session, args []string) (string, error) {
	const connected = "Cannot set port while connected."

	if sess.State() == core.StateConnected {
		return c.formatter.Failure(connected), nil
	}

	raw, err := argOrPrompt(ctx, c.prompter, args, "Enter port: ")
	if err != nil {
		return "", fmt.Errorf("read port: %w", err)
	}

	port, err := strconv.Atoi(raw)
	if err != nil {
		return c.formatter.Failure(fmt.Sprintf("invalid port %q.", raw)), nil
	}

	if err := sess.SetPort(port); err != nil {
		switch {
		case errors.Is(err, core.ErrConnected):
			return c.formatter.Failure(connected), nil
		case errors.Is(err, core.ErrInvalidPort):
			return c.formatter.Failure(fmt.Sprintf("invalid port %q.", raw)), nil
		}
		return "", err
	}
	return c.formatter.Success("Port set."), nil
}

type GetPortCommand struct {
	formatter *ResponseFormatter
}

func NewGetPortCommand() *GetPortCommand {
	return &GetPortCommand{formatter: NewResponseFormatter()}
}

func (c *GetPortCommand) Name() string {
	return "getport"
}

func (c *GetPortCommand) Description() string {
	return "Show the server port"
}

func (c *GetPortCommand) Execute(ctx context.Context, sess core.Session, args []string) (string, error) {
	return c.formatter.Label("Port", strconv.Itoa(sess.Port())), nil
}
