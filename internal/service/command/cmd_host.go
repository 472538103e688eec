package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/simplechat/internal/core"
)

type SetHostCommand struct {
	prompter  core.Prompter
	formatter *ResponseFormatter
}

func NewSetHostCommand(prompter core.Prompter) *SetHostCommand {
	return &SetHostCommand{
		prompter:  prompter,
		formatter: NewResponseFormatter(),
	}
}

func (c *SetHostCommand) Name() string {
	return "sethost"
}

func (c *SetHostCommand) Description() string {
	return "Change the server host (while logged off)"
}

func (c *SetHostCommand) Execute(ctx context.Context, sess core.Session, args []string) (string, error) {
	const connected = "Cannot set host while connected."

	if sess.State() == core.StateConnected {
		return c.formatter.Failure(connected), nil
	}

	host, err := argOrPrompt(ctx, c.prompter, args, "Enter host name: ")
	if err != nil {
		return "", fmt.Errorf("read host: %w", err)
	}
	if host == "" {
		return c.formatter.Failure("host must not be empty."), nil
	}

	if err := sess.SetHost(host); err != nil {
		if errors.Is(err, core.ErrConnected) {
			return c.formatter.Failure(connected), nil
		}
		return "", err
	}
	return c.formatter.Success("Host set."), nil
}

type GetHostCommand struct {
	formatter *ResponseFormatter
}

func NewGetHostCommand() *GetHostCommand {
	return &GetHostCommand{formatter: NewResponseFormatter()}
}

func (c *GetHostCommand) Name() string {
	return "gethost"
}

func (c *GetHostCommand) Description() string {
	return "Show the server host"
}

func (c *GetHostCommand) Execute(ctx context.Context, sess core.Session, args []string) (string, error) {
	return c.formatter.Label("Host", sess.Host()), nil
}

// argOrPrompt returns the inline argument, or asks for one on a second
// line when the command was given bare.
func argOrPrompt(ctx context.Context, p core.Prompter, args []string, label string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if p == nil {
		return "", nil
	}
	v, err := p.Prompt(ctx, label)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(v), nil
}
