package command

import (
	"context"

	"github.com/sandevgo/simplechat/internal/core"
)

type GetIDCommand struct {
	formatter *ResponseFormatter
}

func NewGetIDCommand() *GetIDCommand {
	return &GetIDCommand{formatter: NewResponseFormatter()}
}

func (c *GetIDCommand) Name() string {
	return "getid"
}

func (c *GetIDCommand) Description() string {
	return "Show the client identity"
}

func (c *GetIDCommand) Execute(ctx context.Context, sess core.Session, args []string) (string, error) {
	return c.formatter.Label("ClientID", sess.Identity()), nil
}
