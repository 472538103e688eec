package command

import (
	"context"

	"github.com/sandevgo/simplechat/internal/core"
)

type lister interface {
	ListCommands() []core.Command
}

type HelpCommand struct {
	commands  lister
	formatter *ResponseFormatter
}

func NewHelpCommand(commands lister) *HelpCommand {
	return &HelpCommand{
		commands:  commands,
		formatter: NewResponseFormatter(),
	}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "List available commands"
}

func (c *HelpCommand) Execute(ctx context.Context, sess core.Session, args []string) (string, error) {
	cmds := c.commands.ListCommands()
	items := make([][2]string, len(cmds))
	for i, cmd := range cmds {
		items[i] = [2]string{string(core.CommandPrefix) + cmd.Name(), cmd.Description()}
	}
	return c.formatter.List(items), nil
}
