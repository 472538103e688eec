package command

import (
	"github.com/sandevgo/simplechat/internal/core"
)

func NewCommands(prompter core.Prompter) []core.Command {
	return []core.Command{
		NewQuitCommand(),
		NewLogoffCommand(),
		NewLoginCommand(),
		NewSetHostCommand(prompter),
		NewSetPortCommand(prompter),
		NewGetHostCommand(),
		NewGetPortCommand(),
		NewGetIDCommand(),
	}
}

// NewRouter builds the full console vocabulary, help included.
func NewRouter(prompter core.Prompter) *Router {
	r := New(NewCommands(prompter))
	r.Register(NewHelpCommand(r))
	return r
}
