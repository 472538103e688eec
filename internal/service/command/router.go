package command

import (
	"context"
	"sort"
	"strings"

	"github.com/sandevgo/simplechat/internal/core"
	"github.com/sandevgo/simplechat/pkg/log"
)

// Router maps command names to their handlers. Lookups are
// case-insensitive.
type Router struct {
	commands  map[string]core.Command
	formatter *ResponseFormatter
}

func New(commands []core.Command) *Router {
	c := &Router{
		commands:  make(map[string]core.Command),
		formatter: NewResponseFormatter(),
	}

	for _, cmd := range commands {
		c.Register(cmd)
	}
	return c
}

func (c *Router) Register(cmd core.Command) {
	c.commands[strings.ToLower(cmd.Name())] = cmd
}

// IsCommand reports whether the line is addressed to the router rather
// than being a chat message.
func IsCommand(input string) bool {
	return len(input) > 0 && input[0] == core.CommandPrefix
}

// Execute runs the command on the line. The second result is false when
// the line is not a command at all.
func (c *Router) Execute(ctx context.Context, sess core.Session, input string) (core.Result, bool) {
	if !IsCommand(input) {
		return core.Result{}, false
	}

	parts := strings.Fields(input[1:])
	if len(parts) == 0 {
		return core.Result{Output: c.formatter.Unknown(input)}, true
	}
	name := strings.ToLower(parts[0])
	args := parts[1:]

	cmd, ok := c.commands[name]
	if !ok {
		return core.Result{Output: c.formatter.Unknown(input)}, true
	}

	log.FromCtx(ctx).Debug().Str("command", name).Strs("args", args).Msg("executing command")

	result, err := cmd.Execute(ctx, sess, args)
	if err != nil {
		return core.Result{Output: c.formatter.Error(err)}, true
	}

	res := core.Result{Output: result}
	if t, ok := cmd.(core.Terminator); ok && t.Terminates() {
		res.Exit = true
	}
	return res, true
}

func (c *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Name() < res[j].Name()
	})
	return res
}
