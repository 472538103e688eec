package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sandevgo/simplechat/internal/config"
	"github.com/sandevgo/simplechat/internal/core"
	"github.com/sandevgo/simplechat/internal/service/ui"
	"github.com/sandevgo/simplechat/pkg/log"
	"github.com/spf13/cobra"
)

// exitError carries a process exit code out of a cobra command.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

type rootOptions struct {
	debug   bool
	offline bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   core.AppName + " <identity> [port] [host]",
		Short: "Console client for a line-based chat server",
		Long: `simplechat connects to a chat server and relays console lines to it.
Lines starting with # are commands, try #help once connected.`,
		Version:       core.AppVersion,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, args, opts)
		},
	}

	// Global flags available to all subcommands
	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", config.IsDebug(), "enable debug logging")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "start without connecting, use #login later")

	cmd.AddCommand(newSetupCmd(opts))
	CustomizeHelp(cmd)
	return cmd
}

func Execute() {
	err := newRootCmd().Execute()
	if err == nil {
		return
	}
	var ee *exitError
	if errors.As(err, &ee) {
		os.Exit(ee.code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

func setupLogger(ctx context.Context, opts *rootOptions) (context.Context, func()) {
	isDebug := opts.debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}

func CustomizeHelp(rootCmd *cobra.Command) {
	cobra.AddTemplateFunc("StyleTitle", func(s string) string { return ui.TitleStyle.Render(s) })
	cobra.AddTemplateFunc("StyleUsage", func(s string) string { return ui.UsageStyle.Render(s) })
	cobra.AddTemplateFunc("StyleFlag", func(s string) string { return ui.FlagStyle.Render(s) })
	cobra.AddTemplateFunc("StyleDesc", func(s string) string { return ui.DescStyle.Render(s) })

	template := `{{with .Long}}{{.}}
{{end}}
{{StyleTitle "USAGE"}}
  {{StyleUsage .UseLine}}
{{if gt (len .Commands) 0}}{{StyleTitle "AVAILABLE COMMANDS"}}
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding}} {{StyleDesc .Short}}{{end}}
{{end}}{{end}}
{{if .HasAvailableLocalFlags}}{{StyleTitle "FLAGS"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces | StyleFlag}}
{{end}}
`
	rootCmd.SetHelpTemplate(template)
}
