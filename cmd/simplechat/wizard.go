package main

import (
	"fmt"

	"github.com/sandevgo/simplechat/internal/config"
	"github.com/sandevgo/simplechat/internal/core"
	"github.com/sandevgo/simplechat/internal/service/installer"
	"github.com/sandevgo/simplechat/pkg/log"
	"github.com/spf13/cobra"
)

func newSetupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "setup",
		Short:        "Save a default identity and server to the runtime .env",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, flushLog := setupLogger(cmd.Context(), opts)
			defer flushLog()

			logger := log.FromCtx(ctx)
			envPath := config.GetEnvPath()
			logger.Debug().Str("path", envPath).Msg("starting setup wizard")

			st, err := installer.RunWizard(envPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s.\nRun '%s' to connect as %s.\n",
				envPath, core.AppName, st.Profile.Identity)
			return nil
		},
	}
}
