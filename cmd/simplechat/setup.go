package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/sandevgo/simplechat/internal/config"
	"github.com/sandevgo/simplechat/internal/core"
	"github.com/sandevgo/simplechat/internal/service/state"
	"github.com/sandevgo/simplechat/internal/service/ui"
	"github.com/sandevgo/simplechat/internal/transport/cli"
	"github.com/sandevgo/simplechat/internal/transport/tcp"
	"github.com/sandevgo/simplechat/internal/transport/websocket"
	"github.com/sandevgo/simplechat/pkg/log"
	"github.com/sandevgo/simplechat/pkg/srv"
	"github.com/spf13/cobra"
)

const (
	msgNoIdentity  = "ERROR - No login ID specified.  Connection aborted."
	msgCantConnect = "Error: Can't setup connection! Terminating client."
)

func runChat(cmd *cobra.Command, args []string, opts *rootOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var flushLog func()
	ctx, flushLog = setupLogger(ctx, opts)
	defer flushLog()

	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetEnvPath()); err != nil {
		logger.Warn().Err(err).Msg("continuing without .env")
	}

	cfg, err := config.ParseAppConfig()
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	sc, err := config.ResolveSession(args, cfg)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), msgNoIdentity)
		return &exitError{code: 1}
	}

	in, out, styled, err := newLineReader(cmd, cfg)
	if err != nil {
		return err
	}

	code := startChat(ctx, chatOptions{
		cfg:     cfg,
		session: sc,
		offline: opts.offline,
		in:      in,
		out:     out,
		final:   cmd.OutOrStdout(),
		styles:  ui.NewStyles(styled),
	})
	if code != 0 {
		return &exitError{code: code}
	}
	return nil
}

type chatOptions struct {
	cfg     core.AppConfig
	session config.SessionConfig
	offline bool
	in      cli.LineReader
	out     io.Writer
	// final receives the closing line once the console is gone.
	final  io.Writer
	styles ui.Styles
}

// startChat wires the connection, session and console, runs them until
// the console stops and returns the process exit code.
func startChat(ctx context.Context, o chatOptions) int {
	logger := log.FromCtx(ctx)

	conn, err := newConnection(ctx, o.cfg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create connection")
		fmt.Fprintln(o.out, msgCantConnect)
		o.in.Close()
		return 1
	}

	sess := state.NewSession(ctx, conn, o.session.Identity, o.session.Host, o.session.Port)
	console := cli.NewConsole(o.in, o.out, sess, o.styles)
	sess.SetDisplay(console)

	if !o.offline && o.cfg.IsAutoLogin() {
		if err := sess.Login(ctx); err != nil {
			logger.Error().Err(err).Msg("startup connection failed")
			console.Display(msgCantConnect)
			o.in.Close()
			return 1
		}
		logger.Debug().Str("addr", sess.Address()).Msg("connected")
	}

	services := []srv.Service{
		srv.NewCleanup(sess.Shutdown),
		console,
	}
	if err := srv.Run(ctx, services); err != nil {
		logger.Error().Err(err).Msg("chat stopped with error")
		return 1
	}

	if !console.Quit() {
		fmt.Fprintln(o.final, "ClientID: "+sess.Identity())
	}
	return 0
}

func newConnection(ctx context.Context, cfg core.AppConfig) (core.Connection, error) {
	switch cfg.GetTransport() {
	case config.TransportTCP:
		return tcp.NewClient(ctx, tcp.Config{
			DialTimeout: cfg.GetDialTimeout(),
			DialRetries: cfg.GetDialRetries(),
		}), nil
	case config.TransportWebSocket:
		return websocket.NewClient(ctx, websocket.Config{
			DialTimeout: cfg.GetDialTimeout(),
			DialRetries: cfg.GetDialRetries(),
			Path:        cfg.GetWSPath(),
		}), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.GetTransport())
	}
}

// newLineReader uses readline on an interactive terminal and a plain
// line scanner otherwise, so piped scripts work unchanged.
func newLineReader(cmd *cobra.Command, cfg core.AppConfig) (cli.LineReader, io.Writer, bool, error) {
	stdin, out := cmd.InOrStdin(), cmd.OutOrStdout()

	if stdin == os.Stdin && out == os.Stdout && isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		rl, err := cli.NewReadLine(cfg.GetHistoryPath())
		if err != nil {
			return nil, nil, false, fmt.Errorf("init readline: %w", err)
		}
		return rl, rl.Stdout(), true, nil
	}

	styled := out == os.Stdout && isTerminal(os.Stdout)
	return cli.NewScanner(stdin), out, styled, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func initEnv(ctx context.Context, envFile string) error {
	logger := log.FromCtx(ctx)

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
