package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/devtalk/devtalk"
	bt "github.com/devtalk/devtalk/bubbletea"
	"github.com/devtalk/devtalk/http"
)

// app holds what every subcommand needs once flags are resolved.
type app struct {
	cfg    devtalk.Config
	client *http.Client
	logger *slog.Logger
	closer io.Closer
}

func (a *app) options() bt.Options {
	return bt.Options{
		Sessions:   a.client,
		Transcript: a.client,
		Generator:  a.client,
		Config:     a.cfg,
		Logger:     a.logger,
	}
}

// Close releases the log file. It is safe to call more than once.
func (a *app) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// execute runs root and releases a afterwards, also when the command fails.
// Cobra skips post-run hooks on error, so this cannot live in one.
func execute(ctx context.Context, root *cobra.Command, a *app) error {
	err := root.ExecuteContext(ctx)
	if cerr := a.Close(); err == nil {
		err = cerr
	}
	return err
}

// newRootCmd builds the command tree. out receives non-TUI output. The
// returned app is populated once flags are parsed.
func newRootCmd(env environment, out io.Writer) (*cobra.Command, *app) {
	var opts options
	a := &app{}

	root := &cobra.Command{
		Use:   "devtalk",
		Short: "Terminal client for DevTalk sessions",
		Long: `DevTalk is a terminal client for the DevTalk transcript service.
Replies from the AI participant are revealed as they stream in.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			opts.baseURLSet = flags.Changed("base-url")
			opts.debugSet = flags.Changed("debug")

			cfg, err := resolveConfig(opts, env)
			if err != nil {
				return err
			}
			logger, closer, err := openLog(cfg.LogFile, cfg.Debug)
			if err != nil {
				return err
			}
			*a = app{
				cfg:    cfg,
				logger: logger,
				closer: closer,
				client: http.New(cfg.BaseURL,
					http.WithLogger(logger),
					http.WithIdleTimeout(cfg.IdleTimeout),
					http.WithRequestTimeout(cfg.RequestTimeout),
				),
			}
			logger.Debug("config resolved", "base_url", cfg.BaseURL, "chunk_size", cfg.ChunkSize, "tick_interval", cfg.TickInterval)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), a, "")
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to config file (default: $XDG_CONFIG_HOME/devtalk/config.toml)")
	pf.StringVar(&opts.baseURL, "base-url", "", "transcript service base URL (overrides DEVTALK_BASE_URL)")
	pf.StringVar(&opts.logFile, "log-file", "", "path to log file (default: $XDG_CACHE_HOME/devtalk/devtalk.log)")
	pf.BoolVar(&opts.debug, "debug", false, "log at debug level")

	root.AddCommand(
		newChatCmd(a),
		newNewCmd(a),
		newSessionsCmd(a, out),
	)
	return root, a
}

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat SESSION_ID",
		Short: "Open a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), a, args[0])
		},
	}
}

func newNewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new TITLE",
		Short: "Create a session and open it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.RequestTimeout)
			defer cancel()
			session, err := a.client.CreateSession(ctx, args[0])
			if err != nil {
				return fmt.Errorf("create session: %w", err)
			}
			a.logger.Info("session created", "session", session.ID)
			return runTUI(cmd.Context(), a, session.ID)
		},
	}
}

func newSessionsCmd(a *app, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "Print the session list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.RequestTimeout)
			defer cancel()
			sessions, err := a.client.ListSessions(ctx)
			if err != nil {
				return fmt.Errorf("list sessions: %w", err)
			}
			return writeSessions(out, sessions)
		},
	}
}

func runTUI(ctx context.Context, a *app, sessionID string) error {
	a.logger.Info("starting", "session", sessionID)
	return bt.Run(ctx, bt.NewApp(a.options(), sessionID))
}
