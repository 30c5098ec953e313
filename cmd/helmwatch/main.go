package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"helmwatch/internal/bootstrap"
	"helmwatch/internal/mcptools"
	"helmwatch/internal/platform/config"
	"helmwatch/internal/server"
)

const version = "0.4.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "helmwatch",
		Short:         "Presence and session monitoring for a one-captain crew",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", ".", "data directory holding .helmwatch/ and logbook/")

	root.AddCommand(newWatchCmd(&dataDir))
	root.AddCommand(newServeCmd(&dataDir))
	root.AddCommand(newMCPCmd(&dataDir))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newCrewCmd(&dataDir))
	root.AddCommand(newAuditCmd(&dataDir))
	root.AddCommand(newVitalsCmd(&dataDir))
	root.AddCommand(newLogsCmd(&dataDir))
	root.AddCommand(newDevModeCmd(&dataDir))
	root.AddCommand(newConnectionCmd(&dataDir))
	root.AddCommand(newPositionCmd(&dataDir))
	return root
}

func loadEngine(dataDir string) (*bootstrap.Engine, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, bootstrap.Options{})
}

// withEngine opens the engine for one command and closes it afterwards,
// which also drains pending audit writes.
func withEngine(dataDir string, fn func(*bootstrap.Engine) error) error {
	engine, err := loadEngine(dataDir)
	if err != nil {
		return err
	}
	runErr := fn(engine)
	if err := engine.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func newWatchCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the helm dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("watch needs an interactive terminal")
			}
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				return bootstrap.RunTUI(cmd.Context(), engine)
			})
		},
	}
}

func newServeCmd(dataDir *string) *cobra.Command {
	var addr string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the engine headless with the read-only status API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				if err := engine.Attach(cmd.Context()); err != nil {
					return err
				}
				defer engine.Detach()
				listen := addr
				if listen == "" {
					listen = engine.Settings.StatusAddr
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "status api on http://%s\n", listen)
				return server.Serve(cmd.Context(), listen, engine.Readers(), engine.Logger())
			})
		},
	}
	serve.Flags().StringVar(&addr, "addr", "", "listen address (defaults to status_addr in settings)")
	return serve
}

func newMCPCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve status tools over MCP on stdin/stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				if err := engine.Attach(cmd.Context()); err != nil {
					return err
				}
				defer engine.Detach()
				return mcptools.ServeStdio(cmd.Context(), mcptools.New(engine.Readers(), version), os.Stdin, os.Stdout)
			})
		},
	}
}
