// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelview/main.go
// Summary: Command line entry point: local demo, session server and client.
// Usage: texelview demo | serve | connect | status | config

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/framegrace/texelview/app"
	"github.com/framegrace/texelview/backend/remote"
	"github.com/framegrace/texelview/backend/tty"
	"github.com/framegrace/texelview/client"
	"github.com/framegrace/texelview/server"
	"github.com/framegrace/texelview/term"
	"github.com/framegrace/texelview/texel"
)

type globalFlags struct {
	configPath string
	verbose    bool
}

func main() {
	var g globalFlags

	rootCmd := &cobra.Command{
		Use:   "texelview",
		Short: "Terminal view engine demo, server and client",
		Long: `texelview runs a small windowed application on a character terminal,
either directly on the local tty or as sessions served to remote clients.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(g.verbose)
		},
	}
	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default: the user config texelview.toml)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable debug logging on stderr")

	rootCmd.AddCommand(demoCmd(&g), serveCmd(&g), connectCmd(&g), statusCmd(&g), configCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	texel.SetVerboseLogging(verbose)
	term.SetVerboseLogging(verbose)
	app.SetVerboseLogging(verbose)
	server.SetVerboseLogging(verbose)
	client.SetVerboseLogging(verbose)
	remote.SetVerboseLogging(verbose)
	tty.SetVerboseLogging(verbose)
}

func demoCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the demo application on this terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(g.configPath)
			if err != nil {
				return err
			}
			b, err := tty.Open()
			if err != nil {
				return err
			}
			tm := term.New(b, s.termOpts...)
			if err := tm.Init(); err != nil {
				return err
			}
			defer tm.Close()
			return runDemo(cmd.Context(), tm, s)
		},
	}
}

func serveCmd(g *globalFlags) *cobra.Command {
	var network, address string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo application to remote clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(g.configPath)
			if err != nil {
				return err
			}
			s.override(network, address)
			srv := server.NewServer(s.name, func(ctx context.Context, tm *term.Terminal) error {
				return runDemo(ctx, tm, s)
			}, s.termOpts...)
			slog.Info("serving", "network", s.network, "address", s.address)
			return srv.ListenAndServe(cmd.Context(), s.network, s.address)
		},
	}
	cmd.Flags().StringVar(&network, "network", "", "listen network: unix or tcp")
	cmd.Flags().StringVar(&address, "address", "", "listen address or socket path")
	return cmd
}

func connectCmd(g *globalFlags) *cobra.Command {
	var network, address, name string
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Attach this terminal to a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(g.configPath)
			if err != nil {
				return err
			}
			s.override(network, address)
			conn, err := dial(cmd.Context(), s.network, s.address)
			if err != nil {
				return err
			}
			return client.Run(cmd.Context(), conn, os.Stdin, os.Stdout, client.Options{Name: name})
		},
	}
	cmd.Flags().StringVar(&network, "network", "", "server network: unix or tcp")
	cmd.Flags().StringVar(&address, "address", "", "server address or socket path")
	cmd.Flags().StringVar(&name, "name", "texelview-client", "client name sent in the handshake")
	return cmd
}

func statusCmd(g *globalFlags) *cobra.Command {
	var network, address string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report whether a server is accepting connections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(g.configPath)
			if err != nil {
				return err
			}
			s.override(network, address)
			if err := checkServer(cmd.Context(), s.network, s.address, s.healthTimeout); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "not running (%s %s): %v\n", s.network, s.address, err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "running (%s %s)\n", s.network, s.address)
			return nil
		},
	}
	cmd.Flags().StringVar(&network, "network", "", "server network: unix or tcp")
	cmd.Flags().StringVar(&address, "address", "", "server address or socket path")
	return cmd
}
