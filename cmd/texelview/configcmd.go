// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelview/configcmd.go
// Summary: Inspect and edit the user configuration file.
// Usage: texelview config show | texelview config set demo.clock false

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/framegrace/texelview/config"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the user configuration (texelview.toml)",
	}
	cmd.AddCommand(configShowCmd(), configSetCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the configuration with defaults filled in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Reload(); err != nil {
				return errors.Wrap(err, "reload config")
			}
			path, err := config.SystemPath()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", path)
			return toml.NewEncoder(out).Encode(config.System())
		},
	}
}

func configSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set SECTION.KEY VALUE",
		Short: "Store one value and save the file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, key, ok := strings.Cut(args[0], ".")
			if !ok || section == "" || key == "" {
				return errors.Errorf("key %q is not of the form section.key", args[0])
			}
			// A file that does not parse is left alone rather than overwritten.
			if err := config.Reload(); err != nil {
				return errors.Wrap(err, "reload config")
			}
			cfg := config.Clone(config.System())
			cfg.Set(section, key, parseValue(args[1]))
			config.SetSystem(cfg)
			if err := config.SaveSystem(); err != nil {
				return errors.Wrap(err, "save config")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s.%s = %s\n", section, key, args[1])
			return nil
		},
	}
}

// parseValue types a command line value the way TOML would decode it.
func parseValue(s string) interface{} {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
