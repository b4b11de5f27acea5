// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelview/settings.go
// Summary: Turns the TOML configuration into terminal, application and server options.

package main

import (
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/framegrace/texelview/app"
	"github.com/framegrace/texelview/config"
	"github.com/framegrace/texelview/term"
	"github.com/framegrace/texelview/texel"
)

type settings struct {
	name          string
	network       string
	address       string
	healthTimeout time.Duration
	clock         bool
	termOpts      []term.Option
	appOpts       []app.Option
}

// loadSettings reads path, or the user config when path is empty. A bad
// palette entry is logged and skipped; an unreadable file is an error.
func loadSettings(path string) (settings, error) {
	var cfg config.Config
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return settings{}, errors.Wrapf(err, "load config %s", path)
		}
	} else {
		cfg = config.System()
		if err := config.Err(); err != nil {
			slog.Warn("using default configuration", "err", err)
		}
	}
	return settingsFrom(cfg), nil
}

func settingsFrom(cfg config.Config) settings {
	theme, err := cfg.Theme(texel.DefaultTheme())
	if err != nil {
		slog.Warn("palette overrides skipped", "err", err)
	}
	s := settings{
		name:    cfg.GetString("server", "name", "texelview"),
		network: cfg.GetString("server", "network", "unix"),
		address: cfg.GetString("server", "address", ""),
		clock:   cfg.GetBool("demo", "clock", true),
		termOpts: []term.Option{
			term.WithEscapeTimeout(cfg.GetDuration("terminal", "escape_timeout_ms", term.DefaultEscapeTimeout)),
			term.WithDoubleClick(cfg.GetDuration("terminal", "double_click_ms", term.DefaultDoubleClick)),
			term.WithTheme(theme),
		},
		appOpts: []app.Option{
			app.WithPollTimeout(cfg.GetDuration("terminal", "poll_timeout_ms", texel.DefaultPollTimeout)),
			app.WithDoubleEscape(cfg.GetDuration("terminal", "double_escape_ms", texel.DefaultDoubleEscape)),
		},
	}
	s.healthTimeout = defaultHealthTimeout
	if secs := cfg.GetFloat("server", "health_timeout_s", 0); secs > 0 {
		s.healthTimeout = time.Duration(secs * float64(time.Second))
	}
	s.override("", "")
	return s
}

// override applies command line values over the configured address. An
// empty unix address means the per-user runtime socket.
func (s *settings) override(network, address string) {
	if network != "" {
		s.network = network
	}
	if address != "" {
		s.address = address
	}
	if s.address == "" && s.network == "unix" {
		s.address = config.DefaultSocketPath()
	}
}
