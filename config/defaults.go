// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the system configuration.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("terminal", Section{
		"escape_timeout_ms": 300,
		"double_click_ms":   400,
		"double_escape_ms":  500,
		"poll_timeout_ms":   100,
	})
	cfg.RegisterDefaults("server", Section{
		"name":    "texelview",
		"network": "unix",
		"address": "",
		// Seconds; fractional values are allowed.
		"health_timeout_s": 2.0,
	})
	cfg.RegisterDefaults("demo", Section{
		"clock": true,
	})
	cfg.RegisterDefaults("palette", Section{})
}
