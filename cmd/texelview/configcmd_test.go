// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelview/configcmd_test.go
// Summary: config show/set against a temporary user config directory.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelview/config"
)

func runConfig(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := configCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigSetPersistsTypedValues(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := runConfig(t, "set", "demo.clock", "false")
	require.NoError(t, err)
	_, err = runConfig(t, "set", "server.health_timeout_s", "0.5")
	require.NoError(t, err)

	path, err := config.SystemPath()
	require.NoError(t, err)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.GetBool("demo", "clock", true))
	assert.Equal(t, 0.5, cfg.GetFloat("server", "health_timeout_s", 0))
	assert.Equal(t, 300, cfg.GetInt("terminal", "escape_timeout_ms", 0), "defaults are kept")

	s := settingsFrom(cfg)
	assert.False(t, s.clock)
	assert.Equal(t, int64(500), s.healthTimeout.Milliseconds())

	out, err := runConfig(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.Contains(t, out, "clock = false")
}

func TestConfigSetRejectsBadKeyAndBrokenFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := runConfig(t, "set", "clock", "true")
	assert.Error(t, err)

	path, err := config.SystemPath()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[demo\nclock = "), 0o644))
	_, err = runConfig(t, "set", "demo.clock", "true")
	assert.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[demo\nclock = ", string(data), "a file that does not parse is not overwritten")
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, int64(42), parseValue("42"))
	assert.Equal(t, 1.5, parseValue("1.5"))
	assert.Equal(t, true, parseValue("true"))
	assert.Equal(t, "blue on black", parseValue("blue on black"))
}
