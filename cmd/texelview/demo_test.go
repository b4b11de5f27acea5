// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelview/demo_test.go
// Summary: Drives the demo application and settings loading with a scripted terminal.

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelview/config"
	"github.com/framegrace/texelview/term"
	"github.com/framegrace/texelview/term/termtest"
	"github.com/framegrace/texelview/texel"
)

func newDemoTerminal(t *testing.T) (*demo, *termtest.Backend) {
	t.Helper()
	b := termtest.New(80, 25)
	tm := term.New(b, term.WithClock(b.Clock.Now))
	require.NoError(t, tm.Init())
	t.Cleanup(func() { _ = tm.Close() })
	return newDemo(tm, settingsFrom(config.Config{})), b
}

func TestDemoOpensWindows(t *testing.T) {
	dm, b := newDemoTerminal(t)
	b.Feed("\x1bOQ")
	b.Feed("\x1bx")
	require.NoError(t, dm.app.Run(context.Background()))
	assert.Equal(t, 3, dm.app.Desktop().Len())
	assert.Equal(t, 2, dm.windows)
}

// Every script ends with the keystroke that should quit, so nothing may be
// left pending once Run returns.
func TestDemoQuitDialog(t *testing.T) {
	cases := []struct {
		name  string
		input []string
	}{
		{"yes by default", []string{"\x1b[20~", "\r"}},
		{"enter picks yes whatever is focused", []string{"\x1b[20~", "\t\r"}},
		{"no keeps running", []string{"\x1b[20~", "n", "\x1bx"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dm, b := newDemoTerminal(t)
			for _, in := range tc.input {
				b.FeedAfter(10*time.Millisecond, in)
			}
			require.NoError(t, dm.app.Run(context.Background()))
			assert.Zero(t, b.Pending())
		})
	}
}

func TestSettingsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texelview.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[terminal]
escape_timeout_ms = 50

[server]
network = "tcp"
address = "127.0.0.1:7070"

[palette]
"dialog.text" = "yellow on blue"
`), 0o644))

	s, err := loadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "tcp", s.network)
	assert.Equal(t, "127.0.0.1:7070", s.address)
	assert.Equal(t, "texelview", s.name)

	b := termtest.New(10, 2)
	tm := term.New(b, s.termOpts...)
	assert.Equal(t, texel.MakeAttr(texel.Yellow, texel.Blue), tm.Theme().Root[texel.ColorDialogText])
}

func TestSettingsDefaultSocket(t *testing.T) {
	s := settingsFrom(config.Config{})
	assert.Equal(t, "unix", s.network)
	assert.Equal(t, config.DefaultSocketPath(), s.address)

	assert.True(t, s.clock)
	assert.Equal(t, defaultHealthTimeout, s.healthTimeout)

	s.override("tcp", ":9000")
	assert.Equal(t, "tcp", s.network)
	assert.Equal(t, ":9000", s.address)
}

func TestDemoWithoutClock(t *testing.T) {
	b := termtest.New(80, 25)
	tm := term.New(b, term.WithClock(b.Clock.Now))
	require.NoError(t, tm.Init())
	t.Cleanup(func() { _ = tm.Close() })

	s := settingsFrom(config.Config{"demo": config.Section{"clock": false}})
	dm := newDemo(tm, s)
	assert.Nil(t, dm.clock)
	assert.Equal(t, 2, dm.app.Len(), "desktop and status line only")

	b.Feed("\x1bx")
	require.NoError(t, dm.app.Run(context.Background()))
}
