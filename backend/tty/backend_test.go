// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: backend/tty/backend_test.go
// Summary: Local backend against a real pseudo-terminal.

//go:build linux || darwin

package tty_test

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelview/backend/tty"
	"github.com/framegrace/texelview/term"
	"github.com/framegrace/texelview/texel"
)

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

// openPty returns a backend on the slave side of a fresh pty, the master, and
// everything the backend writes.
func openPty(t *testing.T) (*tty.Backend, *os.File, *syncBuffer) {
	t.Helper()
	ptmx, tts, err := pty.Open()
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	t.Cleanup(func() {
		_ = ptmx.Close()
		_ = tts.Close()
	})
	require.NoError(t, pty.Setsize(ptmx, &pty.Winsize{Cols: 80, Rows: 24, X: 800, Y: 480}))

	b, err := tty.OpenDevice(tts.Name())
	require.NoError(t, err)
	out := &syncBuffer{}
	go func() { _, _ = io.Copy(out, ptmx) }()
	return b, ptmx, out
}

func eventuallyContains(t *testing.T, out *syncBuffer, want string) {
	t.Helper()
	require.Eventually(t, func() bool { return strings.Contains(out.String(), want) },
		2*time.Second, 10*time.Millisecond, "output never contained %q", want)
}

func TestInitAndCleanupSequences(t *testing.T) {
	b, _, out := openPty(t)
	require.NoError(t, b.Init())
	eventuallyContains(t, out, term.SeqEnterAltScreen+term.SeqEnableMouse)

	require.NoError(t, b.Cleanup())
	eventuallyContains(t, out, term.SeqDisableMouse+term.SeqExitAltScreen)
	require.NoError(t, b.Cleanup(), "second cleanup is a no-op")
}

func TestSizeAndAspectFromWindow(t *testing.T) {
	b, ptmx, _ := openPty(t)
	require.NoError(t, b.Init())
	defer b.Cleanup()

	cols, rows, err := b.Size()
	require.NoError(t, err)
	assert.Equal(t, 80, cols)
	assert.Equal(t, 24, rows)
	assert.InDelta(t, 2.0, b.CellAspectRatio(), 0.001)

	require.NoError(t, pty.Setsize(ptmx, &pty.Winsize{Cols: 100, Rows: 30, X: 1000, Y: 900}))
	cols, rows, err = b.Size()
	require.NoError(t, err)
	assert.Equal(t, 100, cols)
	assert.Equal(t, 30, rows)
	assert.InDelta(t, 3.0, b.CellAspectRatio(), 0.001)
}

func TestInputReachesPoll(t *testing.T) {
	b, ptmx, _ := openPty(t)
	require.NoError(t, b.Init())
	defer b.Cleanup()

	_, ok, err := b.PollEvent(10 * time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = ptmx.Write([]byte("q"))
	require.NoError(t, err)
	in, ok, err := b.PollEvent(2 * time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("q"), in.Bytes)
}

func TestFlushWritesBufferedOutput(t *testing.T) {
	b, _, out := openPty(t)
	require.NoError(t, b.Init())
	defer b.Cleanup()

	require.NoError(t, b.WriteRaw([]byte("hello")))
	require.NoError(t, b.ShowCursor(4, 1))
	require.NoError(t, b.Flush())
	eventuallyContains(t, out, "hello\x1b[2;5H\x1b[?25h")
}

func TestTerminalOnPty(t *testing.T) {
	b, ptmx, out := openPty(t)
	tm := term.New(b)
	require.NoError(t, tm.Init())
	defer tm.Close()

	w, h := tm.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)

	buf := texel.NewDrawBuffer(w)
	n := buf.MoveStr(0, "ready", texel.MakeAttr(texel.White, texel.Blue))
	tm.PutBuffer(0, 0, n, buf)
	require.NoError(t, tm.Flush())
	eventuallyContains(t, out, "ready")

	_, err := ptmx.Write([]byte("\x1b[A"))
	require.NoError(t, err)
	ev, ok, err := tm.PollEvent(2 * time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, texel.NewKey(texel.KeyUp, 0), ev)
}
