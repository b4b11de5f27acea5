// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/terminal_test.go
// Summary: Exercises frame diffing, the clip stack, event re-queueing and resize.

package term_test

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelview/term"
	"github.com/framegrace/texelview/term/termtest"
	"github.com/framegrace/texelview/texel"
)

func newTerminal(t *testing.T, cols, rows int, opts ...term.Option) (*term.Terminal, *termtest.Backend) {
	t.Helper()
	b := termtest.New(cols, rows)
	opts = append([]term.Option{term.WithClock(b.Clock.Now)}, opts...)
	tm := term.New(b, opts...)
	require.NoError(t, tm.Init())
	t.Cleanup(func() { _ = tm.Close() })
	return tm, b
}

func TestFlushUnchangedFrameWritesNothing(t *testing.T) {
	tm, b := newTerminal(t, 10, 3)
	draw := func() {
		texel.FillRect(tm, texel.RectAt(0, 0, 10, 3), texel.Cell{Ch: '.', Attr: texel.MakeAttr(texel.White, texel.Blue)})
		texel.FillRect(tm, texel.RectAt(2, 1, 3, 1), texel.Cell{Ch: '#', Attr: texel.MakeAttr(texel.Yellow, texel.Blue)})
	}

	draw()
	first := tm.Frame()
	require.NoError(t, tm.Flush())
	require.NotEmpty(t, b.Writes)

	b.ResetWrites()
	draw()
	assert.Equal(t, first, tm.Frame())
	require.NoError(t, tm.Flush())
	assert.Empty(t, b.Writes)
	assert.Equal(t, 2, b.Flushes)
}

func TestFlushBatchesContiguousRuns(t *testing.T) {
	tm, b := newTerminal(t, 10, 2)
	require.NoError(t, tm.Flush())
	b.ResetWrites()

	attr := texel.MakeAttr(texel.Black, texel.Green)
	tm.SetCell(1, 0, texel.Cell{Ch: 'a', Attr: attr})
	tm.SetCell(2, 0, texel.Cell{Ch: 'b', Attr: attr})
	tm.SetCell(5, 1, texel.Cell{Ch: 'c', Attr: attr})
	require.NoError(t, tm.Flush())

	require.Len(t, b.Writes, 2)
	assert.Equal(t, "\x1b[1;2H\x1b[0;30;42mab", string(b.Writes[0]))
	assert.Equal(t, "\x1b[2;6Hc", string(b.Writes[1]))
}

func TestFlushBackendErrorPropagates(t *testing.T) {
	tm, b := newTerminal(t, 4, 1)
	boom := errors.New("boom")
	b.WriteErr = boom
	err := tm.Flush()
	require.Error(t, err)
	assert.Equal(t, boom, errors.Cause(err))
}

func TestClipReleaseRestoresDepth(t *testing.T) {
	tm, _ := newTerminal(t, 20, 10)
	outer := tm.PushClip(texel.RectAt(0, 0, 10, 5))
	inner := tm.PushClip(texel.RectAt(5, 0, 10, 10))
	assert.Equal(t, texel.NewRect(5, 0, 10, 5), tm.Clip())

	// Releasing the outer clip also discards the unreleased inner one.
	outer()
	assert.Equal(t, 0, tm.ClipDepth())
	assert.Equal(t, texel.RectAt(0, 0, 20, 10), tm.Clip())

	inner()
	outer()
	assert.Equal(t, 0, tm.ClipDepth())
}

func TestSetCellOutsideClipIsDropped(t *testing.T) {
	tm, _ := newTerminal(t, 20, 5)
	c := texel.Cell{Ch: 'x', Attr: texel.MakeAttr(texel.Red, texel.Black)}
	texel.WithClip(tm, texel.RectAt(0, 0, 10, 5), func() {
		tm.SetCell(12, 0, c)
		tm.SetCell(3, 0, c)
	})
	assert.Equal(t, texel.Blank, tm.CellAt(12, 0))
	assert.Equal(t, c, tm.CellAt(3, 0))
	tm.SetCell(-1, 0, c)
	tm.SetCell(0, 99, c)
}

func TestPutEventReturnsWithoutPolling(t *testing.T) {
	tm, b := newTerminal(t, 10, 2)
	b.Feed("z")
	want := texel.NewCommand(42, "info")
	tm.PutEvent(texel.NewCommand(41, nil))
	tm.PutEvent(want)

	got, ok, err := tm.PollEvent(time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Zero(t, b.Polls)

	got, ok, err = tm.PollEvent(time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.IsKey(texel.KeyRune))
	assert.Equal(t, 'z', got.Key.Rune)
}

func TestPollEventTimesOut(t *testing.T) {
	tm, b := newTerminal(t, 10, 2)
	start := b.Clock.Now()
	_, ok, err := tm.PollEvent(100 * time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 100*time.Millisecond, b.Clock.Now().Sub(start))
}

func TestPollEventBackendErrorPropagates(t *testing.T) {
	tm, b := newTerminal(t, 10, 2)
	boom := errors.New("gone")
	b.PollErr = boom
	_, ok, err := tm.PollEvent(time.Millisecond)
	assert.False(t, ok)
	assert.Equal(t, boom, errors.Cause(err))
}

func TestResizeForcesFullRedraw(t *testing.T) {
	tm, b := newTerminal(t, 4, 2)
	require.NoError(t, tm.Flush())
	b.ResetWrites()

	b.FeedResize(6, 3)
	ev, ok, err := tm.PollEvent(time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, texel.EvBroadcast, ev.What)
	assert.Equal(t, texel.CmScreenChanged, ev.Command)
	w, h := tm.Size()
	assert.Equal(t, 6, w)
	assert.Equal(t, 3, h)

	require.NoError(t, tm.Flush())
	assert.Len(t, b.Writes, 3, "one run per row after invalidation")
}

func TestCursorStateReachesBackend(t *testing.T) {
	tm, b := newTerminal(t, 10, 2)
	tm.ShowCursor(3, 1, false)
	require.NoError(t, tm.Flush())
	assert.Equal(t, termtest.Cursor{Visible: true, X: 3, Y: 1}, b.Cursor)

	tm.HideCursor()
	require.NoError(t, tm.Flush())
	assert.False(t, b.Cursor.Visible)
}

func TestInitFailureIsWrapped(t *testing.T) {
	b := termtest.New(10, 2)
	b.InitErr = errors.New("no tty")
	err := term.New(b).Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init backend")
}

func TestWideRuneOccupiesTwoCells(t *testing.T) {
	tm, b := newTerminal(t, 6, 1)
	require.NoError(t, tm.Flush())
	b.ResetWrites()

	buf := texel.NewDrawBuffer(6)
	n := buf.MoveStr(0, "界a", texel.MakeAttr(texel.White, texel.Black))
	require.Equal(t, 3, n)
	tm.PutBuffer(0, 0, n, buf)
	require.NoError(t, tm.Flush())

	require.Len(t, b.Writes, 1)
	assert.Equal(t, "\x1b[1;1H\x1b[0;97;40m界a", string(b.Writes[0]))
}

func TestOverwritingWideRuneHalfRepairsGlyph(t *testing.T) {
	attr := texel.MakeAttr(texel.White, texel.Black)
	cases := []struct {
		name   string
		x      int
		ch     rune
		cells  string
		output string
	}{
		{"tail", 1, 'x', " x", "\x1b[1;1H\x1b[0;97;40m x"},
		{"head", 0, 'y', "y ", "\x1b[1;1H\x1b[0;97;40my "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tm, b := newTerminal(t, 4, 1)
			buf := texel.NewDrawBuffer(4)
			n := buf.MoveStr(0, "中", attr)
			tm.PutBuffer(0, 0, n, buf)
			require.NoError(t, tm.Flush())
			b.ResetWrites()

			tm.SetCell(tc.x, 0, texel.Cell{Ch: tc.ch, Attr: attr})
			assert.Equal(t, rune(tc.cells[0]), tm.CellAt(0, 0).Ch)
			assert.Equal(t, rune(tc.cells[1]), tm.CellAt(1, 0).Ch)
			require.NoError(t, tm.Flush())
			require.Len(t, b.Writes, 1)
			assert.Equal(t, tc.output, string(b.Writes[0]))
		})
	}
}

func TestRedrawingWideRuneIsStable(t *testing.T) {
	tm, b := newTerminal(t, 4, 1)
	buf := texel.NewDrawBuffer(4)
	n := buf.MoveStr(0, "中", texel.MakeAttr(texel.White, texel.Black))
	tm.PutBuffer(0, 0, n, buf)
	require.NoError(t, tm.Flush())
	b.ResetWrites()

	tm.PutBuffer(0, 0, n, buf)
	assert.Equal(t, '中', tm.CellAt(0, 0).Ch)
	assert.Equal(t, rune(0), tm.CellAt(1, 0).Ch)
	require.NoError(t, tm.Flush())
	assert.Empty(t, b.Writes)
}
