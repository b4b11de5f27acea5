// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/probe_test.go
// Summary: Recording views and a scripted terminal shared by the package tests.

package texel_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelview/term"
	"github.com/framegrace/texelview/term/termtest"
	"github.com/framegrace/texelview/texel"
)

// probe records every non-focus event it sees into a shared log.
type probe struct {
	texel.BaseView
	name    string
	log     *[]string
	fill    texel.Cell
	clear   bool
	rewrite *texel.Event
	focus   []uint16
}

func newProbe(name string, r texel.Rect, opts texel.OptionFlags, log *[]string) *probe {
	p := &probe{name: name, log: log, fill: texel.Cell{Ch: rune(name[0]), Attr: texel.MakeAttr(texel.White, texel.Black)}}
	p.Init(r, opts)
	return p
}

func (p *probe) HandleEvent(ctx *texel.Context, ev *texel.Event) {
	if ev.What == texel.EvBroadcast && (ev.Command == texel.CmReceivedFocus || ev.Command == texel.CmReleasedFocus) {
		p.focus = append(p.focus, ev.Command)
		return
	}
	if p.log != nil {
		*p.log = append(*p.log, p.name)
	}
	switch {
	case p.rewrite != nil:
		*ev = *p.rewrite
	case p.clear:
		ev.Clear()
	}
}

func (p *probe) Draw(s texel.Surface) {
	texel.FillRect(s, p.Bounds(), p.fill)
}

func newDriver(t *testing.T, cols, rows int) (*term.Terminal, *termtest.Backend) {
	t.Helper()
	b := termtest.New(cols, rows)
	tm := term.New(b, term.WithClock(b.Clock.Now))
	require.NoError(t, tm.Init())
	t.Cleanup(func() { _ = tm.Close() })
	return tm, b
}

// focusedCount returns how many direct children carry the focused flag.
func focusedCount(g *texel.Group) int {
	n := 0
	for _, c := range g.Children() {
		if c.HasState(texel.StateFocused) {
			n++
		}
	}
	return n
}

func requireFocusConsistent(t *testing.T, g *texel.Group) {
	t.Helper()
	v, i := g.Focused()
	if v == nil {
		require.Equal(t, -1, i)
		require.Zero(t, focusedCount(g))
		return
	}
	require.Equal(t, 1, focusedCount(g))
	require.True(t, v.HasState(texel.StateFocused))
	require.Equal(t, i, g.IndexOf(v))
}
