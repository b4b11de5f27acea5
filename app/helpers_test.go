// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: app/helpers_test.go
// Summary: Scripted terminal and stock dialog shared by the package tests.

package app_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelview/app"
	"github.com/framegrace/texelview/term"
	"github.com/framegrace/texelview/term/termtest"
	"github.com/framegrace/texelview/texel"
)

func newApp(t *testing.T, cols, rows int, opts ...app.Option) (*app.Application, *term.Terminal, *termtest.Backend) {
	t.Helper()
	b := termtest.New(cols, rows)
	tm := term.New(b, term.WithClock(b.Clock.Now))
	require.NoError(t, tm.Init())
	t.Cleanup(func() { _ = tm.Close() })
	opts = append([]app.Option{app.WithClock(b.Clock.Now)}, opts...)
	return app.New(tm, opts...), tm, b
}

// newConfirm builds a dialog at (10,3) with OK (default) and Cancel buttons.
func newConfirm() (*app.Dialog, *app.Button, *app.Button) {
	d := app.NewDialog(texel.RectAt(10, 3, 30, 8), "Confirm")
	d.Insert(app.NewStaticText(texel.RectAt(2, 1, 26, 2), "Proceed with the operation?"))
	ok := app.NewButton(texel.RectAt(4, 4, 10, 2), "~O~K", texel.CmOK, app.ButtonDefault)
	cancel := app.NewButton(texel.RectAt(16, 4, 10, 2), "~C~ancel", texel.CmCancel, 0)
	d.Insert(ok)
	d.Insert(cancel)
	return d, ok, cancel
}

// escapeEater consumes every Escape it is offered.
type escapeEater struct {
	texel.BaseView
	eaten int
}

func newEscapeEater(r texel.Rect) *escapeEater {
	e := &escapeEater{}
	e.Init(r, texel.OptSelectable)
	return e
}

func (e *escapeEater) HandleEvent(ctx *texel.Context, ev *texel.Event) {
	if ev.IsKey(texel.KeyEscape) {
		e.eaten++
		ev.Clear()
	}
}
