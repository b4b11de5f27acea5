// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: app/widgets_test.go
// Summary: Rendering of dialogs, buttons and static text.

package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/framegrace/texelview/app"
	"github.com/framegrace/texelview/texel"
)

func TestDialogRendering(t *testing.T) {
	a, tm, b := newApp(t, 60, 20)
	d, _, _ := newConfirm()
	b.Feed("\r")
	_, err := a.Context().ExecView(d)
	assert.NoError(t, err)

	th := texel.DefaultTheme()
	assert.Equal(t, '╔', tm.CellAt(10, 3).Ch)
	assert.Equal(t, th.Root[texel.ColorDialogFrameActive], tm.CellAt(10, 3).Attr)

	// Static text wraps inside its 26 columns.
	assert.Equal(t, 'P', tm.CellAt(12, 4).Ch)
	assert.Equal(t, 'o', tm.CellAt(12, 5).Ch)
	assert.Equal(t, th.Root[texel.ColorDialogText], tm.CellAt(12, 5).Attr)

	// Focused default button with highlighted hot key and shadow.
	assert.Equal(t, 'O', tm.CellAt(17, 7).Ch)
	assert.Equal(t, th.Root[texel.ColorDialogButtonShortcut], tm.CellAt(17, 7).Attr)
	assert.Equal(t, 'K', tm.CellAt(18, 7).Ch)
	assert.Equal(t, th.Root[texel.ColorDialogButtonSelected], tm.CellAt(18, 7).Attr)
	assert.Equal(t, '▄', tm.CellAt(23, 7).Ch)
	assert.Equal(t, '▀', tm.CellAt(16, 8).Ch)

	// Cancel is neither focused nor default.
	assert.Equal(t, th.Root[texel.ColorDialogButtonNormal], tm.CellAt(26, 7).Attr)
}

func TestButtonDefaultColourWhenUnfocused(t *testing.T) {
	a, tm, _ := newApp(t, 40, 10)
	d := app.NewDialog(texel.RectAt(0, 0, 30, 6), "")
	other := app.NewButton(texel.RectAt(2, 1, 10, 2), "Other", texel.CmNo, 0)
	def := app.NewButton(texel.RectAt(14, 1, 10, 2), "Yes", texel.CmYes, app.ButtonDefault)
	d.Insert(other)
	d.Insert(def)
	a.Desktop().Insert(d)
	a.Draw(tm)

	th := texel.DefaultTheme()
	assert.Equal(t, th.Root[texel.ColorDialogButtonDefault], tm.CellAt(14, 1).Attr)
	assert.Equal(t, th.Root[texel.ColorDialogButtonSelected], tm.CellAt(2, 1).Attr)
}

func TestDisabledButtonDoesNotPress(t *testing.T) {
	btn := app.NewButton(texel.RectAt(0, 0, 8, 1), "~G~o", texel.CmUser, 0)
	btn.SetStateFlag(texel.StateDisabled, true)
	ev := texel.NewRune('g', texel.ModAlt)
	btn.HandleEvent(nil, &ev)
	assert.Equal(t, texel.EvKeyDown, ev.What)

	btn.SetStateFlag(texel.StateDisabled, false)
	btn.HandleEvent(nil, &ev)
	assert.True(t, ev.IsCommand(texel.CmUser))
}

func TestButtonInWindowUsesWindowPalette(t *testing.T) {
	a, tm, _ := newApp(t, 40, 10)
	w := app.NewWindow(texel.RectAt(0, 0, 30, 6), "W")
	btn := app.NewButton(texel.RectAt(2, 2, 6, 1), "Go", texel.CmUser, 0)
	btn.SetOwnerKind(texel.OwnerWindow)
	w.Insert(btn)
	a.Desktop().Insert(w)
	a.Draw(tm)
	assert.NotEqual(t, texel.ErrorAttr, tm.CellAt(2, 2).Attr)
	assert.Equal(t, texel.DefaultTheme().Root[texel.ColorWindowHighlight], tm.CellAt(2, 2).Attr)
}
