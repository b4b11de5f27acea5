// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: app/button.go
// Summary: Push button issuing a command, with hot key, default flag and shadow.
// Notes: Enter is never handled here; dialogs turn it into a CmDefault
//        broadcast that only the default button answers.

package app

import (
	"strings"
	"unicode"

	"github.com/framegrace/texelview/texel"
)

// ButtonFlags select optional button behaviour.
type ButtonFlags uint8

const (
	// ButtonDefault makes the button answer CmDefault broadcasts.
	ButtonDefault ButtonFlags = 1 << iota
)

// Button issues Command when pressed. Title may mark its hot key with
// tildes, as in "~O~K".
type Button struct {
	texel.BaseView
	Title   string
	Command uint16
	Flags   ButtonFlags
	hotKey  rune
}

// NewButton returns a button for use inside a dialog. Buttons placed in
// plain windows should be switched to texel.OwnerWindow.
func NewButton(bounds texel.Rect, title string, cmd uint16, flags ButtonFlags) *Button {
	b := &Button{Title: title, Command: cmd, Flags: flags, hotKey: hotKey(title)}
	b.Init(bounds, texel.OptSelectable|texel.OptFirstClick|texel.OptPostProcess)
	b.SetOwnerKind(texel.OwnerDialog)
	if flags&ButtonDefault != 0 {
		b.SetStateFlag(texel.StateDefault, true)
	}
	return b
}

// hotKey returns the lower-cased rune following the first tilde.
func hotKey(title string) rune {
	i := strings.IndexByte(title, '~')
	if i < 0 {
		return 0
	}
	for _, r := range title[i+1:] {
		return unicode.ToLower(r)
	}
	return 0
}

func (b *Button) Draw(s texel.Surface) {
	r := b.Bounds()
	w, h := r.Width(), r.Height()
	if w <= 0 || h <= 0 {
		return
	}

	var slot uint8
	switch {
	case b.HasState(texel.StateDisabled):
		slot = texel.SlotButtonDisabled
	case b.Focused():
		slot = texel.SlotButtonSelected
	case b.HasState(texel.StateDefault):
		slot = texel.SlotButtonDefault
	default:
		slot = texel.SlotButtonNormal
	}
	face := b.GetColor(s, slot)
	shortcut := b.GetColor(s, texel.SlotButtonShortcut)
	shadow := b.GetColor(s, texel.SlotButtonShadow)

	body := w
	if w > 1 && h > 1 {
		body = w - 1
	}
	buf := texel.NewDrawBuffer(w)
	buf.MoveChar(0, ' ', face, body)
	if cw := texel.CStrLen(b.Title); cw <= body {
		buf.MoveCStr((body-cw)/2, b.Title, face, shortcut)
	}
	if body < w {
		buf.MoveChar(body, '▄', shadow, 1)
	}
	b.WriteLine(s, 0, 0, w, 1, buf)

	if h > 1 && body < w {
		buf.MoveChar(0, ' ', shadow, 1)
		buf.MoveChar(1, '▀', shadow, w-1)
		b.WriteLine(s, 0, 1, w, 1, buf)
	}
}

// Press issues the button command by rewriting ev, unless disabled.
func (b *Button) Press(ev *texel.Event) {
	if b.HasState(texel.StateDisabled) {
		return
	}
	debugLog.Printf("button %q pressed: command %d", b.Title, b.Command)
	*ev = texel.NewCommand(b.Command, nil)
}

func (b *Button) HandleEvent(ctx *texel.Context, ev *texel.Event) {
	switch ev.What {
	case texel.EvMouseDown:
		if b.Bounds().Contains(ev.Mouse.Pos) {
			b.Press(ev)
		}
	case texel.EvKeyDown:
		switch {
		case b.Focused() && ev.Key.Code == texel.KeyRune && ev.Key.Rune == ' ' && ev.Key.Mod == 0:
			b.Press(ev)
		case b.matchesHotKey(ev.Key):
			b.Press(ev)
		}
	case texel.EvBroadcast:
		switch ev.Command {
		case texel.CmDefault:
			if b.HasState(texel.StateDefault) && !b.HasState(texel.StateDisabled) {
				b.Press(ev)
			}
		case texel.CmCommandSetChanged:
			b.SetStateFlag(texel.StateDisabled, !ctx.CommandEnabled(b.Command))
		}
	}
}

// matchesHotKey accepts Alt plus the hot key anywhere, and the bare key too
// since the focused view has already had its chance at it.
func (b *Button) matchesHotKey(k texel.KeyEvent) bool {
	if b.hotKey == 0 || k.Code != texel.KeyRune || k.Mod&texel.ModCtrl != 0 {
		return false
	}
	return unicode.ToLower(k.Rune) == b.hotKey
}
