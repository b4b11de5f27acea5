// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: app/statusline.go
// Summary: Bottom line of hot-key hints that turn into commands.

package app

import "github.com/framegrace/texelview/texel"

// StatusItem binds a key to a command. Text may highlight with tildes and
// may be empty for keys that have no visible hint.
type StatusItem struct {
	Text    string
	Key     texel.KeyEvent
	Command uint16
}

// StatusLine sees keys after the focused view and converts matching ones to
// their command. Items whose command is disabled are greyed and inert.
type StatusLine struct {
	texel.BaseView
	Items    []StatusItem
	disabled map[uint16]bool
}

// NewStatusLine returns a status line on the given row.
func NewStatusLine(bounds texel.Rect, items ...StatusItem) *StatusLine {
	sl := &StatusLine{Items: items, disabled: map[uint16]bool{}}
	sl.Init(bounds, texel.OptPostProcess)
	return sl
}

func (sl *StatusLine) Draw(s texel.Surface) {
	w := sl.Bounds().Width()
	if w <= 0 {
		return
	}
	normal := sl.GetColor(s, texel.ColorStatusNormal)
	highlight := sl.GetColor(s, texel.ColorStatusHighlight)
	disabled := sl.GetColor(s, texel.ColorStatusDisabled)

	buf := texel.NewDrawBuffer(w)
	buf.MoveChar(0, ' ', normal, w)
	x := 1
	for _, it := range sl.Items {
		if it.Text == "" {
			continue
		}
		if sl.disabled[it.Command] {
			x += buf.MoveCStr(x, it.Text, disabled, disabled)
		} else {
			x += buf.MoveCStr(x, it.Text, normal, highlight)
		}
		x += 2
		if x >= w {
			break
		}
	}
	sl.WriteLine(s, 0, 0, w, 1, buf)
}

func (sl *StatusLine) HandleEvent(ctx *texel.Context, ev *texel.Event) {
	switch ev.What {
	case texel.EvKeyDown:
		for _, it := range sl.Items {
			if keyMatches(it.Key, ev.Key) && !sl.disabled[it.Command] {
				*ev = texel.NewCommand(it.Command, nil)
				return
			}
		}
	case texel.EvMouseDown:
		if it, ok := sl.itemAt(sl.MakeLocal(ev.Mouse.Pos).X); ok && !sl.disabled[it.Command] {
			*ev = texel.NewCommand(it.Command, nil)
		}
	case texel.EvBroadcast:
		if ev.Command == texel.CmCommandSetChanged {
			for _, it := range sl.Items {
				sl.disabled[it.Command] = !ctx.CommandEnabled(it.Command)
			}
		}
	}
}

func (sl *StatusLine) itemAt(x int) (StatusItem, bool) {
	pos := 1
	for _, it := range sl.Items {
		if it.Text == "" {
			continue
		}
		n := texel.CStrLen(it.Text)
		if x >= pos && x < pos+n {
			return it, true
		}
		pos += n + 2
	}
	return StatusItem{}, false
}

func keyMatches(want, got texel.KeyEvent) bool {
	if want.Code != got.Code || want.Mod != got.Mod {
		return false
	}
	return want.Code != texel.KeyRune || want.Rune == got.Rune
}
