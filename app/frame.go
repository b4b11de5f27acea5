// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: app/frame.go
// Summary: Window border with centred title and close icon.
// Notes: The frame fills the window interior too, so windows need no background.

package app

import "github.com/framegrace/texelview/texel"

type borderSet struct {
	tl, tr, bl, br, h, v rune
}

var (
	singleBorder = borderSet{'┌', '┐', '└', '┘', '─', '│'}
	doubleBorder = borderSet{'╔', '╗', '╚', '╝', '═', '║'}
)

const closeIcon = "[■]"

// Frame is the back-most child of a Window. It draws a double border while
// its window is active and a single one otherwise.
type Frame struct {
	texel.BaseView
	Title    string
	closable bool
	active   func() bool
}

func newFrame(bounds texel.Rect, title string, closable bool, active func() bool) *Frame {
	f := &Frame{Title: title, closable: closable, active: active}
	f.Init(bounds, 0)
	return f
}

func (f *Frame) isActive() bool { return f.active != nil && f.active() }

func (f *Frame) showsClose() bool {
	return f.closable && f.isActive() && f.Bounds().Width() >= 2+len([]rune(closeIcon))+2
}

func (f *Frame) Draw(s texel.Surface) {
	r := f.Bounds()
	w, h := r.Width(), r.Height()
	if w < 2 || h < 2 {
		f.BaseView.Draw(s)
		return
	}

	slot, border := uint8(texel.SlotFramePassive), singleBorder
	if f.isActive() {
		slot, border = texel.SlotFrameActive, doubleBorder
	}
	frame := f.GetColor(s, slot)
	text := f.GetColor(s, texel.SlotText)
	buf := texel.NewDrawBuffer(w)

	buf.MoveChar(0, border.tl, frame, 1)
	buf.MoveChar(1, border.h, frame, w-2)
	buf.MoveChar(w-1, border.tr, frame, 1)
	if f.showsClose() {
		buf.MoveStr(2, closeIcon, f.GetColor(s, texel.SlotFrameIcon))
	}
	if f.Title != "" {
		title := " " + f.Title + " "
		if tw := texel.StrWidth(title); tw <= w-4 {
			buf.MoveStr((w-tw)/2, title, frame)
		}
	}
	f.WriteLine(s, 0, 0, w, 1, buf)

	buf.MoveChar(0, border.v, frame, 1)
	buf.MoveChar(1, ' ', text, w-2)
	buf.MoveChar(w-1, border.v, frame, 1)
	f.WriteLine(s, 0, 1, w, h-2, buf)

	buf.MoveChar(0, border.bl, frame, 1)
	buf.MoveChar(1, border.h, frame, w-2)
	buf.MoveChar(w-1, border.br, frame, 1)
	f.WriteLine(s, 0, h-1, w, 1, buf)
}

// HandleEvent turns a click on the close icon into CmClose for the window.
func (f *Frame) HandleEvent(ctx *texel.Context, ev *texel.Event) {
	if ev.What != texel.EvMouseDown || !f.showsClose() {
		return
	}
	p := f.MakeLocal(ev.Mouse.Pos)
	if p.Y == 0 && p.X >= 2 && p.X < 2+len([]rune(closeIcon)) {
		*ev = texel.NewCommand(texel.CmClose, nil)
	}
}
