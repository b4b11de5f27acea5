// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: app/dialog.go
// Summary: Window that ends its modal run on accept and cancel commands.
// Usage: d := NewDialog(r, "Title"); d.Insert(NewButton(...)); cmd, err := ctx.ExecView(d)

package app

import (
	"time"

	"github.com/framegrace/texelview/texel"
)

// Dialog is a window using the dialog palette.
//
// Enter that no child consumed is offered to the default button through a
// CmDefault broadcast. Escape that no child consumed cancels; two Escapes
// within the context's double-escape window cancel whatever the focused
// child does with them. While modal, CmOK, CmCancel, CmYes and CmNo end the run.
type Dialog struct {
	Window
	lastEscape time.Time
}

// NewDialog returns a closable dialog.
func NewDialog(bounds texel.Rect, title string) *Dialog {
	d := &Dialog{}
	d.initWindow(bounds, title, WindowClose, texel.OwnerDialog)
	return d
}

func (d *Dialog) HandleEvent(ctx *texel.Context, ev *texel.Event) {
	if isPlainKey(ev, texel.KeyEscape) {
		now := ctx.Now()
		if !d.lastEscape.IsZero() && now.Sub(d.lastEscape) <= ctx.DoubleEscapeWindow() {
			d.lastEscape = time.Time{}
			*ev = texel.NewCommand(texel.CmCancel, nil)
			d.finish(ev)
			return
		}
		d.lastEscape = now
	}

	d.Window.HandleEvent(ctx, ev)

	switch {
	case isPlainKey(ev, texel.KeyEnter):
		reply := texel.NewBroadcast(texel.CmDefault, nil)
		d.Broadcast(ctx, &reply, -1)
		switch {
		case reply.What == texel.EvCommand:
			*ev = reply
		case reply.Handled():
			ev.Clear()
		}
	case isPlainKey(ev, texel.KeyEscape):
		*ev = texel.NewCommand(texel.CmCancel, nil)
	}
	if ev.What == texel.EvCommand {
		d.finish(ev)
	}
}

func (d *Dialog) finish(ev *texel.Event) {
	switch ev.Command {
	case texel.CmOK, texel.CmCancel, texel.CmYes, texel.CmNo:
	default:
		return
	}
	if d.HasState(texel.StateModal) {
		debugLog.Printf("dialog %q: end with %d", d.Title(), ev.Command)
		d.SetEndState(ev.Command)
		ev.Clear()
		return
	}
	if ev.Command == texel.CmCancel && d.Flags&WindowClose != 0 {
		d.Close()
		ev.Clear()
	}
}

func isPlainKey(ev *texel.Event, k texel.Key) bool {
	return ev.IsKey(k) && ev.Key.Mod == 0
}
