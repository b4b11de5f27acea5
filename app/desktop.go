// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: app/desktop.go
// Summary: Group holding the background and the windows.

package app

import "github.com/framegrace/texelview/texel"

// Desktop keeps its Background at the bottom of the z-order. Closed windows
// are dropped together after each dispatch.
type Desktop struct {
	texel.Group
	background *Background
}

// NewDesktop returns a desktop whose background fills bounds.
func NewDesktop(bounds texel.Rect) *Desktop {
	d := &Desktop{}
	d.InitGroup(bounds, texel.OptSelectable)
	d.background = NewBackground(texel.RectAt(0, 0, bounds.Width(), bounds.Height()), DefaultPattern)
	d.Insert(d.background)
	return d
}

// Background returns the pattern view behind the windows.
func (d *Desktop) Background() *Background { return d.background }

// SetBounds resizes the desktop and its background. Windows keep their place.
func (d *Desktop) SetBounds(r texel.Rect) {
	d.Group.SetBounds(r)
	d.background.SetBounds(r)
}

// HandleEvent forwards Tab to the focused window so it cycles the window's
// own children, and cycles windows on CmNext and CmPrev.
func (d *Desktop) HandleEvent(ctx *texel.Context, ev *texel.Event) {
	switch {
	case ev.IsKey(texel.KeyTab) || ev.IsKey(texel.KeyBacktab):
		if w, _ := d.Focused(); w != nil {
			w.HandleEvent(ctx, ev)
		}
		return
	case ev.What == texel.EvCommand && (ev.Command == texel.CmNext || ev.Command == texel.CmPrev):
		d.cycle(ev.Command == texel.CmNext)
		ev.Clear()
		return
	}
	d.Group.HandleEvent(ctx, ev)
	d.reap()
}

// cycle raises the bottom-most window for CmNext. CmPrev sends the top
// window to the bottom, which is the same rotation repeated.
func (d *Desktop) cycle(forward bool) {
	n := 0
	for _, c := range d.Children() {
		if c.Options()&texel.OptSelectable != 0 && c.HasState(texel.StateVisible) && !c.HasState(texel.StateDisabled) {
			n++
		}
	}
	if n < 2 {
		return
	}
	steps := 1
	if !forward {
		steps = n - 1
	}
	for ; steps > 0; steps-- {
		for i := 1; i < d.Len(); i++ {
			if d.Focus(i) {
				break
			}
		}
	}
}

func (d *Desktop) reap() {
	if n := d.RemoveIf(func(v texel.View) bool { return v.HasState(texel.StateClosed) }); n > 0 {
		debugLog.Printf("desktop: removed %d closed windows", n)
	}
}
