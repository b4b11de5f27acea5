// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: app/window.go
// Summary: Framed, closable group living on the desktop.

package app

import "github.com/framegrace/texelview/texel"

// WindowFlags select optional window behaviour.
type WindowFlags uint8

const (
	// WindowClose shows the close icon and honours CmClose.
	WindowClose WindowFlags = 1 << iota
)

// Window is a Group whose first child is its Frame. Children are inserted
// with bounds relative to the window origin; row 0 and column 0 belong to
// the frame.
type Window struct {
	texel.Group
	Flags WindowFlags
	frame *Frame
}

// NewWindow returns a closable window resolving colours through the window palette.
func NewWindow(bounds texel.Rect, title string) *Window {
	w := &Window{}
	w.initWindow(bounds, title, WindowClose, texel.OwnerWindow)
	return w
}

func (w *Window) initWindow(bounds texel.Rect, title string, flags WindowFlags, kind texel.OwnerKind) {
	w.InitGroup(bounds, texel.OptSelectable|texel.OptTopSelect|texel.OptFramed)
	w.Flags = flags
	w.frame = newFrame(texel.RectAt(0, 0, bounds.Width(), bounds.Height()), title, flags&WindowClose != 0, w.active)
	w.frame.SetOwnerKind(kind)
	w.Insert(w.frame)
}

// Title returns the frame title.
func (w *Window) Title() string { return w.frame.Title }

// SetTitle replaces the frame title.
func (w *Window) SetTitle(title string) { w.frame.Title = title }

// Interior returns the window area inside the frame, in absolute coordinates.
func (w *Window) Interior() texel.Rect { return w.Bounds().Grow(-1, -1) }

func (w *Window) active() bool {
	return w.HasState(texel.StateFocused) || w.HasState(texel.StateModal)
}

// Close ends a modal run with CmCancel; otherwise it marks the window
// closed so the desktop drops it after the current dispatch.
func (w *Window) Close() {
	if w.HasState(texel.StateModal) {
		w.SetEndState(texel.CmCancel)
		return
	}
	debugLog.Printf("window %q closed", w.Title())
	w.SetStateFlag(texel.StateClosed, true)
	w.SetStateFlag(texel.StateVisible, false)
}

// HandleEvent dispatches to the children, then handles CmClose.
//
// Focus notifications concern the window itself and are not passed on. A
// CmClose broadcast without a target closes every closable window.
func (w *Window) HandleEvent(ctx *texel.Context, ev *texel.Event) {
	if ev.What == texel.EvBroadcast {
		switch ev.Command {
		case texel.CmReceivedFocus, texel.CmReleasedFocus:
			return
		case texel.CmClose:
			if ev.Info == nil && w.Flags&WindowClose != 0 {
				w.Close()
			}
			return
		}
	}
	w.Group.HandleEvent(ctx, ev)
	if ev.What == texel.EvCommand && ev.Command == texel.CmClose && w.Flags&WindowClose != 0 {
		w.Close()
		ev.Clear()
	}
}
