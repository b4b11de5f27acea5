// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/modal.go
// Summary: The modal execution loop shared by self-contained and centralized runs.
// Usage: Execute(ctx, dialog) runs a view on its own; hosts call RunModal with
//        a draw function that paints their whole tree.
// Notes: One bounded poll per pass; the idle hook only runs when a poll times out.

package texel

import "github.com/pkg/errors"

// ErrNoDriver is returned when a modal loop has nothing to poll or draw on.
var ErrNoDriver = errors.New("texel: modal loop needs a driver")

// RunModal drives v until its end state becomes non-zero.
//
// Each pass draws, flushes, polls once with ctx's timeout, runs the idle hook
// if the poll came back empty, dispatches the event to v, then checks the end
// state. v carries StateModal while the loop runs. Backend failures end the
// loop with CmCancel and the error.
func RunModal(ctx *Context, v View, draw func(Surface)) (uint16, error) {
	if ctx == nil || ctx.Driver == nil {
		return CmCancel, ErrNoDriver
	}
	d := ctx.Driver
	v.SetEndState(0)
	v.SetStateFlag(StateModal, true)
	defer v.SetStateFlag(StateModal, false)

	debugLog.Printf("modal: enter %T at %v", v, v.Bounds())
	for {
		draw(d)
		v.UpdateCursor(d)
		if err := d.Flush(); err != nil {
			return CmCancel, errors.Wrap(err, "modal flush")
		}

		ev, ok, err := d.PollEvent(ctx.pollTimeout())
		if err != nil {
			return CmCancel, errors.Wrap(err, "modal poll")
		}
		if !ok {
			if ctx.Idle != nil {
				ctx.Idle(ctx)
			}
		} else {
			v.HandleEvent(ctx, &ev)
			if !ev.Handled() {
				debugLog.Printf("modal: unhandled %v", ev)
			}
		}

		if cmd := v.EndState(); cmd != 0 {
			debugLog.Printf("modal: leave %T with %d", v, cmd)
			return cmd, nil
		}
	}
}

// FocusSuspender is implemented by roots that give up focus to a view run
// over them. SuspendFocus returns the function that hands focus back.
type FocusSuspender interface {
	SuspendFocus() (resume func())
}

// Execute runs v self-contained: each pass paints ctx.Root, if any, and then
// v on top of it. v is not inserted anywhere, but a root implementing
// FocusSuspender loses focus for the run, as it would to a hosted view.
func Execute(ctx *Context, v View) (uint16, error) {
	var root View
	if ctx != nil {
		root = ctx.Root
	}
	if fs, ok := root.(FocusSuspender); ok && root != v && ctx.Driver != nil {
		defer fs.SuspendFocus()()
	}
	return RunModal(ctx, v, func(s Surface) {
		if root != nil && root != v {
			root.Draw(s)
		}
		v.Draw(s)
	})
}
