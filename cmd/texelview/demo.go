// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelview/demo.go
// Summary: Demo application: cascading windows, a status clock and a modal quit confirmation.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/framegrace/texelview/app"
	"github.com/framegrace/texelview/term"
	"github.com/framegrace/texelview/texel"
)

const (
	cmdNewWindow = texel.CmUser + iota
	cmdAskQuit
)

const demoText = "Tab moves between buttons, F6 between windows. " +
	"Alt-F3 or the close icon closes a window. F2 opens another one."

type demo struct {
	app     *app.Application
	clock   *app.Clock
	windows int
}

func demoStatusItems() []app.StatusItem {
	return append(app.DefaultStatusItems(),
		app.StatusItem{Text: "~F2~ New", Key: texel.KeyEvent{Code: texel.KeyF2}, Command: cmdNewWindow},
		app.StatusItem{Text: "~F9~ Quit...", Key: texel.KeyEvent{Code: texel.KeyF9}, Command: cmdAskQuit},
	)
}

func newDemo(d texel.Driver, s settings) *demo {
	dm := &demo{}
	opts := []app.Option{
		app.WithStatusItems(demoStatusItems()...),
		app.WithCommandHandler(dm.handle),
	}
	if s.clock {
		cols, rows := d.Size()
		dm.clock = app.NewClock(cols, rows)
		opts = append(opts, app.WithIdle(func(ctx *texel.Context) { dm.clock.Update(ctx.Now()) }))
	}
	dm.app = app.New(d, append(opts, s.appOpts...)...)
	if dm.clock != nil {
		dm.app.Insert(dm.clock)
		dm.clock.Update(dm.app.Context().Now())
	}
	dm.newWindow()
	return dm
}

func runDemo(ctx context.Context, tm *term.Terminal, s settings) error {
	return newDemo(tm, s).app.Run(ctx)
}

func (dm *demo) handle(ctx *texel.Context, ev *texel.Event) {
	switch ev.Command {
	case cmdNewWindow:
		ev.Clear()
		dm.newWindow()
	case cmdAskQuit:
		ev.Clear()
		cmd, err := ctx.ExecView(dm.quitDialog())
		if err != nil {
			slog.Debug("quit dialog ended", "err", err)
			return
		}
		if cmd == texel.CmYes {
			dm.app.Quit()
		}
	}
}

func (dm *demo) newWindow() {
	dm.windows++
	off := (dm.windows - 1) % 8 * 2
	w := app.NewWindow(texel.RectAt(2+off, 1+off, 40, 10), fmt.Sprintf("Window %d", dm.windows))

	text := app.NewStaticText(texel.RectAt(2, 1, 36, 5), demoText)
	text.SetOwnerKind(texel.OwnerWindow)
	w.Insert(text)
	for _, b := range []*app.Button{
		app.NewButton(texel.RectAt(2, 7, 12, 2), "~N~ew", cmdNewWindow, 0),
		app.NewButton(texel.RectAt(16, 7, 12, 2), "~Q~uit...", cmdAskQuit, 0),
	} {
		b.SetOwnerKind(texel.OwnerWindow)
		w.Insert(b)
	}
	dm.app.Desktop().Insert(w)
}

// quitDialog is centred on the desktop; its bounds are desktop-relative.
func (dm *demo) quitDialog() *app.Dialog {
	const w, h = 36, 8
	desk := dm.app.Desktop().Bounds()
	d := app.NewDialog(texel.RectAt((desk.Width()-w)/2, (desk.Height()-h)/2, w, h), "Quit")
	d.Insert(app.NewStaticText(texel.RectAt(3, 2, w-6, 1), "Leave the demo?"))
	d.Insert(app.NewButton(texel.RectAt(5, 4, 10, 2), "~Y~es", texel.CmYes, app.ButtonDefault))
	d.Insert(app.NewButton(texel.RectAt(20, 4, 10, 2), "~N~o", texel.CmNo, 0))
	return d
}
