// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: app/application.go
// Summary: Root group tying the desktop and status line to a driver.
// Usage: a := app.New(terminal); a.Desktop().Insert(win); err := a.Run(ctx)
// Notes: ExecView hosts modal views inside the desktop so the whole
//        application is redrawn on every pass of the modal loop.

package app

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/framegrace/texelview/texel"
)

// Option configures an Application.
type Option func(*Application)

// WithPollTimeout bounds each poll of the main and modal loops.
func WithPollTimeout(d time.Duration) Option {
	return func(a *Application) {
		if d > 0 {
			a.pollTimeout = d
		}
	}
}

// WithDoubleEscape sets the window within which two Escapes cancel a dialog.
func WithDoubleEscape(d time.Duration) Option {
	return func(a *Application) {
		if d > 0 {
			a.doubleEscape = d
		}
	}
}

// WithIdle installs a hook that runs whenever a poll times out.
func WithIdle(fn func(*texel.Context)) Option {
	return func(a *Application) { a.idle = fn }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Application) { a.clock = now }
}

// WithCommandHandler installs fn for commands nothing in the tree handled.
func WithCommandHandler(fn func(ctx *texel.Context, ev *texel.Event)) Option {
	return func(a *Application) { a.handler = fn }
}

// WithStatusItems replaces the default status line entries.
func WithStatusItems(items ...StatusItem) Option {
	return func(a *Application) { a.items = items }
}

// DefaultStatusItems are shown when no WithStatusItems option is given.
func DefaultStatusItems() []StatusItem {
	return []StatusItem{
		{Text: "~Alt-X~ Exit", Key: texel.KeyEvent{Code: texel.KeyRune, Rune: 'x', Mod: texel.ModAlt}, Command: texel.CmQuit},
		{Text: "~F6~ Next", Key: texel.KeyEvent{Code: texel.KeyF6}, Command: texel.CmNext},
		{Key: texel.KeyEvent{Code: texel.KeyF6, Mod: texel.ModShift}, Command: texel.CmPrev},
		{Text: "~Alt-F3~ Close", Key: texel.KeyEvent{Code: texel.KeyF3, Mod: texel.ModAlt}, Command: texel.CmClose},
	}
}

// Application is the root view: a desktop above a one-line status bar.
type Application struct {
	texel.Group

	driver   texel.Driver
	desktop  *Desktop
	status   *StatusLine
	items    []StatusItem
	commands *texel.CommandSet

	idle         func(*texel.Context)
	handler      func(*texel.Context, *texel.Event)
	clock        func() time.Time
	pollTimeout  time.Duration
	doubleEscape time.Duration

	quit bool
}

// New lays out an application over the whole driver surface.
func New(d texel.Driver, opts ...Option) *Application {
	a := &Application{
		driver:       d,
		items:        DefaultStatusItems(),
		commands:     texel.AllCommands(),
		pollTimeout:  texel.DefaultPollTimeout,
		doubleEscape: texel.DefaultDoubleEscape,
	}
	for _, opt := range opts {
		opt(a)
	}

	w, h := d.Size()
	a.InitGroup(texel.RectAt(0, 0, w, h), 0)
	a.desktop = NewDesktop(texel.RectAt(0, 0, w, h-1))
	a.status = NewStatusLine(texel.RectAt(0, h-1, w, 1), a.items...)
	a.Insert(a.desktop)
	a.Insert(a.status)
	return a
}

func (a *Application) Desktop() *Desktop       { return a.desktop }
func (a *Application) StatusLine() *StatusLine { return a.status }
func (a *Application) Driver() texel.Driver    { return a.driver }

// Context returns a dispatch context whose modal runs are hosted by a.
func (a *Application) Context() *texel.Context {
	return &texel.Context{
		Commands:     a.commands,
		Driver:       a.driver,
		Root:         a,
		Exec:         a,
		Idle:         a.idle,
		PollTimeout:  a.pollTimeout,
		DoubleEscape: a.doubleEscape,
		Clock:        a.clock,
	}
}

// Quit makes Run return after the current event.
func (a *Application) Quit() { a.quit = true }

// Run draws, polls and dispatches until CmQuit or ctx is done. A backend
// failure ends the loop with the wrapped error.
func (a *Application) Run(ctx context.Context) error {
	tc := a.Context()
	a.quit = false
	for !a.quit {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.Draw(a.driver)
		a.UpdateCursor(a.driver)
		if err := a.driver.Flush(); err != nil {
			return errors.Wrap(err, "application flush")
		}
		ev, ok, err := a.driver.PollEvent(a.pollTimeout)
		if err != nil {
			return errors.Wrap(err, "application poll")
		}
		if !ok {
			if tc.Idle != nil {
				tc.Idle(tc)
			}
			continue
		}
		a.HandleEvent(tc, &ev)
	}
	debugLog.Printf("application: quit")
	return nil
}

func (a *Application) HandleEvent(ctx *texel.Context, ev *texel.Event) {
	switch {
	case ev.What == texel.EvBroadcast && ev.Command == texel.CmScreenChanged:
		a.layout()
	case ev.IsKey(texel.KeyTab) || ev.IsKey(texel.KeyBacktab):
		a.desktop.HandleEvent(ctx, ev)
		return
	}
	wasCommand := ev.What == texel.EvCommand
	a.Group.HandleEvent(ctx, ev)
	// A key or click the status line turned into a command has not been
	// seen by the desktop yet.
	if !wasCommand && ev.What == texel.EvCommand && ev.Command != texel.CmQuit {
		a.Group.HandleEvent(ctx, ev)
	}
	if ev.What != texel.EvCommand {
		return
	}
	if ev.Command == texel.CmQuit {
		a.quit = true
		ev.Clear()
		return
	}
	if a.handler != nil {
		a.handler(ctx, ev)
	}
}

func (a *Application) layout() {
	w, h := a.driver.Size()
	a.SetBounds(texel.RectAt(0, 0, w, h))
	a.desktop.SetBounds(texel.RectAt(0, 0, w, h-1))
	a.status.SetBounds(texel.RectAt(0, h-1, w, 1))
	debugLog.Printf("application: layout %dx%d", w, h)
}

// ExecView runs v modally inside the desktop. v's bounds are relative to
// the desktop; v and its children are moved with the desktop origin for the
// run and moved back afterwards, so a view can be run again.
func (a *Application) ExecView(ctx *texel.Context, v texel.View) (uint16, error) {
	if ctx == nil || ctx.Driver == nil {
		ctx = a.Context()
	}
	origin := a.desktop.Bounds().A
	saved := v.Bounds()
	texel.Translate(v, origin.X, origin.Y)
	v.SetBounds(saved)
	a.desktop.Insert(v)
	a.desktop.FocusView(v)
	defer func() {
		a.desktop.Remove(v)
		texel.Translate(v, -origin.X, -origin.Y)
	}()
	return texel.RunModal(ctx, v, a.Draw)
}

// SuspendFocus takes focus from the focused window while a view runs
// self-contained over the application.
func (a *Application) SuspendFocus() func() { return a.desktop.SuspendFocus() }

// Commands returns a copy of the enabled command set.
func (a *Application) Commands() *texel.CommandSet { return a.commands.Clone() }

// SetCommands replaces the enabled command set and broadcasts
// CmCommandSetChanged through the tree if it changed.
func (a *Application) SetCommands(cs *texel.CommandSet) {
	if cs == nil {
		cs = texel.AllCommands()
	}
	if a.commands.Equal(cs) {
		return
	}
	*a.commands = *cs
	ev := texel.NewBroadcast(texel.CmCommandSetChanged, nil)
	a.HandleEvent(a.Context(), &ev)
}

func (a *Application) EnableCommands(cmds ...uint16) {
	cs := a.commands.Clone()
	cs.Enable(cmds...)
	a.SetCommands(cs)
}

func (a *Application) DisableCommands(cmds ...uint16) {
	cs := a.commands.Clone()
	cs.Disable(cmds...)
	a.SetCommands(cs)
}

var (
	_ texel.Executor       = (*Application)(nil)
	_ texel.FocusSuspender = (*Application)(nil)
)
