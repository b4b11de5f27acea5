// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/context.go
// Summary: Explicit dispatch context passed to every event handler.
// Usage: Carries command availability, the driving terminal and modal hooks.
// Notes: Replaces process-wide globals so tests can run side by side.

package texel

import "time"

// Driver is the render/event front end a modal loop runs against.
type Driver interface {
	Surface
	// PollEvent waits at most timeout for one event. ok is false on timeout.
	PollEvent(timeout time.Duration) (ev Event, ok bool, err error)
	// PutEvent stores ev to be returned by the next PollEvent.
	PutEvent(ev Event)
	// Flush pushes the current frame to the backend.
	Flush() error
}

// Executor runs a view modally inside some host container.
type Executor interface {
	ExecView(ctx *Context, v View) (uint16, error)
}

// Default timings.
const (
	DefaultPollTimeout  = 100 * time.Millisecond
	DefaultDoubleEscape = 500 * time.Millisecond
)

// Context is shared by one thread of dispatch. The zero value and a nil
// pointer are both usable; missing pieces fall back to permissive defaults.
type Context struct {
	// Commands lists enabled commands. Nil enables everything.
	Commands *CommandSet
	// Driver is the terminal the current modal loop polls and draws on.
	Driver Driver
	// Root is drawn underneath a self-contained modal view on each pass.
	Root View
	// Exec hosts centralized modal execution. When nil, ExecView runs the
	// view self-contained.
	Exec Executor
	// Idle runs when a poll times out without an event.
	Idle func(ctx *Context)
	// PollTimeout bounds each poll of a modal loop.
	PollTimeout time.Duration
	// DoubleEscape is the window within which two Escape presses cancel a dialog.
	DoubleEscape time.Duration
	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// Now returns the context clock.
func (c *Context) Now() time.Time {
	if c == nil || c.Clock == nil {
		return time.Now()
	}
	return c.Clock()
}

// CommandEnabled reports whether cmd may currently be issued.
func (c *Context) CommandEnabled(cmd uint16) bool {
	if c == nil {
		return true
	}
	return c.Commands.Has(cmd)
}

// PutEvent queues ev on the driver for the next poll. It is a no-op without a driver.
func (c *Context) PutEvent(ev Event) {
	if c == nil || c.Driver == nil {
		return
	}
	c.Driver.PutEvent(ev)
}

// ExecView runs v modally, centralized when an executor is present.
func (c *Context) ExecView(v View) (uint16, error) {
	if c != nil && c.Exec != nil {
		return c.Exec.ExecView(c, v)
	}
	return Execute(c, v)
}

func (c *Context) pollTimeout() time.Duration {
	if c == nil || c.PollTimeout <= 0 {
		return DefaultPollTimeout
	}
	return c.PollTimeout
}

// DoubleEscapeWindow returns the configured window or the default.
func (c *Context) DoubleEscapeWindow() time.Duration {
	if c == nil || c.DoubleEscape <= 0 {
		return DefaultDoubleEscape
	}
	return c.DoubleEscape
}
