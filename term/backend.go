// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/backend.go
// Summary: Contract between the Terminal front end and a concrete output device.
// Usage: backend/tty drives a local terminal, backend/remote a network session,
//        termtest.Backend a script.
// Notes: Each Terminal owns its backend; backends are never shared.

package term

import "time"

// RawInput is one chunk of undecoded input or a size change.
type RawInput struct {
	Bytes  []byte
	Resize bool
	Cols   int
	Rows   int
}

// Capabilities describes what the device can do.
type Capabilities struct {
	Mouse     bool
	Colors    int
	Unicode   bool
	AltScreen bool
}

// Backend is the device a Terminal renders to and reads from.
type Backend interface {
	// Init and Cleanup bracket every use of the device.
	Init() error
	Cleanup() error

	// Size reports the device dimensions in cells.
	Size() (cols, rows int, err error)

	// PollEvent waits at most timeout for input. ok is false on timeout.
	PollEvent(timeout time.Duration) (in RawInput, ok bool, err error)

	// WriteRaw queues encoded output; Flush pushes it to the device.
	// Implementations must not keep p after returning.
	WriteRaw(p []byte) error
	Flush() error

	ShowCursor(x, y int) error
	HideCursor() error

	Capabilities() Capabilities
	// CellAspectRatio is cell height divided by cell width.
	CellAspectRatio() float64

	Bell() error
	ClearScreen() error
	Suspend() error
	Resume() error
}

// NopExtras provides the optional parts of Backend as no-ops.
// Embed it and override what the device supports.
type NopExtras struct{}

func (NopExtras) Capabilities() Capabilities { return Capabilities{Colors: 16} }
func (NopExtras) CellAspectRatio() float64   { return 2 }
func (NopExtras) Bell() error                { return nil }
func (NopExtras) ClearScreen() error         { return nil }
func (NopExtras) Suspend() error             { return nil }
func (NopExtras) Resume() error              { return nil }
