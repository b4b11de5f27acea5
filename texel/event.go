// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/event.go
// Summary: Tagged event value routed through the view tree.
// Usage: Created by the terminal decoder, rewritten by views, bubbled back to owners.

package texel

import "fmt"

// EventType tags the variant held by an Event.
type EventType uint16

const (
	EvNothing   EventType = 0
	EvMouseDown EventType = 1 << iota
	EvMouseUp
	EvMouseMove
	EvMouseDrag
	EvMouseWheel
	EvKeyDown
	EvCommand
	EvBroadcast
)

// Event class masks.
const (
	EvMouse    = EvMouseDown | EvMouseUp | EvMouseMove | EvMouseDrag | EvMouseWheel
	EvKeyboard = EvKeyDown
	EvMessage  = EvCommand | EvBroadcast
)

func (t EventType) String() string {
	switch t {
	case EvNothing:
		return "nothing"
	case EvMouseDown:
		return "mouse-down"
	case EvMouseUp:
		return "mouse-up"
	case EvMouseMove:
		return "mouse-move"
	case EvMouseDrag:
		return "mouse-drag"
	case EvMouseWheel:
		return "mouse-wheel"
	case EvKeyDown:
		return "key"
	case EvCommand:
		return "command"
	case EvBroadcast:
		return "broadcast"
	}
	return fmt.Sprintf("event(%d)", uint16(t))
}

// ModMask holds keyboard modifiers.
type ModMask uint8

const (
	ModShift ModMask = 1 << iota
	ModAlt
	ModCtrl
)

// ButtonMask holds pressed mouse buttons and wheel directions.
type ButtonMask uint8

const (
	ButtonLeft ButtonMask = 1 << iota
	ButtonMiddle
	ButtonRight
	WheelUp
	WheelDown
)

// KeyEvent describes a key press. Code is KeyRune for printable input.
type KeyEvent struct {
	Code Key
	Rune rune
	Mod  ModMask
}

// MouseEvent describes pointer activity in absolute screen coordinates.
type MouseEvent struct {
	Pos     Point
	Buttons ButtonMask
	Double  bool
	Mod     ModMask
}

// Event is passed by pointer through dispatch. Handlers may leave it, clear it
// or replace it.
type Event struct {
	What    EventType
	Key     KeyEvent
	Mouse   MouseEvent
	Command uint16
	// Info carries an optional payload on commands and broadcasts.
	Info any
}

// Clear marks the event as handled.
func (e *Event) Clear() {
	*e = Event{}
}

// Handled reports whether the event has been cleared.
func (e *Event) Handled() bool { return e.What == EvNothing }

// IsKey reports a key press of the given code, whatever the modifiers.
func (e *Event) IsKey(code Key) bool {
	return e.What == EvKeyDown && e.Key.Code == code
}

// IsCommand reports a command or broadcast carrying cmd.
func (e *Event) IsCommand(cmd uint16) bool {
	return e.What&EvMessage != 0 && e.Command == cmd
}

func (e Event) String() string {
	switch {
	case e.What == EvKeyDown:
		if e.Key.Code == KeyRune {
			return fmt.Sprintf("key(%q mod=%d)", e.Key.Rune, e.Key.Mod)
		}
		return fmt.Sprintf("key(%s mod=%d)", e.Key.Code, e.Key.Mod)
	case e.What&EvMouse != 0:
		return fmt.Sprintf("%s(%v btn=%d dbl=%t)", e.What, e.Mouse.Pos, e.Mouse.Buttons, e.Mouse.Double)
	case e.What&EvMessage != 0:
		return fmt.Sprintf("%s(%d)", e.What, e.Command)
	}
	return e.What.String()
}

// NewKey builds a key event.
func NewKey(code Key, mod ModMask) Event {
	return Event{What: EvKeyDown, Key: KeyEvent{Code: code, Mod: mod}}
}

// NewRune builds a printable key event.
func NewRune(r rune, mod ModMask) Event {
	return Event{What: EvKeyDown, Key: KeyEvent{Code: KeyRune, Rune: r, Mod: mod}}
}

// NewCommand builds a command event.
func NewCommand(cmd uint16, info any) Event {
	return Event{What: EvCommand, Command: cmd, Info: info}
}

// NewBroadcast builds a broadcast event.
func NewBroadcast(cmd uint16, info any) Event {
	return Event{What: EvBroadcast, Command: cmd, Info: info}
}

// NewMouse builds a mouse event of the given kind.
func NewMouse(what EventType, x, y int, buttons ButtonMask) Event {
	return Event{What: what, Mouse: MouseEvent{Pos: Point{X: x, Y: y}, Buttons: buttons}}
}
