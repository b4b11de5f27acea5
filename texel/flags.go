// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/flags.go
// Summary: Per-view runtime state and construction-time options.

package texel

// StateFlags change at runtime.
type StateFlags uint16

const (
	StateVisible StateFlags = 1 << iota
	StateFocused
	StateDisabled
	StateModal
	StateDefault
	StateSelected
	StateActive
	StateDragging
	StateExposed
	StateClosed
	StateResizing
	StateShadow
	StateCursorVisible
	StateCursorInsert
)

// OptionFlags are fixed once a view is constructed.
type OptionFlags uint16

const (
	OptSelectable OptionFlags = 1 << iota
	// OptTopSelect brings the view to the front when it gains focus by click.
	OptTopSelect
	// OptFirstClick marks widgets that act on the click which focused them.
	OptFirstClick
	OptFramed
	OptPreProcess
	OptPostProcess
	OptBufferedDraw
	OptTileable
	OptCenterX
	OptCenterY
)
