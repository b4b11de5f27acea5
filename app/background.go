// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: app/background.go
// Summary: Patterned fill behind the desktop windows.

package app

import "github.com/framegrace/texelview/texel"

// DefaultPattern is the rune a new desktop background is filled with.
const DefaultPattern = '░'

// Background paints its whole area with one rune in the background colour.
type Background struct {
	texel.BaseView
	Pattern rune
}

// NewBackground returns a background covering bounds.
func NewBackground(bounds texel.Rect, pattern rune) *Background {
	b := &Background{Pattern: pattern}
	b.Init(bounds, 0)
	return b
}

func (b *Background) Draw(s texel.Surface) {
	texel.FillRect(s, b.Bounds(), texel.Cell{Ch: b.Pattern, Attr: b.GetColor(s, texel.ColorBackground)})
}
