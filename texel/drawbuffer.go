// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/drawbuffer.go
// Summary: Line-oriented cell buffer views fill before blitting to a surface.
// Usage: Views build one row at a time and hand it to Surface.PutBuffer.

package texel

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DrawBuffer holds one line of cells. Writes past the end are dropped.
type DrawBuffer struct {
	cells []Cell
}

// NewDrawBuffer allocates a buffer of the given width filled with blanks.
func NewDrawBuffer(width int) *DrawBuffer {
	if width < 0 {
		width = 0
	}
	b := &DrawBuffer{cells: make([]Cell, width)}
	for i := range b.cells {
		b.cells[i] = Blank
	}
	return b
}

// Len is the buffer width in cells.
func (b *DrawBuffer) Len() int { return len(b.cells) }

// Cells exposes the underlying row. Callers must not retain it across writes.
func (b *DrawBuffer) Cells() []Cell { return b.cells }

// At returns the cell at x or Blank when out of range.
func (b *DrawBuffer) At(x int) Cell {
	if x < 0 || x >= len(b.cells) {
		return Blank
	}
	return b.cells[x]
}

// MoveChar writes count copies of ch starting at indent. A zero ch keeps the
// existing characters and only changes attributes.
func (b *DrawBuffer) MoveChar(indent int, ch rune, attr Attr, count int) {
	for i := 0; i < count; i++ {
		x := indent + i
		if x < 0 {
			continue
		}
		if x >= len(b.cells) {
			return
		}
		if ch != 0 {
			b.cells[x].Ch = ch
		}
		b.cells[x].Attr = attr
	}
}

// MoveStr writes s at indent and returns the number of cells used. Wide runes
// take two cells; the second is a zero-rune continuation.
func (b *DrawBuffer) MoveStr(indent int, s string, attr Attr) int {
	x := indent
	for _, r := range s {
		x = b.putRune(x, r, attr)
		if x >= len(b.cells) {
			break
		}
	}
	return x - indent
}

// MoveCStr writes s where each '~' toggles between normal and highlight.
func (b *DrawBuffer) MoveCStr(indent int, s string, normal, highlight Attr) int {
	x := indent
	attr := normal
	for _, r := range s {
		if r == '~' {
			if attr == normal {
				attr = highlight
			} else {
				attr = normal
			}
			continue
		}
		x = b.putRune(x, r, attr)
		if x >= len(b.cells) {
			break
		}
	}
	return x - indent
}

// PutAttribute changes the attribute at x without touching the character.
func (b *DrawBuffer) PutAttribute(x int, attr Attr) {
	if x >= 0 && x < len(b.cells) {
		b.cells[x].Attr = attr
	}
}

// PutChar changes the character at x without touching the attribute.
func (b *DrawBuffer) PutChar(x int, ch rune) {
	if x >= 0 && x < len(b.cells) {
		b.cells[x].Ch = ch
	}
}

func (b *DrawBuffer) putRune(x int, r rune, attr Attr) int {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		// Combining marks and controls are not representable in a single cell.
		return x
	}
	if x+w > len(b.cells) {
		if x >= 0 && x < len(b.cells) {
			b.cells[x] = Cell{Ch: ' ', Attr: attr}
		}
		return len(b.cells)
	}
	if x >= 0 {
		b.cells[x] = Cell{Ch: r, Attr: attr}
		if w == 2 {
			b.cells[x+1] = Cell{Ch: 0, Attr: attr}
		}
	}
	return x + w
}

// StrWidth returns the number of cells s occupies.
func StrWidth(s string) int { return runewidth.StringWidth(s) }

// CStrLen returns the width of s ignoring '~' highlight markers.
func CStrLen(s string) int { return runewidth.StringWidth(strings.ReplaceAll(s, "~", "")) }
