// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/cell.go
// Summary: Packed 4+4-bit colour attributes and screen cells.

package texel

// Color is one of the sixteen terminal colours.
type Color uint8

const (
	Black Color = iota
	Blue
	Green
	Cyan
	Red
	Magenta
	Brown
	LightGray
	DarkGray
	LightBlue
	LightGreen
	LightCyan
	LightRed
	LightMagenta
	Yellow
	White
)

var colorNames = [...]string{
	"black", "blue", "green", "cyan", "red", "magenta", "brown", "lightgray",
	"darkgray", "lightblue", "lightgreen", "lightcyan", "lightred", "lightmagenta", "yellow", "white",
}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "invalid"
}

// ParseColor accepts the lower-case colour names, ignoring case, spaces,
// dashes and underscores ("Light Gray", "light_gray").
func ParseColor(name string) (Color, bool) {
	key := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		ch := name[i]
		switch {
		case ch == ' ' || ch == '-' || ch == '_':
			continue
		case ch >= 'A' && ch <= 'Z':
			ch += 'a' - 'A'
		}
		key = append(key, ch)
	}
	for i, n := range colorNames {
		if n == string(key) {
			return Color(i), true
		}
	}
	return 0, false
}

// Attr packs a foreground colour in the low nibble and a background colour in
// the high nibble.
type Attr uint8

// ErrorAttr marks a colour that could not be resolved through the palette
// chain. It is deliberately loud.
const ErrorAttr Attr = 0xCF

// MakeAttr packs fg and bg.
func MakeAttr(fg, bg Color) Attr {
	return Attr(uint8(bg&0x0F)<<4 | uint8(fg&0x0F))
}

func (a Attr) Fg() Color { return Color(a & 0x0F) }
func (a Attr) Bg() Color { return Color(a >> 4) }

// Cell is one character position on screen. A zero Ch marks the trailing half
// of a double-width rune.
type Cell struct {
	Ch   rune
	Attr Attr
}

// Blank is the cell a freshly allocated frame is filled with.
var Blank = Cell{Ch: ' ', Attr: MakeAttr(LightGray, Black)}
