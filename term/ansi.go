// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/ansi.go
// Summary: The handful of ANSI/xterm sequences the renderer and backends emit.

package term

import (
	"strconv"

	"github.com/framegrace/texelview/texel"
)

// Control sequences shared by the backends.
const (
	SeqEnterAltScreen = "\x1b[?1049h"
	SeqExitAltScreen  = "\x1b[?1049l"
	SeqEnableMouse    = "\x1b[?1000h\x1b[?1002h\x1b[?1006h"
	SeqDisableMouse   = "\x1b[?1006l\x1b[?1002l\x1b[?1000l"
	SeqShowCursor     = "\x1b[?25h"
	SeqHideCursor     = "\x1b[?25l"
	SeqClearScreen    = "\x1b[2J"
	SeqResetAttrs     = "\x1b[0m"
	SeqBell           = "\a"
)

// AppendCursorPos appends a CUP sequence for the zero-based cell (x, y).
func AppendCursorPos(b []byte, x, y int) []byte {
	b = append(b, '\x1b', '[')
	b = strconv.AppendInt(b, int64(y+1), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(x+1), 10)
	return append(b, 'H')
}

// AppendAttr appends an SGR sequence selecting a's 16-colour pair.
func AppendAttr(b []byte, a texel.Attr) []byte {
	b = append(b, '\x1b', '[', '0', ';')
	b = strconv.AppendInt(b, int64(sgrColor(a.Fg(), 30, 90)), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(sgrColor(a.Bg(), 40, 100)), 10)
	return append(b, 'm')
}

// ansiOrder maps the palette's colour order onto ANSI colour numbers.
var ansiOrder = [8]int{0, 4, 2, 6, 1, 5, 3, 7}

func sgrColor(c texel.Color, base, bright int) int {
	c &= 0x0F
	if c < 8 {
		return base + ansiOrder[c]
	}
	return bright + ansiOrder[c-8]
}
