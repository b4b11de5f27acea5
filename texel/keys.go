// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/keys.go
// Summary: Key codes produced by the input decoder.

package texel

import "fmt"

// Key identifies a non-printable key, or KeyRune for text input.
type Key uint16

const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyEscape
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDn
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	// KeyCtrlA..KeyCtrlZ are contiguous.
	KeyCtrlA
)

// KeyCtrl returns the key for Ctrl plus a letter.
func KeyCtrl(letter rune) Key {
	if letter >= 'A' && letter <= 'Z' {
		letter += 'a' - 'A'
	}
	if letter < 'a' || letter > 'z' {
		return KeyNone
	}
	return KeyCtrlA + Key(letter-'a')
}

var keyNames = map[Key]string{
	KeyNone:      "None",
	KeyRune:      "Rune",
	KeyEnter:     "Enter",
	KeyEscape:    "Esc",
	KeyTab:       "Tab",
	KeyBacktab:   "Backtab",
	KeyBackspace: "Backspace",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPgUp:      "PgUp",
	KeyPgDn:      "PgDn",
	KeyInsert:    "Insert",
	KeyDelete:    "Delete",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k >= KeyF1 && k <= KeyF12 {
		return fmt.Sprintf("F%d", int(k-KeyF1)+1)
	}
	if k >= KeyCtrlA && k < KeyCtrlA+26 {
		return fmt.Sprintf("Ctrl+%c", 'A'+rune(k-KeyCtrlA))
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}
