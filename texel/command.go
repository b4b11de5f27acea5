// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/command.go
// Summary: Standard command identifiers and the command availability set.

package texel

// Standard commands. Application commands should start at CmUser.
const (
	CmValid  uint16 = 0
	CmQuit   uint16 = 1
	CmError  uint16 = 2
	CmMenu   uint16 = 3
	CmClose  uint16 = 4
	CmZoom   uint16 = 5
	CmResize uint16 = 6
	CmNext   uint16 = 7
	CmPrev   uint16 = 8
	CmHelp   uint16 = 9

	// Dialog results.
	CmOK      uint16 = 10
	CmCancel  uint16 = 11
	CmYes     uint16 = 12
	CmNo      uint16 = 13
	CmDefault uint16 = 14

	// Broadcasts.
	CmReceivedFocus     uint16 = 50
	CmReleasedFocus     uint16 = 51
	CmCommandSetChanged uint16 = 52
	CmScreenChanged     uint16 = 53
	CmIdle              uint16 = 54

	CmUser uint16 = 100
)

// CommandSet is a fixed bitset addressed by 16-bit command ids. The zero value
// has every command disabled.
type CommandSet struct {
	bits [1 << 16 / 64]uint64
}

// AllCommands returns a set with every command enabled.
func AllCommands() *CommandSet {
	cs := &CommandSet{}
	cs.EnableAll()
	return cs
}

// Has reports whether cmd is enabled. A nil set enables everything.
func (cs *CommandSet) Has(cmd uint16) bool {
	if cs == nil {
		return true
	}
	return cs.bits[cmd>>6]&(1<<(cmd&63)) != 0
}

func (cs *CommandSet) Enable(cmds ...uint16) {
	for _, c := range cmds {
		cs.bits[c>>6] |= 1 << (c & 63)
	}
}

func (cs *CommandSet) Disable(cmds ...uint16) {
	for _, c := range cmds {
		cs.bits[c>>6] &^= 1 << (c & 63)
	}
}

func (cs *CommandSet) EnableAll() {
	for i := range cs.bits {
		cs.bits[i] = ^uint64(0)
	}
}

// Equal compares two sets bit for bit.
func (cs *CommandSet) Equal(o *CommandSet) bool {
	if cs == nil || o == nil {
		return cs == o
	}
	return cs.bits == o.bits
}

// Clone returns an independent copy.
func (cs *CommandSet) Clone() *CommandSet {
	if cs == nil {
		return nil
	}
	c := *cs
	return &c
}
