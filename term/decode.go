// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/decode.go
// Summary: Turns raw terminal input into texel events.
// Notes: A lone ESC is held until more input arrives or its timer expires, so
//        ESC followed quickly by a character becomes Alt+character.

package term

import (
	"time"
	"unicode/utf8"

	"github.com/framegrace/texelview/texel"
)

const (
	DefaultEscapeTimeout = 300 * time.Millisecond
	DefaultDoubleClick   = 400 * time.Millisecond

	// Longest escape sequence we wait for before discarding it.
	maxSequence = 32
)

type click struct {
	at      time.Time
	pos     texel.Point
	buttons texel.ButtonMask
	valid   bool
}

// decoder is fed raw bytes and yields complete events.
type decoder struct {
	buf        []byte
	escAt      time.Time
	escTimeout time.Duration
	dblClick   time.Duration
	last       click
}

func newDecoder(escTimeout, dblClick time.Duration) *decoder {
	return &decoder{escTimeout: escTimeout, dblClick: dblClick}
}

// escPending reports whether a lone ESC is waiting for its timer.
func (d *decoder) escPending() bool {
	return len(d.buf) > 0 && d.buf[0] == 0x1b
}

// deadline returns when the pending ESC, if any, turns into a plain Escape.
func (d *decoder) deadline() (time.Time, bool) {
	if !d.escPending() {
		return time.Time{}, false
	}
	return d.escAt.Add(d.escTimeout), true
}

// expire flushes a pending ESC whose timer has run out.
func (d *decoder) expire(now time.Time) []texel.Event {
	dl, ok := d.deadline()
	if !ok || now.Before(dl) {
		return nil
	}
	d.buf = d.buf[1:]
	out := []texel.Event{texel.NewKey(texel.KeyEscape, 0)}
	// Whatever followed the ESC is no longer part of a sequence.
	rest := d.buf
	d.buf = nil
	return append(out, d.feed(rest, now)...)
}

// feed appends p and decodes as much as possible.
func (d *decoder) feed(p []byte, now time.Time) []texel.Event {
	var out []texel.Event
	if dl, ok := d.deadline(); ok && len(p) > 0 && !now.Before(dl) {
		out = append(out, d.expire(now)...)
	}
	hadESC := d.escPending()
	d.buf = append(d.buf, p...)

	i := 0
	for i < len(d.buf) {
		b := d.buf[i]
		switch {
		case b == 0x1b:
			n, ev, ok := d.parseEscape(d.buf[i:], now)
			if n == 0 {
				if i > 0 || !hadESC {
					d.escAt = now
				}
				d.buf = append(d.buf[:0], d.buf[i:]...)
				return out
			}
			if ok {
				out = append(out, ev)
			}
			i += n
			hadESC = false
		case b < 0x20 || b == 0x7f:
			if ev, ok := controlKey(b); ok {
				out = append(out, ev)
			}
			i++
		case b < 0x80:
			out = append(out, texel.NewRune(rune(b), 0))
			i++
		default:
			if !utf8.FullRune(d.buf[i:]) {
				d.buf = append(d.buf[:0], d.buf[i:]...)
				return out
			}
			r, size := utf8.DecodeRune(d.buf[i:])
			if r != utf8.RuneError {
				out = append(out, texel.NewRune(r, 0))
			}
			i += size
		}
	}
	d.buf = d.buf[:0]
	return out
}

// parseEscape decodes a sequence starting at ESC. n is 0 when more input is
// needed; ok is false when the sequence was consumed but means nothing.
func (d *decoder) parseEscape(p []byte, now time.Time) (n int, ev texel.Event, ok bool) {
	if len(p) < 2 {
		return 0, ev, false
	}
	switch b := p[1]; {
	case b == 0x1b:
		// ESC ESC: the first is a plain Escape, the second starts over.
		return 1, texel.NewKey(texel.KeyEscape, 0), true
	case b == '[':
		return d.parseCSI(p, now)
	case b == 'O':
		if len(p) < 3 {
			return 0, ev, false
		}
		if key, ok := ss3Keys[p[2]]; ok {
			return 3, texel.NewKey(key, 0), true
		}
		return 3, ev, false
	case b < 0x20 || b == 0x7f:
		ev, ok := controlKey(b)
		ev.Key.Mod |= texel.ModAlt
		return 2, ev, ok
	case b < 0x80:
		return 2, texel.NewRune(rune(b), texel.ModAlt), true
	default:
		if !utf8.FullRune(p[1:]) {
			return 0, ev, false
		}
		r, size := utf8.DecodeRune(p[1:])
		return 1 + size, texel.NewRune(r, texel.ModAlt), r != utf8.RuneError
	}
}

func (d *decoder) parseCSI(p []byte, now time.Time) (int, texel.Event, bool) {
	if len(p) < 3 {
		return 0, texel.Event{}, false
	}
	if p[2] == '<' {
		return d.parseSGRMouse(p, now)
	}
	end := 2
	for ; end < len(p); end++ {
		b := p[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			break
		}
		if b < 0x20 || b > 0x7e || end >= maxSequence {
			// Garbage: drop the introducer and carry on.
			return 2, texel.Event{}, false
		}
	}
	if end >= len(p) {
		return 0, texel.Event{}, false
	}
	params := parseParams(p[2:end])
	final := p[end]
	n := end + 1

	var mod texel.ModMask
	if len(params) >= 2 {
		mod = xtermModifier(params[1])
	}
	if final == '~' {
		if len(params) == 0 {
			return n, texel.Event{}, false
		}
		key, ok := tildeKeys[params[0]]
		if !ok {
			return n, texel.Event{}, false
		}
		return n, texel.NewKey(key, mod), true
	}
	if final == 'Z' {
		return n, texel.NewKey(texel.KeyBacktab, texel.ModShift), true
	}
	if key, ok := ss3Keys[final]; ok {
		return n, texel.NewKey(key, mod), true
	}
	return n, texel.Event{}, false
}

// parseSGRMouse decodes ESC [ < btn ; x ; y (M|m).
func (d *decoder) parseSGRMouse(p []byte, now time.Time) (int, texel.Event, bool) {
	end := 3
	for ; end < len(p); end++ {
		if p[end] == 'M' || p[end] == 'm' {
			break
		}
		if end >= maxSequence {
			return 3, texel.Event{}, false
		}
	}
	if end >= len(p) {
		return 0, texel.Event{}, false
	}
	n := end + 1
	params := parseParams(p[3:end])
	if len(params) != 3 {
		return n, texel.Event{}, false
	}
	btn, x, y := params[0], params[1]-1, params[2]-1
	if x < 0 || y < 0 {
		return n, texel.Event{}, false
	}

	var mod texel.ModMask
	if btn&4 != 0 {
		mod |= texel.ModShift
	}
	if btn&8 != 0 {
		mod |= texel.ModAlt
	}
	if btn&16 != 0 {
		mod |= texel.ModCtrl
	}
	motion := btn&32 != 0
	wheel := btn&64 != 0
	id := btn & 3

	var ev texel.Event
	switch {
	case wheel:
		b := texel.WheelUp
		if id == 1 {
			b = texel.WheelDown
		}
		ev = texel.NewMouse(texel.EvMouseWheel, x, y, b)
	case p[end] == 'm':
		ev = texel.NewMouse(texel.EvMouseUp, x, y, sgrButton(id))
	case motion && id == 3:
		ev = texel.NewMouse(texel.EvMouseMove, x, y, 0)
	case motion:
		ev = texel.NewMouse(texel.EvMouseDrag, x, y, sgrButton(id))
	default:
		ev = texel.NewMouse(texel.EvMouseDown, x, y, sgrButton(id))
		ev.Mouse.Double = d.isDoubleClick(ev.Mouse, now)
	}
	ev.Mouse.Mod = mod
	return n, ev, true
}

// isDoubleClick compares a press with the previous one. A detected double
// click resets the tracker so a third press starts a new pair.
func (d *decoder) isDoubleClick(m texel.MouseEvent, now time.Time) bool {
	prev := d.last
	if prev.valid && prev.pos == m.Pos && prev.buttons == m.Buttons && now.Sub(prev.at) <= d.dblClick {
		d.last = click{}
		return true
	}
	d.last = click{at: now, pos: m.Pos, buttons: m.Buttons, valid: true}
	return false
}

func sgrButton(id int) texel.ButtonMask {
	switch id {
	case 0:
		return texel.ButtonLeft
	case 1:
		return texel.ButtonMiddle
	case 2:
		return texel.ButtonRight
	}
	return 0
}

func controlKey(b byte) (texel.Event, bool) {
	switch b {
	case 0x0d, 0x0a:
		return texel.NewKey(texel.KeyEnter, 0), true
	case 0x09:
		return texel.NewKey(texel.KeyTab, 0), true
	case 0x08, 0x7f:
		return texel.NewKey(texel.KeyBackspace, 0), true
	case 0x1b:
		return texel.NewKey(texel.KeyEscape, 0), true
	}
	if b >= 0x01 && b <= 0x1a {
		return texel.NewKey(texel.KeyCtrlA+texel.Key(b-0x01), texel.ModCtrl), true
	}
	return texel.Event{}, false
}

// xtermModifier decodes the "1 + bits" modifier parameter.
func xtermModifier(p int) texel.ModMask {
	p--
	var m texel.ModMask
	if p&1 != 0 {
		m |= texel.ModShift
	}
	if p&2 != 0 {
		m |= texel.ModAlt
	}
	if p&4 != 0 {
		m |= texel.ModCtrl
	}
	return m
}

func parseParams(p []byte) []int {
	var out []int
	val, have := 0, false
	for _, b := range p {
		switch {
		case b >= '0' && b <= '9':
			if val < 100000 {
				val = val*10 + int(b-'0')
			}
			have = true
		case b == ';':
			out = append(out, val)
			val, have = 0, false
		default:
			return nil
		}
	}
	if have || len(out) > 0 {
		out = append(out, val)
	}
	return out
}

// Final bytes shared by SS3 and parameterised CSI sequences.
var ss3Keys = map[byte]texel.Key{
	'A': texel.KeyUp,
	'B': texel.KeyDown,
	'C': texel.KeyRight,
	'D': texel.KeyLeft,
	'H': texel.KeyHome,
	'F': texel.KeyEnd,
	'P': texel.KeyF1,
	'Q': texel.KeyF2,
	'R': texel.KeyF3,
	'S': texel.KeyF4,
}

var tildeKeys = map[int]texel.Key{
	1:  texel.KeyHome,
	2:  texel.KeyInsert,
	3:  texel.KeyDelete,
	4:  texel.KeyEnd,
	5:  texel.KeyPgUp,
	6:  texel.KeyPgDn,
	7:  texel.KeyHome,
	8:  texel.KeyEnd,
	11: texel.KeyF1,
	12: texel.KeyF2,
	13: texel.KeyF3,
	14: texel.KeyF4,
	15: texel.KeyF5,
	17: texel.KeyF6,
	18: texel.KeyF7,
	19: texel.KeyF8,
	20: texel.KeyF9,
	21: texel.KeyF10,
	23: texel.KeyF11,
	24: texel.KeyF12,
}
