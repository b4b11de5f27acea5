// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: app/statictext.go
// Summary: Read-only, word-wrapped text.

package app

import (
	"strings"

	"github.com/framegrace/texelview/texel"
)

// StaticText draws Text wrapped at word boundaries to its width. Explicit
// newlines start a new line; lines past the bottom are dropped.
type StaticText struct {
	texel.BaseView
	Text string
}

// NewStaticText returns text for use inside a dialog.
func NewStaticText(bounds texel.Rect, text string) *StaticText {
	st := &StaticText{Text: text}
	st.Init(bounds, 0)
	st.SetOwnerKind(texel.OwnerDialog)
	return st
}

func (st *StaticText) Draw(s texel.Surface) {
	r := st.Bounds()
	w, h := r.Width(), r.Height()
	if w <= 0 || h <= 0 {
		return
	}
	attr := st.GetColor(s, texel.SlotText)
	lines := wrapText(st.Text, w)
	buf := texel.NewDrawBuffer(w)
	for y := 0; y < h; y++ {
		buf.MoveChar(0, ' ', attr, w)
		if y < len(lines) {
			buf.MoveStr(0, lines[y], attr)
		}
		st.WriteLine(s, 0, y, w, 1, buf)
	}
}

// wrapText breaks text into lines no wider than width cells. A word wider
// than the line is cut.
func wrapText(text string, width int) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			for texel.StrWidth(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				head, rest := cutWidth(word, width)
				out = append(out, head)
				word = rest
			}
			if word == "" {
				continue
			}
			switch {
			case line == "":
				line = word
			case texel.StrWidth(line)+1+texel.StrWidth(word) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		out = append(out, line)
	}
	return out
}

func cutWidth(s string, width int) (string, string) {
	n := 0
	for i, r := range s {
		rw := texel.StrWidth(string(r))
		if n+rw > width {
			if i == 0 {
				return s[:len(string(r))], s[len(string(r)):]
			}
			return s[:i], s[i:]
		}
		n += rw
	}
	return s, ""
}
