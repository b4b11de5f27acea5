// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: app/clock.go
// Summary: Time-of-day view for the status row, refreshed from the idle hook.
// Usage: c := NewClock(); a.Insert(c); WithIdle(func(ctx) { c.Update(ctx.Now()) })

package app

import (
	"time"

	"github.com/framegrace/texelview/texel"
)

// DefaultClockFormat is the layout a new Clock uses.
const DefaultClockFormat = "15:04:05"

// Clock sits at the right end of the bottom row and follows screen size
// changes there.
type Clock struct {
	texel.BaseView
	Format string
	text   string
}

// NewClock returns a clock positioned for a cols x rows screen.
func NewClock(cols, rows int) *Clock {
	c := &Clock{Format: DefaultClockFormat}
	c.Init(texel.Rect{}, 0)
	c.place(cols, rows)
	return c
}

func (c *Clock) place(cols, rows int) {
	w := len(c.Format)
	c.SetBounds(texel.RectAt(cols-w-1, rows-1, w, 1))
}

// Update formats now and reports whether the shown text changed.
func (c *Clock) Update(now time.Time) bool {
	s := now.Format(c.Format)
	if s == c.text {
		return false
	}
	c.text = s
	return true
}

// Text returns the last formatted time.
func (c *Clock) Text() string { return c.text }

func (c *Clock) Draw(s texel.Surface) {
	w := c.Bounds().Width()
	if w <= 0 {
		return
	}
	attr := c.GetColor(s, texel.ColorStatusNormal)
	buf := texel.NewDrawBuffer(w)
	buf.MoveChar(0, ' ', attr, w)
	if tw := texel.StrWidth(c.text); tw <= w {
		buf.MoveStr(w-tw, c.text, attr)
	}
	c.WriteLine(s, 0, 0, w, 1, buf)
}

func (c *Clock) HandleEvent(ctx *texel.Context, ev *texel.Event) {
	if ev.What == texel.EvBroadcast && ev.Command == texel.CmScreenChanged && ctx != nil && ctx.Driver != nil {
		c.place(ctx.Driver.Size())
	}
}
