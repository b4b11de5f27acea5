// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: app/clock_test.go
// Summary: Clock formatting, placement and resize tracking.

package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelview/app"
	"github.com/framegrace/texelview/texel"
)

func TestClockUpdateReportsChanges(t *testing.T) {
	c := app.NewClock(40, 10)
	at := time.Date(2025, 3, 1, 9, 30, 5, 0, time.UTC)
	assert.True(t, c.Update(at))
	assert.False(t, c.Update(at.Add(100*time.Millisecond)))
	assert.Equal(t, "09:30:05", c.Text())
	assert.True(t, c.Update(at.Add(time.Second)))
	assert.Equal(t, texel.RectAt(31, 9, 8, 1), c.Bounds())
}

func TestClockDrawsOverStatusRowAndFollowsResize(t *testing.T) {
	a, tm, b := newApp(t, 40, 10)
	c := app.NewClock(40, 10)
	a.Insert(c)
	c.Update(b.Clock.Now())

	b.FeedResize(50, 12)
	b.Feed("\x1bx")
	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, texel.RectAt(41, 11, 8, 1), c.Bounds())
	assert.Equal(t, "00:00:00", c.Text())
	assert.Equal(t, '0', tm.CellAt(41, 11).Ch)
	assert.Equal(t, texel.DefaultTheme().Root[texel.ColorStatusNormal], tm.CellAt(41, 11).Attr)
}
