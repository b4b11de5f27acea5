// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/termtest/backend.go
// Summary: Scripted in-memory backend with a manual clock.
// Usage: b := termtest.New(80, 25); b.Feed("\r"); t := term.New(b, term.WithClock(b.Clock.Now)).
// Notes: An empty poll advances the clock by its full timeout, so timer
//        driven behaviour is deterministic.

package termtest

import (
	"strings"
	"time"

	"github.com/framegrace/texelview/term"
)

// Clock is a manually advanced time source.
type Clock struct {
	now time.Time
}

// NewClock starts at a fixed instant.
func NewClock() *Clock {
	return &Clock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time          { return c.now }
func (c *Clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type step struct {
	delay time.Duration
	in    term.RawInput
}

// Cursor is the last cursor state the terminal pushed.
type Cursor struct {
	Visible bool
	X, Y    int
}

// Backend records everything written to it and replays scripted input.
type Backend struct {
	term.NopExtras

	Clock *Clock
	Cols  int
	Rows  int

	Writes   [][]byte
	Flushes  int
	Polls    int
	Bells    int
	Cursor   Cursor
	Inited   bool
	Cleaned  bool
	Timeouts []time.Duration

	// Errors injected into the matching calls.
	InitErr  error
	SizeErr  error
	PollErr  error
	WriteErr error
	FlushErr error

	script []step
}

// New returns a cols x rows backend with its own clock.
func New(cols, rows int) *Backend {
	return &Backend{Clock: NewClock(), Cols: cols, Rows: rows}
}

// Feed queues input that is available immediately.
func (b *Backend) Feed(data string) { b.FeedAfter(0, data) }

// FeedAfter queues input that arrives d after the previous script step.
func (b *Backend) FeedAfter(d time.Duration, data string) {
	b.script = append(b.script, step{delay: d, in: term.RawInput{Bytes: []byte(data)}})
}

// FeedResize queues a size change.
func (b *Backend) FeedResize(cols, rows int) {
	b.script = append(b.script, step{in: term.RawInput{Resize: true, Cols: cols, Rows: rows}})
}

// Pending reports how many script steps are left.
func (b *Backend) Pending() int { return len(b.script) }

func (b *Backend) Init() error {
	if b.InitErr != nil {
		return b.InitErr
	}
	b.Inited = true
	return nil
}

func (b *Backend) Cleanup() error {
	b.Cleaned = true
	return nil
}

func (b *Backend) Size() (int, int, error) {
	if b.SizeErr != nil {
		return 0, 0, b.SizeErr
	}
	return b.Cols, b.Rows, nil
}

// PollEvent hands out the next script step if it is due within timeout.
func (b *Backend) PollEvent(timeout time.Duration) (term.RawInput, bool, error) {
	b.Polls++
	b.Timeouts = append(b.Timeouts, timeout)
	if b.PollErr != nil {
		return term.RawInput{}, false, b.PollErr
	}
	if len(b.script) == 0 {
		b.Clock.Advance(timeout)
		return term.RawInput{}, false, nil
	}
	s := &b.script[0]
	if s.delay > timeout {
		s.delay -= timeout
		b.Clock.Advance(timeout)
		return term.RawInput{}, false, nil
	}
	b.Clock.Advance(s.delay)
	in := s.in
	b.script = b.script[1:]
	if in.Resize {
		b.Cols, b.Rows = in.Cols, in.Rows
	}
	return in, true, nil
}

func (b *Backend) WriteRaw(p []byte) error {
	if b.WriteErr != nil {
		return b.WriteErr
	}
	b.Writes = append(b.Writes, append([]byte(nil), p...))
	return nil
}

func (b *Backend) Flush() error {
	if b.FlushErr != nil {
		return b.FlushErr
	}
	b.Flushes++
	return nil
}

func (b *Backend) ShowCursor(x, y int) error {
	b.Cursor = Cursor{Visible: true, X: x, Y: y}
	return nil
}

func (b *Backend) HideCursor() error {
	b.Cursor = Cursor{}
	return nil
}

func (b *Backend) Bell() error {
	b.Bells++
	return nil
}

// Output concatenates every write so far.
func (b *Backend) Output() string {
	var sb strings.Builder
	for _, w := range b.Writes {
		sb.Write(w)
	}
	return sb.String()
}

// ResetWrites forgets recorded writes.
func (b *Backend) ResetWrites() { b.Writes = nil }

var _ term.Backend = (*Backend)(nil)
