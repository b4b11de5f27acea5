// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/terminal.go
// Summary: Double-buffered render and event front end over a Backend.
// Usage: t := term.New(backend); t.Init(); draw into t; t.Flush(); t.PollEvent(d).
// Notes: Flush writes only cells that differ from the previous frame, one
//        WriteRaw per contiguous run. A resize forces the next flush to
//        rewrite everything.

package term

import (
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"github.com/framegrace/texelview/texel"
)

type cursorState struct {
	visible bool
	insert  bool
	x, y    int
}

// Terminal implements texel.Driver.
type Terminal struct {
	backend Backend
	theme   *texel.Theme
	clock   func() time.Time

	cols, rows int
	cur, prev  []texel.Cell
	prevValid  bool
	clips      []texel.Rect

	pending *texel.Event
	queue   []texel.Event
	dec     *decoder

	cursor      cursorState
	shown       cursorState
	shownValid  bool
	escTimeout  time.Duration
	doubleClick time.Duration
	out         []byte
	started     bool
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithEscapeTimeout sets how long a lone ESC waits for a following character.
func WithEscapeTimeout(d time.Duration) Option {
	return func(t *Terminal) {
		if d > 0 {
			t.escTimeout = d
		}
	}
}

// WithDoubleClick sets the double-click window.
func WithDoubleClick(d time.Duration) Option {
	return func(t *Terminal) {
		if d > 0 {
			t.doubleClick = d
		}
	}
}

// WithClock replaces time.Now for timers.
func WithClock(now func() time.Time) Option {
	return func(t *Terminal) {
		if now != nil {
			t.clock = now
		}
	}
}

// WithTheme sets the palette used to resolve view colours.
func WithTheme(th *texel.Theme) Option {
	return func(t *Terminal) {
		if th != nil {
			t.theme = th
		}
	}
}

// New wraps b. No I/O happens until Init.
func New(b Backend, opts ...Option) *Terminal {
	t := &Terminal{
		backend:     b,
		theme:       texel.DefaultTheme(),
		clock:       time.Now,
		escTimeout:  DefaultEscapeTimeout,
		doubleClick: DefaultDoubleClick,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.dec = newDecoder(t.escTimeout, t.doubleClick)
	return t
}

// Init prepares the backend and sizes the frames.
func (t *Terminal) Init() error {
	if err := t.backend.Init(); err != nil {
		return errors.Wrap(err, "init backend")
	}
	t.started = true
	return t.Resize()
}

// Close releases the backend. It is safe to call more than once.
func (t *Terminal) Close() error {
	if !t.started {
		return nil
	}
	t.started = false
	return errors.Wrap(t.backend.Cleanup(), "cleanup backend")
}

// Backend returns the device the terminal drives.
func (t *Terminal) Backend() Backend { return t.backend }

// Resize re-reads the backend size and reallocates the frames.
func (t *Terminal) Resize() error {
	cols, rows, err := t.backend.Size()
	if err != nil {
		return errors.Wrap(err, "query size")
	}
	t.resize(cols, rows)
	return nil
}

func (t *Terminal) resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	debugLog.Printf("resize %dx%d -> %dx%d", t.cols, t.rows, cols, rows)
	t.cols, t.rows = cols, rows
	t.cur = make([]texel.Cell, cols*rows)
	t.prev = make([]texel.Cell, cols*rows)
	for i := range t.cur {
		t.cur[i] = texel.Blank
	}
	t.clips = t.clips[:0]
	t.Invalidate()
}

// Invalidate makes the next Flush rewrite every cell.
func (t *Terminal) Invalidate() {
	t.prevValid = false
	t.shownValid = false
}

// Size returns the frame dimensions.
func (t *Terminal) Size() (int, int) { return t.cols, t.rows }

// Theme returns the active theme.
func (t *Terminal) Theme() *texel.Theme { return t.theme }

// SetTheme replaces the theme; the next draw picks it up.
func (t *Terminal) SetTheme(th *texel.Theme) {
	if th != nil {
		t.theme = th
	}
}

// Clip returns the intersection of all pushed clips, or the whole screen.
func (t *Terminal) Clip() texel.Rect {
	if n := len(t.clips); n > 0 {
		return t.clips[n-1]
	}
	return texel.RectAt(0, 0, t.cols, t.rows)
}

// PushClip narrows the clip to r. The returned release restores the depth
// seen before this push; calling it again does nothing.
func (t *Terminal) PushClip(r texel.Rect) func() {
	depth := len(t.clips)
	t.clips = append(t.clips, r.Intersect(t.Clip()))
	released := false
	return func() {
		if released {
			return
		}
		released = true
		if len(t.clips) > depth {
			t.clips = t.clips[:depth]
		}
	}
}

// ClipDepth reports how many clips are pushed.
func (t *Terminal) ClipDepth() int { return len(t.clips) }

// SetCell writes c at (x, y) if the point is inside the clip. Overwriting
// either half of a wide rune blanks the other half, so the frame never holds
// half a glyph.
func (t *Terminal) SetCell(x, y int, c texel.Cell) {
	if !t.Clip().Contains(texel.Point{X: x, Y: y}) {
		return
	}
	i := y*t.cols + x
	old := t.cur[i]
	if c.Ch != 0 && old.Ch == 0 && x > 0 && isWide(t.cur[i-1].Ch) {
		t.cur[i-1] = texel.Cell{Ch: ' ', Attr: t.cur[i-1].Attr}
	}
	if isWide(old.Ch) && x+1 < t.cols && t.cur[i+1].Ch == 0 {
		t.cur[i+1] = texel.Cell{Ch: ' ', Attr: old.Attr}
	}
	t.cur[i] = c
}

func isWide(r rune) bool { return r != 0 && runewidth.RuneWidth(r) == 2 }

// PutBuffer copies the first n cells of b to row y starting at x.
func (t *Terminal) PutBuffer(x, y, n int, b *texel.DrawBuffer) {
	if n > b.Len() {
		n = b.Len()
	}
	for i := 0; i < n; i++ {
		t.SetCell(x+i, y, b.At(i))
	}
}

// CellAt returns the current frame's cell at (x, y).
func (t *Terminal) CellAt(x, y int) texel.Cell {
	if x < 0 || y < 0 || x >= t.cols || y >= t.rows {
		return texel.Cell{}
	}
	return t.cur[y*t.cols+x]
}

// Frame returns a copy of the current frame in row-major order.
func (t *Terminal) Frame() []texel.Cell {
	return append([]texel.Cell(nil), t.cur...)
}

// Clear fills the current frame with blanks.
func (t *Terminal) Clear() {
	for i := range t.cur {
		t.cur[i] = texel.Blank
	}
}

func (t *Terminal) ShowCursor(x, y int, insert bool) {
	t.cursor = cursorState{visible: true, insert: insert, x: x, y: y}
}

func (t *Terminal) HideCursor() { t.cursor = cursorState{} }

// Flush sends the cells that changed since the last flush to the backend.
func (t *Terminal) Flush() error {
	wrote := false
	attrValid := false
	var attr texel.Attr

	for y := 0; y < t.rows; y++ {
		row := y * t.cols
		x := 0
		for x < t.cols {
			if t.prevValid && t.cur[row+x] == t.prev[row+x] {
				x++
				continue
			}
			out := AppendCursorPos(t.out[:0], x, y)
			wideTail := false
			for x < t.cols && !(t.prevValid && t.cur[row+x] == t.prev[row+x]) {
				c := t.cur[row+x]
				x++
				if c.Ch == 0 && wideTail {
					wideTail = false
					continue
				}
				if !attrValid || c.Attr != attr {
					out = AppendAttr(out, c.Attr)
					attr, attrValid = c.Attr, true
				}
				ch := c.Ch
				if ch == 0 || ch < ' ' {
					ch = ' '
				}
				out = append(out, string(ch)...)
				wideTail = runewidth.RuneWidth(ch) == 2
			}
			t.out = out
			if err := t.backend.WriteRaw(out); err != nil {
				return errors.Wrap(err, "write frame")
			}
			wrote = true
		}
	}
	copy(t.prev, t.cur)
	t.prevValid = true

	t.syncCursor(wrote)
	return errors.Wrap(t.backend.Flush(), "flush backend")
}

// syncCursor pushes the cursor to the backend when it changed or when cell
// output moved the hardware cursor. Failures are cosmetic and ignored.
func (t *Terminal) syncCursor(moved bool) {
	if t.shownValid && t.cursor == t.shown && !(moved && t.cursor.visible) {
		return
	}
	if t.cursor.visible {
		if err := t.backend.ShowCursor(t.cursor.x, t.cursor.y); err != nil {
			debugLog.Printf("show cursor: %v", err)
		}
	} else if err := t.backend.HideCursor(); err != nil {
		debugLog.Printf("hide cursor: %v", err)
	}
	t.shown = t.cursor
	t.shownValid = true
}

// PutEvent stores ev for the next PollEvent. A second call before that poll
// replaces the first.
func (t *Terminal) PutEvent(ev texel.Event) {
	t.pending = &ev
}

// PollEvent returns a stored event at once, otherwise waits up to timeout for
// the backend to deliver decodable input. ok is false on timeout.
func (t *Terminal) PollEvent(timeout time.Duration) (texel.Event, bool, error) {
	if t.pending != nil {
		ev := *t.pending
		t.pending = nil
		return ev, true, nil
	}
	if ev, ok := t.dequeue(); ok {
		return ev, true, nil
	}

	deadline := t.clock().Add(timeout)
	for first := true; ; first = false {
		now := t.clock()
		t.queue = append(t.queue, t.dec.expire(now)...)
		if ev, ok := t.dequeue(); ok {
			return ev, true, nil
		}
		if !first && !now.Before(deadline) {
			return texel.Event{}, false, nil
		}

		wait := deadline.Sub(now)
		if esc, ok := t.dec.deadline(); ok && esc.Sub(now) < wait {
			wait = esc.Sub(now)
		}
		if wait < 0 {
			wait = 0
		}
		in, ok, err := t.backend.PollEvent(wait)
		if err != nil {
			return texel.Event{}, false, errors.Wrap(err, "poll backend")
		}
		if !ok {
			continue
		}
		if in.Resize {
			t.resize(in.Cols, in.Rows)
			return texel.NewBroadcast(texel.CmScreenChanged, texel.Point{X: in.Cols, Y: in.Rows}), true, nil
		}
		t.queue = append(t.queue, t.dec.feed(in.Bytes, t.clock())...)
	}
}

func (t *Terminal) dequeue() (texel.Event, bool) {
	if len(t.queue) == 0 {
		return texel.Event{}, false
	}
	ev := t.queue[0]
	t.queue = t.queue[1:]
	return ev, true
}

// Bell rings the terminal bell.
func (t *Terminal) Bell() error { return errors.Wrap(t.backend.Bell(), "bell") }

// Suspend hands the device back to the shell; Resume takes it again and
// schedules a full redraw.
func (t *Terminal) Suspend() error { return errors.Wrap(t.backend.Suspend(), "suspend") }

func (t *Terminal) Resume() error {
	if err := t.backend.Resume(); err != nil {
		return errors.Wrap(err, "resume")
	}
	return t.Resize()
}

var _ texel.Driver = (*Terminal)(nil)
