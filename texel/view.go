// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/view.go
// Summary: The View capability and its embeddable default implementation.
// Usage: Widgets embed BaseView and override Draw/HandleEvent; composites embed Group.

package texel

// View is a rectangular, self-drawing, event-handling unit.
//
// Every method is total: malformed bounds draw and hit-test nothing, and no
// method reports errors. A view never holds a reference to its owner; it
// signals upwards by rewriting the event it was handed.
type View interface {
	// Bounds is the absolute screen rectangle.
	Bounds() Rect
	// SetBounds moves or resizes the view. It does not redraw.
	SetBounds(r Rect)

	// Draw paints every cell of Bounds() ∩ the active clip.
	Draw(s Surface)
	// HandleEvent may leave ev untouched, clear it, or replace it.
	HandleEvent(ctx *Context, ev *Event)

	State() StateFlags
	SetState(f StateFlags)
	HasState(f StateFlags) bool
	SetStateFlag(f StateFlags, on bool)
	Options() OptionFlags

	// UpdateCursor places or hides the hardware cursor for this view.
	UpdateCursor(s Surface)

	// EndState is non-zero once a modal view wants its loop to stop.
	EndState() uint16
	SetEndState(cmd uint16)

	// Palette and OwnerKind drive colour resolution.
	Palette() Palette
	OwnerKind() OwnerKind
}

// BaseView implements View with inert defaults.
type BaseView struct {
	bounds  Rect
	state   StateFlags
	options OptionFlags
	palette Palette
	owner   OwnerKind
	cursor  Point
}

// NewBaseView returns a visible view with the given bounds and options.
func NewBaseView(bounds Rect, opts OptionFlags) *BaseView {
	b := &BaseView{}
	b.Init(bounds, opts)
	return b
}

// Init prepares an embedded BaseView in place.
func (b *BaseView) Init(bounds Rect, opts OptionFlags) {
	b.bounds = bounds
	b.options = opts
	b.state = StateVisible
}

func (b *BaseView) Bounds() Rect         { return b.bounds }
func (b *BaseView) SetBounds(r Rect)     { b.bounds = r }
func (b *BaseView) Options() OptionFlags { return b.options }

// SetOptions is meant for constructors only.
func (b *BaseView) SetOptions(o OptionFlags) { b.options = o }

func (b *BaseView) State() StateFlags          { return b.state }
func (b *BaseView) SetState(f StateFlags)      { b.state = f }
func (b *BaseView) HasState(f StateFlags) bool { return b.state&f == f }

func (b *BaseView) SetStateFlag(f StateFlags, on bool) {
	if on {
		b.state |= f
	} else {
		b.state &^= f
	}
}

func (b *BaseView) Palette() Palette         { return b.palette }
func (b *BaseView) SetPalette(p Palette)     { b.palette = p }
func (b *BaseView) OwnerKind() OwnerKind     { return b.owner }
func (b *BaseView) SetOwnerKind(k OwnerKind) { b.owner = k }

// Draw fills the bounds with the view's first colour.
func (b *BaseView) Draw(s Surface) {
	FillRect(s, b.bounds, Cell{Ch: ' ', Attr: b.GetColor(s, 1)})
}

func (b *BaseView) HandleEvent(ctx *Context, ev *Event) {}

// UpdateCursor hides the cursor unless the view asked for it.
func (b *BaseView) UpdateCursor(s Surface) {
	if !b.HasState(StateCursorVisible) || !b.HasState(StateFocused) {
		s.HideCursor()
		return
	}
	p := b.bounds.A.Add(b.cursor)
	if !b.bounds.Contains(p) || !s.Clip().Contains(p) {
		s.HideCursor()
		return
	}
	s.ShowCursor(p.X, p.Y, b.HasState(StateCursorInsert))
}

// SetCursor positions the cursor relative to the view origin.
func (b *BaseView) SetCursor(x, y int) { b.cursor = Point{X: x, Y: y} }

func (b *BaseView) EndState() uint16   { return 0 }
func (b *BaseView) SetEndState(uint16) {}

// Focused reports whether the view holds focus within its owner.
func (b *BaseView) Focused() bool { return b.HasState(StateFocused) }

// Selectable reports whether the view may take focus right now.
func (b *BaseView) Selectable() bool {
	return b.options&OptSelectable != 0 && b.HasState(StateVisible) && !b.HasState(StateDisabled)
}

// GetColor resolves a logical colour index for this view.
func (b *BaseView) GetColor(s Surface, idx uint8) Attr {
	return s.Theme().Resolve(b.owner, b.palette, idx)
}

// MakeLocal converts an absolute point into view coordinates.
func (b *BaseView) MakeLocal(p Point) Point { return p.Sub(b.bounds.A) }

// MakeGlobal converts a view-relative point into absolute coordinates.
func (b *BaseView) MakeGlobal(p Point) Point { return p.Add(b.bounds.A) }

// WriteLine blits buf to rows [y, y+h) of the view, x and y view-relative.
// Everything is clipped to the view bounds as well as the surface clip.
func (b *BaseView) WriteLine(s Surface, x, y, w, h int, buf *DrawBuffer) {
	WithClip(s, b.bounds, func() {
		for row := 0; row < h; row++ {
			s.PutBuffer(b.bounds.A.X+x, b.bounds.A.Y+y+row, w, buf)
		}
	})
}

// WriteStr writes str at view-relative (x, y).
func (b *BaseView) WriteStr(s Surface, x, y int, str string, attr Attr) {
	buf := NewDrawBuffer(StrWidth(str))
	n := buf.MoveStr(0, str, attr)
	b.WriteLine(s, x, y, n, 1, buf)
}

// visibleIn reports whether v should take part in drawing and hit-testing.
func visibleIn(v View) bool {
	return v.HasState(StateVisible) && !v.Bounds().Empty()
}

// selectable is the View-level equivalent of BaseView.Selectable.
func selectable(v View) bool {
	return v.Options()&OptSelectable != 0 && v.HasState(StateVisible) && !v.HasState(StateDisabled)
}

// Translate moves v and all of its descendants by (dx, dy). Group.Insert
// only converts the inserted view's own bounds, so a composite built before
// it is placed needs this to keep its children with it.
func Translate(v View, dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	v.SetBounds(v.Bounds().Move(dx, dy))
	if c, ok := v.(interface{ Children() []View }); ok {
		for _, child := range c.Children() {
			Translate(child, dx, dy)
		}
	}
}
