// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/group.go
// Summary: Composite view owning an ordered child list with focus and z-order.
// Usage: Windows, dialogs, desktops and the application root embed Group.
// Notes: Z-order is slice order; the last child is drawn last and hit first.

package texel

// Group owns its children exclusively. Dropping a Group drops its subtree.
type Group struct {
	BaseView
	children   []View
	current    int
	endState   uint16
	background *Cell
}

// NewGroup returns an empty, visible group.
func NewGroup(bounds Rect) *Group {
	g := &Group{}
	g.InitGroup(bounds, 0)
	return g
}

// InitGroup prepares an embedded Group in place.
func (g *Group) InitGroup(bounds Rect, opts OptionFlags) {
	g.BaseView.Init(bounds, opts)
	g.children = nil
	g.current = -1
}

// SetBackground makes Draw fill the whole group with c before the children.
// Only groups whose children may leave holes need this.
func (g *Group) SetBackground(c *Cell) { g.background = c }

// Len returns the number of children.
func (g *Group) Len() int { return len(g.children) }

// At returns the child at index i.
func (g *Group) At(i int) (View, bool) {
	if i < 0 || i >= len(g.children) {
		return nil, false
	}
	return g.children[i], true
}

// Children returns a copy of the child list in z-order.
func (g *Group) Children() []View {
	return append([]View(nil), g.children...)
}

// IndexOf returns the index of v or -1.
func (g *Group) IndexOf(v View) int {
	for i, c := range g.children {
		if c == v {
			return i
		}
	}
	return -1
}

// Focused returns the focused child and its index, or (nil, -1).
func (g *Group) Focused() (View, int) {
	if g.current < 0 {
		return nil, -1
	}
	return g.children[g.current], g.current
}

// Insert adds v at the front. v's bounds are taken as relative to the group
// origin and converted to absolute coordinates once; moving the group later
// does not move existing children.
func (g *Group) Insert(v View) {
	g.InsertAt(v, len(g.children))
}

// InsertAt adds v at z-position i (clamped), converting its bounds like Insert.
func (g *Group) InsertAt(v View, i int) {
	if v == nil {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(g.children) {
		i = len(g.children)
	}
	v.SetBounds(v.Bounds().Offset(g.bounds.A))
	v.SetStateFlag(StateFocused, false)

	focused, _ := g.Focused()
	g.children = append(g.children, nil)
	copy(g.children[i+1:], g.children[i:])
	g.children[i] = v
	g.reindex(focused)

	if selectable(v) && (g.current < 0 || v.Options()&OptTopSelect != 0) {
		g.focusIndex(i)
	}
	debugLog.Printf("group %v: inserted child at %d (%d children)", g.bounds, i, len(g.children))
}

// Remove drops v and its subtree. It returns false if v is not a child.
func (g *Group) Remove(v View) bool {
	return g.RemoveAt(g.IndexOf(v))
}

// RemoveAt drops the child at index i. Removing the focused child moves focus
// to the front-most remaining selectable child.
func (g *Group) RemoveAt(i int) bool {
	if i < 0 || i >= len(g.children) {
		return false
	}
	v := g.children[i]
	focused, _ := g.Focused()
	if focused == v {
		g.setFocus(-1)
		focused = nil
	}
	copy(g.children[i:], g.children[i+1:])
	g.children[len(g.children)-1] = nil
	g.children = g.children[:len(g.children)-1]
	g.reindex(focused)
	if g.current < 0 {
		g.focusTopmost()
	}
	return true
}

// RemoveIf drops every child for which pred is true and returns how many were
// removed. Indices are re-evaluated after each removal.
func (g *Group) RemoveIf(pred func(View) bool) int {
	n := 0
	for i := 0; i < len(g.children); {
		if pred(g.children[i]) {
			g.RemoveAt(i)
			n++
			continue
		}
		i++
	}
	return n
}

// BringToFront moves the child at i to the end of the z-order.
func (g *Group) BringToFront(i int) {
	if i < 0 || i >= len(g.children)-1 {
		return
	}
	v := g.children[i]
	focused, _ := g.Focused()
	copy(g.children[i:], g.children[i+1:])
	g.children[len(g.children)-1] = v
	g.reindex(focused)
}

// Focus gives focus to the child at i if it is selectable.
func (g *Group) Focus(i int) bool {
	v, ok := g.At(i)
	if !ok || !selectable(v) {
		return false
	}
	g.focusIndex(i)
	return true
}

// FocusView gives focus to v if it is a selectable child.
func (g *Group) FocusView(v View) bool {
	return g.Focus(g.IndexOf(v))
}

// SuspendFocus takes focus from the focused child, as inserting and focusing
// another view would, and returns a function that restores it. The restore
// is a no-op if something else took focus in the meantime.
func (g *Group) SuspendFocus() func() {
	v, i := g.Focused()
	if i < 0 {
		return func() {}
	}
	g.setFocus(-1)
	return func() {
		if _, cur := g.Focused(); cur >= 0 {
			return
		}
		if j := g.IndexOf(v); j >= 0 && selectable(v) {
			g.setFocus(j)
		}
	}
}

// FocusNext moves focus to the next (or previous) selectable child, wrapping.
func (g *Group) FocusNext(forward bool) bool {
	n := len(g.children)
	if n == 0 {
		return false
	}
	start := g.current
	if start < 0 {
		if forward {
			start = n - 1
		} else {
			start = 0
		}
	}
	for step := 1; step <= n; step++ {
		var i int
		if forward {
			i = (start + step) % n
		} else {
			i = ((start-step)%n + n) % n
		}
		if i == g.current {
			return false
		}
		if selectable(g.children[i]) {
			g.setFocus(i)
			return true
		}
	}
	return false
}

// IndexAt returns the front-most visible child containing p, or -1.
func (g *Group) IndexAt(p Point) int {
	for i := len(g.children) - 1; i >= 0; i-- {
		c := g.children[i]
		if visibleIn(c) && c.Bounds().Contains(p) {
			return i
		}
	}
	return -1
}

// ViewAt returns the front-most visible child containing p.
func (g *Group) ViewAt(p Point) View {
	if i := g.IndexAt(p); i >= 0 {
		return g.children[i]
	}
	return nil
}

func (g *Group) EndState() uint16       { return g.endState }
func (g *Group) SetEndState(cmd uint16) { g.endState = cmd }

// Draw paints the optional background, then every visible child that
// intersects the group, back to front, clipped to the group bounds.
func (g *Group) Draw(s Surface) {
	if g.bounds.Empty() {
		return
	}
	WithClip(s, g.bounds, func() {
		if g.background != nil {
			FillRect(s, g.bounds, *g.background)
		}
		clip := s.Clip()
		if clip.Empty() {
			return
		}
		for _, c := range g.Children() {
			if visibleIn(c) && c.Bounds().Overlaps(clip) {
				c.Draw(s)
			}
		}
	})
}

// UpdateCursor delegates to the focused child.
func (g *Group) UpdateCursor(s Surface) {
	if v, _ := g.Focused(); v != nil {
		v.UpdateCursor(s)
		return
	}
	s.HideCursor()
}

// HandleEvent routes ev to the children.
//
// Broadcasts reach every child. Mouse events go straight to the child under
// the pointer, which a press also focuses. Tab and Shift-Tab move focus and are consumed here. Everything
// else runs through three phases: pre-process children, the focused child,
// post-process children, stopping as soon as the event is cleared.
func (g *Group) HandleEvent(ctx *Context, ev *Event) {
	switch {
	case ev.What == EvNothing:
		return
	case ev.What == EvBroadcast:
		g.Broadcast(ctx, ev, -1)
		return
	case ev.What&EvMouse != 0:
		g.dispatchMouse(ctx, ev)
		return
	case isFocusCycleKey(ev):
		forward := ev.Key.Code == KeyTab && ev.Key.Mod&ModShift == 0
		g.FocusNext(forward)
		ev.Clear()
		return
	}
	g.dispatchPhased(ctx, ev)
}

func (g *Group) dispatchPhased(ctx *Context, ev *Event) {
	kids := g.Children()
	focused, _ := g.Focused()

	for _, c := range kids {
		if c == focused || c.Options()&OptPreProcess == 0 || !acceptsFocusedEvent(c) {
			continue
		}
		c.HandleEvent(ctx, ev)
		if ev.Handled() {
			return
		}
	}

	if focused != nil && acceptsFocusedEvent(focused) {
		focused.HandleEvent(ctx, ev)
		if ev.Handled() {
			return
		}
	}

	for _, c := range kids {
		if c == focused || c.Options()&OptPostProcess == 0 || !acceptsFocusedEvent(c) {
			continue
		}
		c.HandleEvent(ctx, ev)
		if ev.Handled() {
			return
		}
	}
}

func (g *Group) dispatchMouse(ctx *Context, ev *Event) {
	i := g.IndexAt(ev.Mouse.Pos)
	if i < 0 {
		return
	}
	c := g.children[i]
	if c.HasState(StateDisabled) {
		return
	}
	if ev.What == EvMouseDown && i != g.current && selectable(c) {
		g.focusIndex(i)
	}
	c.HandleEvent(ctx, ev)
}

// Broadcast delivers ev to every child except the one at originator, in
// z-order, whatever the children do with it. Each child receives its own
// copy. Afterwards ev is replaced by the first command a child turned its copy
// into; failing that it is cleared if any child cleared its copy.
func (g *Group) Broadcast(ctx *Context, ev *Event, originator int) {
	var reply *Event
	acked := false
	for i, c := range g.Children() {
		if i == originator {
			continue
		}
		e := *ev
		c.HandleEvent(ctx, &e)
		switch {
		case e.What == EvCommand && reply == nil:
			r := e
			reply = &r
		case e.What == EvNothing:
			acked = true
		}
	}
	switch {
	case reply != nil:
		*ev = *reply
	case acked:
		ev.Clear()
	}
}

// focusIndex focuses child i, bringing it to the front first when it asks for it.
func (g *Group) focusIndex(i int) {
	if g.children[i].Options()&OptTopSelect != 0 && i != len(g.children)-1 {
		g.BringToFront(i)
		i = len(g.children) - 1
	}
	g.setFocus(i)
}

func (g *Group) focusTopmost() {
	for i := len(g.children) - 1; i >= 0; i-- {
		if selectable(g.children[i]) {
			g.setFocus(i)
			return
		}
	}
}

// setFocus is the only place that changes the focused flag on children, so
// the flag and g.current cannot disagree.
func (g *Group) setFocus(i int) {
	if i == g.current {
		return
	}
	if old, _ := g.Focused(); old != nil {
		g.current = -1
		old.SetStateFlag(StateFocused, false)
		notify(old, CmReleasedFocus)
	}
	if i < 0 {
		g.current = -1
		return
	}
	g.current = i
	v := g.children[i]
	v.SetStateFlag(StateFocused, true)
	notify(v, CmReceivedFocus)
}

// reindex recomputes the focus index from the focused view's identity after
// the child slice has been rearranged.
func (g *Group) reindex(focused View) {
	g.current = -1
	if focused == nil {
		return
	}
	g.current = g.IndexOf(focused)
}

func notify(v View, cmd uint16) {
	e := NewBroadcast(cmd, nil)
	v.HandleEvent(nil, &e)
}

func acceptsFocusedEvent(v View) bool {
	return !v.HasState(StateDisabled)
}

func isFocusCycleKey(ev *Event) bool {
	if ev.What != EvKeyDown || ev.Key.Mod&(ModAlt|ModCtrl) != 0 {
		return false
	}
	return ev.Key.Code == KeyTab || ev.Key.Code == KeyBacktab
}
