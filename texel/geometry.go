// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/geometry.go
// Summary: Points and rectangles in screen cell coordinates.
// Usage: Every view reports and accepts its bounds as a Rect.

package texel

import "fmt"

// Point is a cell coordinate. X grows to the right, Y grows downwards.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Rect spans from A (inclusive) to B (exclusive).
//
// A rectangle whose B is not strictly below and to the right of A is empty.
// Empty rectangles are legal values: they contain no point and draw nothing.
type Rect struct {
	A, B Point
}

// NewRect builds a rectangle from its two corners.
func NewRect(ax, ay, bx, by int) Rect {
	return Rect{A: Point{X: ax, Y: ay}, B: Point{X: bx, Y: by}}
}

// RectAt builds a rectangle from an origin and a size.
func RectAt(x, y, w, h int) Rect {
	return Rect{A: Point{X: x, Y: y}, B: Point{X: x + w, Y: y + h}}
}

// Width is never negative.
func (r Rect) Width() int {
	if r.B.X <= r.A.X {
		return 0
	}
	return r.B.X - r.A.X
}

// Height is never negative.
func (r Rect) Height() int {
	if r.B.Y <= r.A.Y {
		return 0
	}
	return r.B.Y - r.A.Y
}

// Size returns Width and Height as a point.
func (r Rect) Size() Point { return Point{X: r.Width(), Y: r.Height()} }

// Empty reports whether the rectangle covers no cell.
func (r Rect) Empty() bool { return r.B.X <= r.A.X || r.B.Y <= r.A.Y }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.A.X && p.X < r.B.X && p.Y >= r.A.Y && p.Y < r.B.Y
}

// Move translates both corners.
func (r Rect) Move(dx, dy int) Rect {
	return Rect{A: Point{X: r.A.X + dx, Y: r.A.Y + dy}, B: Point{X: r.B.X + dx, Y: r.B.Y + dy}}
}

// Offset translates r by the given origin.
func (r Rect) Offset(origin Point) Rect { return r.Move(origin.X, origin.Y) }

// Grow expands r symmetrically; negative values inset it. The result may be
// degenerate, which callers treat as empty.
func (r Rect) Grow(dx, dy int) Rect {
	return Rect{A: Point{X: r.A.X - dx, Y: r.A.Y - dy}, B: Point{X: r.B.X + dx, Y: r.B.Y + dy}}
}

// Intersect returns the overlap of r and o. Disjoint inputs yield an empty rect.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		A: Point{X: max(r.A.X, o.A.X), Y: max(r.A.Y, o.A.Y)},
		B: Point{X: min(r.B.X, o.B.X), Y: min(r.B.Y, o.B.Y)},
	}
	if out.Empty() {
		return Rect{A: out.A, B: out.A}
	}
	return out
}

// Overlaps reports whether r and o share at least one cell.
func (r Rect) Overlaps(o Rect) bool { return !r.Intersect(o).Empty() }

// Union returns the smallest rectangle covering both. Empty inputs are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		A: Point{X: min(r.A.X, o.A.X), Y: min(r.A.Y, o.A.Y)},
		B: Point{X: max(r.B.X, o.B.X), Y: max(r.B.Y, o.B.Y)},
	}
}

func (r Rect) String() string { return fmt.Sprintf("[%v-%v]", r.A, r.B) }
