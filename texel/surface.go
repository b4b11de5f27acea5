// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/surface.go
// Summary: Drawing target handed to views, with a scoped clip stack.

package texel

// Surface is what a view draws into. Writes outside the active clip are
// dropped silently.
type Surface interface {
	// Size returns the surface dimensions in cells.
	Size() (width, height int)
	// Clip returns the active clip: the intersection of every pushed rect.
	Clip() Rect
	// PushClip narrows the clip to r and returns the function that restores it.
	// The release function is idempotent and also discards any pushes made
	// after this one that were never released.
	PushClip(r Rect) (release func())
	// SetCell writes one cell. Attributes must already be resolved.
	SetCell(x, y int, c Cell)
	// PutBuffer blits the first n cells of b at (x, y).
	PutBuffer(x, y, n int, b *DrawBuffer)
	// ShowCursor places the hardware cursor; HideCursor removes it.
	ShowCursor(x, y int, insert bool)
	HideCursor()
	// Theme resolves palette indices to attributes.
	Theme() *Theme
}

// FillRect writes c into every cell of r ∩ clip.
func FillRect(s Surface, r Rect, c Cell) {
	r = r.Intersect(s.Clip())
	for y := r.A.Y; y < r.B.Y; y++ {
		for x := r.A.X; x < r.B.X; x++ {
			s.SetCell(x, y, c)
		}
	}
}

// WithClip runs fn with the clip narrowed to r. The clip is restored on every
// exit path, including panics.
func WithClip(s Surface, r Rect, fn func()) {
	release := s.PushClip(r)
	defer release()
	fn()
}
