// Package core provides fundamental types and utilities for the device shell.
// It contains no external dependencies (especially no Bubble Tea) to keep
// simulation code pure and testable.
package core

import "cmp"

// Rect is an axis-aligned box in terminal cells. Right and Bottom are
// exclusive.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether cell (x, y) lies in the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// RectF is an axis-aligned box on the virtual pixel surface.
type RectF struct {
	X, Y float64
	W, H float64
}

func (r RectF) Right() float64  { return r.X + r.W }
func (r RectF) Bottom() float64 { return r.Y + r.H }

// Contains reports whether (x, y) lies strictly inside the box.
// Points on an edge are outside.
func (r RectF) Contains(x, y float64) bool {
	return x > r.X && x < r.Right() && y > r.Y && y < r.Bottom()
}

// Clamp restricts v to [lo, hi]. If hi < lo, lo wins.
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}
