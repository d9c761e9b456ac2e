package core

import "math"

// BallGlyph marks the cell holding a circle's center.
const BallGlyph = '●'

// Raster is a virtual pixel surface backed by a region of a Screen.
// Every terminal cell covers CellW x CellH surface pixels, so drawing in
// pixel space lands on the nearest cells.
type Raster struct {
	dst   *Screen
	area  Rect
	cellW float64
	cellH float64
}

// NewRaster binds a pixel surface to the given screen area.
func NewRaster(dst *Screen, area Rect, cellW, cellH float64) *Raster {
	return &Raster{dst: dst, area: area, cellW: cellW, cellH: cellH}
}

// Size returns the surface dimensions in pixels.
func (r *Raster) Size() (width, height float64) {
	return float64(r.area.W) * r.cellW, float64(r.area.H) * r.cellH
}

// Area returns the screen region the surface is drawn into.
func (r *Raster) Area() Rect {
	return r.area
}

// span converts a pixel interval to a half-open cell interval of at least one cell.
func span(pos, length, cell float64) (int, int) {
	from := int(math.Round(pos / cell))
	to := int(math.Round((pos + length) / cell))
	if to <= from {
		to = from + 1
	}
	return from, to
}

// FillRect paints the cells covered by the pixel box with a background color.
func (r *Raster) FillRect(x, y, w, h float64, c Color) {
	r.FillGradient(x, y, w, h, c, c)
}

// FillGradient paints the covered cells, using from for the upper half of the
// rows and to for the lower half.
func (r *Raster) FillGradient(x, y, w, h float64, from, to Color) {
	x0, x1 := span(x, w, r.cellW)
	y0, y1 := span(y, h, r.cellH)
	rows := y1 - y0

	for cy := y0; cy < y1; cy++ {
		bg := from
		if 2*(cy-y0) >= rows && rows > 1 {
			bg = to
		}
		for cx := x0; cx < x1; cx++ {
			r.paint(cx, cy, Cell{Rune: ' ', Bg: bg})
		}
	}
}

// FillCircle marks the cell under the circle's center with BallGlyph and
// keeps that cell's background. The radius is ignored at cell resolution.
func (r *Raster) FillCircle(cx, cy, _ float64, c Color) {
	x := int(math.Floor(cx / r.cellW))
	y := int(math.Floor(cy / r.cellH))
	if !r.inside(x, y) {
		return
	}
	cell := r.dst.GetCell(r.area.X+x, r.area.Y+y)
	cell.Rune = BallGlyph
	cell.Fg = c
	r.paint(x, y, cell)
}

// inside reports whether a surface cell lies within the bound area.
func (r *Raster) inside(x, y int) bool {
	return x >= 0 && x < r.area.W && y >= 0 && y < r.area.H
}

// paint writes a cell given in surface-local cell coordinates.
func (r *Raster) paint(x, y int, c Cell) {
	if !r.inside(x, y) {
		return
	}
	r.dst.SetCell(r.area.X+x, r.area.Y+y, c)
}

// Canvas is a pixel-space drawing target. Raster implements it for
// terminals; tests substitute recorders.
type Canvas interface {
	FillRect(x, y, w, h float64, c Color)
	FillGradient(x, y, w, h float64, from, to Color)
	FillCircle(cx, cy, r float64, c Color)
}

var _ Canvas = (*Raster)(nil)
