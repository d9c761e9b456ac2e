package tui

import (
	"math"

	"github.com/vovakirdan/tui-ipod/internal/core"
	"github.com/vovakirdan/tui-ipod/internal/rotary"
)

// Device layout constants
const (
	maxDeviceWidth = 60 // Widest the device body grows
	minDeviceWidth = 24
	wheelRows      = 9 // Rows taken by the click wheel
	helpRows       = 1
	minDisplayRows = 6 // Inner display rows below which the device does not fit

	// Terminal cells are about twice as tall as wide.
	cellAspect = 2.0
)

// Region is a part of the click wheel.
type Region int

const (
	RegionNone Region = iota // Outside the wheel
	RegionRing               // Touch ring with the four buttons
	RegionHub                // Center select button
)

// WheelGeometry places the click wheel in terminal coordinates. Radii are
// in columns; rows are scaled by cellAspect.
type WheelGeometry struct {
	Area   core.Rect // Cells the wheel is drawn into
	CX, CY float64   // Center
	Outer  float64   // Ring radius
	Hub    float64   // Select button radius
}

// point returns the center of a cell.
func point(x, y int) (float64, float64) {
	return float64(x) + 0.5, float64(y) + 0.5
}

// distance returns the aspect-corrected distance of a cell from the center.
func (w WheelGeometry) distance(x, y int) float64 {
	px, py := point(x, y)
	return math.Hypot(px-w.CX, (py-w.CY)*cellAspect)
}

// Hit reports which part of the wheel a cell falls on.
func (w WheelGeometry) Hit(x, y int) Region {
	d := w.distance(x, y)
	switch {
	case d <= w.Hub:
		return RegionHub
	case d <= w.Outer:
		return RegionRing
	}
	return RegionNone
}

// Angle returns the finger angle of a cell around the wheel center.
// Zero points right and angles grow clockwise on screen.
func (w WheelGeometry) Angle(x, y int) float64 {
	px, py := point(x, y)
	return rotary.AngleAt(px, py, w.CX, w.CY, cellAspect)
}

// ButtonAt maps a ring cell to the button printed on that quarter:
// menu on top, forward right, play/pause bottom, back left.
func (w WheelGeometry) ButtonAt(x, y int) core.Button {
	if w.Hit(x, y) != RegionRing {
		return core.ButtonNone
	}

	a := w.Angle(x, y)
	switch {
	case a >= -3*math.Pi/4 && a < -math.Pi/4:
		return core.ButtonMenu
	case a >= -math.Pi/4 && a < math.Pi/4:
		return core.ButtonForward
	case a >= math.Pi/4 && a < 3*math.Pi/4:
		return core.ButtonPlayPause
	}
	return core.ButtonBack
}

// Layout is the device placed in a terminal window.
type Layout struct {
	Width, Height int
	TooSmall      bool

	Device  core.Rect // Device body: display box plus wheel
	Display core.Rect // Inner display area, inside the border
	Wheel   WheelGeometry
}

// ComputeLayout positions the display and the wheel for a terminal size.
// The device is centered horizontally and fills the height.
func ComputeLayout(width, height int) Layout {
	l := Layout{Width: width, Height: height}

	devW := min(width, maxDeviceWidth)
	displayOuter := height - wheelRows - helpRows
	if devW < minDeviceWidth || displayOuter-2 < minDisplayRows {
		l.TooSmall = true
		return l
	}

	offX := (width - devW) / 2
	l.Device = core.NewRect(offX, 0, devW, displayOuter+wheelRows)
	l.Display = core.NewRect(offX+1, 1, devW-2, displayOuter-2)

	area := core.NewRect(offX, displayOuter, devW, wheelRows)
	l.Wheel = WheelGeometry{
		Area:  area,
		CX:    float64(area.X) + float64(area.W)/2,
		CY:    float64(area.Y) + float64(area.H)/2,
		Outer: float64(area.H) / 2 * cellAspect,
		Hub:   float64(area.H) / 2 * cellAspect * 0.4,
	}
	return l
}
