package geometry

import (
	"fmt"
	"strconv"
)

// Coordinate is an (x, y) position on the card canvas.
type Coordinate struct {
	X float64
	Y float64
}

func (c Coordinate) String() string {
	return fmtNum(c.X) + "," + fmtNum(c.Y)
}

// Rectangle is an axis-aligned rectangle described by its start (top-left)
// and end (bottom-right) coordinates. A rectangle is well-formed only when
// Start.X <= End.X and Start.Y <= End.Y; callers use the Inverted and
// NarrowerThan predicates to suppress drawing degenerate shapes.
type Rectangle struct {
	Start Coordinate
	End   Coordinate
}

// Width returns the horizontal extent. Negative for inverted rectangles.
func (r Rectangle) Width() float64 {
	return r.End.X - r.Start.X
}

// Height returns the vertical extent. Negative for inverted rectangles.
func (r Rectangle) Height() float64 {
	return r.End.Y - r.Start.Y
}

// Inverted reports whether the rectangle's start lies to the right of its
// end on either axis.
func (r Rectangle) Inverted() bool {
	return r.Start.X > r.End.X || r.Start.Y > r.End.Y
}

// NarrowerThan reports whether the rectangle's width is below min.
func (r Rectangle) NarrowerThan(min float64) bool {
	return r.Width() < min
}

// Draw serializes the rectangle as a compositor draw instruction.
func (r Rectangle) Draw() string {
	return fmt.Sprintf(`-draw "rectangle %s %s"`, r.Start, r.End)
}

// Dimensions is a measured (width, height) pair returned by the text
// measurement service for a drawing-command fragment.
type Dimensions struct {
	Width  float64
	Height float64
}

// fmtNum renders a coordinate component without a trailing ".0" so whole
// pixel values stay integral in the emitted instruction.
func fmtNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
