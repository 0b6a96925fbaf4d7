package shadow

import (
	"fmt"

	"github.com/kjk/flex"
)

// Undefined marks an unconstrained dimension when passed as a layout
// maximum. It is the solver's NaN sentinel.
var Undefined = flex.Undefined

// Point is a position in the root coordinate space, in points.
type Point struct {
	X float32
	Y float32
}

// Size is a width/height pair in points.
type Size struct {
	Width  float32
	Height float32
}

// Rect is an axis-aligned rectangle: origin plus size.
type Rect struct {
	Origin Point
	Size   Size
}

// Contains reports whether the point lies inside the rectangle.
// Edges on the origin side are inclusive, far edges exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Origin.X && p.X < r.Origin.X+r.Size.Width &&
		p.Y >= r.Origin.Y && p.Y < r.Origin.Y+r.Size.Height
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.Origin.X, r.Origin.Y, r.Size.Width, r.Size.Height)
}

// DisplayType mirrors the solver's display property in computed output.
type DisplayType int

const (
	// DisplayFlex lays the node out as a flex container (default).
	DisplayFlex DisplayType = iota

	// DisplayNone removes the node from layout entirely.
	DisplayNone
)

// LayoutDirection is the resolved writing direction of a laid-out node.
type LayoutDirection int

const (
	// DirectionInherit takes the direction from the parent node.
	DirectionInherit LayoutDirection = iota

	// DirectionLTR lays out left-to-right.
	DirectionLTR

	// DirectionRTL lays out right-to-left.
	DirectionRTL
)

func (d LayoutDirection) flex() flex.Direction {
	switch d {
	case DirectionLTR:
		return flex.DirectionLTR
	case DirectionRTL:
		return flex.DirectionRTL
	default:
		return flex.DirectionInherit
	}
}

func directionFromFlex(d flex.Direction) LayoutDirection {
	switch d {
	case flex.DirectionLTR:
		return DirectionLTR
	case flex.DirectionRTL:
		return DirectionRTL
	default:
		return DirectionInherit
	}
}

// LayoutMetrics is the computed geometry of a node after a layout pass.
// Frame origin is absolute (root coordinate space).
type LayoutMetrics struct {
	Frame     Rect
	Direction LayoutDirection
	Display   DisplayType
}

// Equal compares metrics field by field with exact float equality.
// This governs change-detection granularity for the affected-node set,
// so no epsilon is applied.
func (m LayoutMetrics) Equal(o LayoutMetrics) bool {
	return m.Frame.Origin.X == o.Frame.Origin.X &&
		m.Frame.Origin.Y == o.Frame.Origin.Y &&
		m.Frame.Size.Width == o.Frame.Size.Width &&
		m.Frame.Size.Height == o.Frame.Size.Height &&
		m.Direction == o.Direction &&
		m.Display == o.Display
}
