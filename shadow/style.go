package shadow

import (
	"github.com/kjk/flex"
	"github.com/pkg/errors"
)

// DimUnit describes how a Dim value is interpreted.
type DimUnit int

const (
	// UnitUnset means the value is not specified; the solver default applies.
	UnitUnset DimUnit = iota

	// UnitPoint is an absolute value in points.
	UnitPoint

	// UnitPercent is a percentage of the parent's corresponding dimension.
	UnitPercent

	// UnitAuto lets the solver pick the value.
	UnitAuto
)

// Dim is a single dimensional style value. The zero value is unset.
type Dim struct {
	Value float32
	Unit  DimUnit
}

// Points returns an absolute point value.
func Points(v float32) Dim { return Dim{Value: v, Unit: UnitPoint} }

// Percent returns a percentage value (0-100 scale).
func Percent(v float32) Dim { return Dim{Value: v, Unit: UnitPercent} }

// Auto returns an auto value.
func Auto() Dim { return Dim{Unit: UnitAuto} }

// IsSet reports whether the value was specified at all.
func (d Dim) IsSet() bool { return d.Unit != UnitUnset }

// Edge identifies one box edge, logical or physical. The physical edges
// come first so they can index solver edge arrays directly.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeTop
	EdgeRight
	EdgeBottom
	EdgeStart
	EdgeEnd
	EdgeHorizontal
	EdgeVertical
	EdgeAll

	edgeCount
)

func (e Edge) flex() flex.Edge {
	// Declared in the same order as the solver's edge enum.
	return flex.Edge(e)
}

// EdgeValues is a sparse set of per-edge style values for one box-model
// group (margin, padding, border, or position offsets).
type EdgeValues [edgeCount]Dim

// Set assigns the value for one edge and returns the updated set.
func (ev EdgeValues) Set(e Edge, d Dim) EdgeValues {
	ev[e] = d
	return ev
}

// Get returns the value for one edge.
func (ev EdgeValues) Get(e Edge) Dim { return ev[e] }

// PositionType selects between in-flow and absolute positioning.
type PositionType int

const (
	PositionRelative PositionType = iota
	PositionAbsolute
)

func (p PositionType) flex() flex.PositionType {
	if p == PositionAbsolute {
		return flex.PositionTypeAbsolute
	}
	return flex.PositionTypeRelative
}

// FlexDirection is the main-axis orientation of a container.
type FlexDirection int

const (
	FlexColumn FlexDirection = iota
	FlexColumnReverse
	FlexRow
	FlexRowReverse
)

func (d FlexDirection) flex() flex.FlexDirection {
	switch d {
	case FlexColumnReverse:
		return flex.FlexDirectionColumnReverse
	case FlexRow:
		return flex.FlexDirectionRow
	case FlexRowReverse:
		return flex.FlexDirectionRowReverse
	default:
		return flex.FlexDirectionColumn
	}
}

// Justify distributes children along the main axis.
type Justify int

const (
	JustifyFlexStart Justify = iota
	JustifyCenter
	JustifyFlexEnd
	JustifySpaceBetween
	JustifySpaceAround
)

func (j Justify) flex() flex.Justify {
	switch j {
	case JustifyCenter:
		return flex.JustifyCenter
	case JustifyFlexEnd:
		return flex.JustifyFlexEnd
	case JustifySpaceBetween:
		return flex.JustifySpaceBetween
	case JustifySpaceAround:
		return flex.JustifySpaceAround
	default:
		return flex.JustifyFlexStart
	}
}

// Align positions children along the cross axis.
type Align int

const (
	AlignAuto Align = iota
	AlignFlexStart
	AlignCenter
	AlignFlexEnd
	AlignStretch
	AlignBaseline
	AlignSpaceBetween
	AlignSpaceAround
)

func (a Align) flex() flex.Align {
	switch a {
	case AlignFlexStart:
		return flex.AlignFlexStart
	case AlignCenter:
		return flex.AlignCenter
	case AlignFlexEnd:
		return flex.AlignFlexEnd
	case AlignStretch:
		return flex.AlignStretch
	case AlignBaseline:
		return flex.AlignBaseline
	case AlignSpaceBetween:
		return flex.AlignSpaceBetween
	case AlignSpaceAround:
		return flex.AlignSpaceAround
	default:
		return flex.AlignAuto
	}
}

// Wrap controls flex line wrapping.
type Wrap int

const (
	WrapNone Wrap = iota
	WrapWrap
	WrapReverse
)

func (w Wrap) flex() flex.Wrap {
	switch w {
	case WrapWrap:
		return flex.WrapWrap
	case WrapReverse:
		return flex.WrapWrapReverse
	default:
		return flex.WrapNoWrap
	}
}

// Overflow controls how children extending past the box are solved.
type Overflow int

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
)

func (o Overflow) flex() flex.Overflow {
	switch o {
	case OverflowHidden:
		return flex.OverflowHidden
	case OverflowScroll:
		return flex.OverflowScroll
	default:
		return flex.OverflowVisible
	}
}

func (d DisplayType) flex() flex.Display {
	if d == DisplayNone {
		return flex.DisplayNone
	}
	return flex.DisplayFlex
}

// Style is the full enumerated style configuration of a shadow node.
// It replaces the stringly-keyed property bags of bridge payloads; callers
// validate a Style once at the boundary and apply it whole.
type Style struct {
	Margin   EdgeValues
	Padding  EdgeValues
	Border   EdgeValues
	Position EdgeValues

	PositionType PositionType

	Width     Dim
	Height    Dim
	MinWidth  Dim
	MinHeight Dim
	MaxWidth  Dim
	MaxHeight Dim

	// FlexGrow and FlexShrink use NaN as the unset sentinel,
	// matching the solver's convention.
	FlexGrow   float32
	FlexShrink float32
	FlexBasis  Dim

	FlexDirection FlexDirection
	Justify       Justify
	AlignItems    Align
	AlignSelf     Align
	AlignContent  Align
	Wrap          Wrap

	Overflow  Overflow
	Display   DisplayType
	Direction LayoutDirection

	// AspectRatio is width/height; NaN means unset.
	AspectRatio float32
}

// DefaultStyle returns a Style with every property unspecified.
func DefaultStyle() Style {
	return Style{
		FlexGrow:    flex.Undefined,
		FlexShrink:  flex.Undefined,
		AlignItems:  AlignStretch,
		AspectRatio: flex.Undefined,
	}
}

// Validate checks the style against the solver's capabilities. The box
// groups are deliberately asymmetric: margins accept auto, paddings accept
// percent but not auto, borders accept plain points only. The solver has no
// representation for the rejected combinations, so they are surfaced here
// at the boundary instead of being silently dropped mid-pass.
func (s *Style) Validate() error {
	for e := EdgeLeft; e < edgeCount; e++ {
		if s.Padding[e].Unit == UnitAuto {
			return errors.Errorf("style: auto padding on edge %d is not representable", e)
		}
		switch s.Border[e].Unit {
		case UnitPercent, UnitAuto:
			return errors.Errorf("style: border width on edge %d must be a point value", e)
		}
		if s.Position[e].Unit == UnitAuto {
			return errors.Errorf("style: auto position offset on edge %d is not representable", e)
		}
	}
	if s.FlexBasis.Unit == UnitAuto && s.FlexBasis.Value != 0 {
		return errors.New("style: auto flex basis carries no value")
	}
	if !flex.FloatIsUndefined(s.AspectRatio) && s.AspectRatio <= 0 {
		return errors.Errorf("style: aspect ratio %g must be positive", s.AspectRatio)
	}
	return nil
}
