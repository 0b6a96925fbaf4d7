package umbra

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/umbralabs/umbra/shadow"
)

// WidgetKind identifies the native widget type a shadow node mirrors.
type WidgetKind string

const (
	// Container widgets
	WidgetView       WidgetKind = "View"
	WidgetScrollView WidgetKind = "ScrollView"

	// Leaf widgets
	WidgetParagraph WidgetKind = "Paragraph"
	WidgetImage     WidgetKind = "Image"
	WidgetTextInput WidgetKind = "TextInput"

	// SVG widgets
	WidgetMask WidgetKind = "Mask"
)

// KindSpec describes the layout contract of a widget kind.
type KindSpec struct {
	Name WidgetKind

	// AllowsChildren is false for leaf widget kinds; inserting children
	// into them is a contract violation.
	AllowsChildren bool

	// Measured kinds negotiate intrinsic size with the solver.
	Measured bool
}

var kinds = map[WidgetKind]KindSpec{
	WidgetView:       {Name: WidgetView, AllowsChildren: true},
	WidgetScrollView: {Name: WidgetScrollView, AllowsChildren: true},
	WidgetMask:       {Name: WidgetMask, AllowsChildren: true},
	WidgetParagraph:  {Name: WidgetParagraph, Measured: true},
	WidgetImage:      {Name: WidgetImage, Measured: true},
	WidgetTextInput:  {Name: WidgetTextInput, Measured: true},
}

// RegisterKind adds a custom widget kind. Registering an existing name
// replaces its spec.
func RegisterKind(spec KindSpec) {
	kinds[spec.Name] = spec
}

// KindByName looks up a registered widget kind.
func KindByName(name WidgetKind) (KindSpec, bool) {
	spec, ok := kinds[name]
	return spec, ok
}

// Widget is a declarative description of one view in the UI hierarchy,
// the unit the bridge layer hands to the engine. Descriptions are inert;
// BuildTree compiles them into a live shadow tree.
type Widget struct {
	Kind WidgetKind `toml:"kind"`

	// Tag is the node identity. Zero lets the builder assign one.
	Tag int64 `toml:"tag"`

	Style StyleSpec `toml:"style"`

	// IntrinsicWidth/Height seed the measured size of leaf widgets.
	IntrinsicWidth  *float64 `toml:"intrinsic_width"`
	IntrinsicHeight *float64 `toml:"intrinsic_height"`

	// Text seeds the state record of TextInput widgets.
	Text string `toml:"text"`

	Children []Widget `toml:"children"`
}

// View creates a container widget description.
func View(style StyleSpec, children ...Widget) Widget {
	return Widget{Kind: WidgetView, Style: style, Children: children}
}

// Paragraph creates a measured text widget description.
func Paragraph(w, h float64, style StyleSpec) Widget {
	return Widget{Kind: WidgetParagraph, Style: style, IntrinsicWidth: &w, IntrinsicHeight: &h}
}

// TextInput creates a text-input widget description.
func TextInput(text string, style StyleSpec) Widget {
	return Widget{Kind: WidgetTextInput, Style: style, Text: text}
}

// StyleSpec is the boundary representation of a node style: enumerated
// fields with CSS-like values ("120", "50%", "auto"), validated and
// converted into a shadow.Style before anything reaches the solver.
type StyleSpec struct {
	Width     string `toml:"width"`
	Height    string `toml:"height"`
	MinWidth  string `toml:"min_width"`
	MinHeight string `toml:"min_height"`
	MaxWidth  string `toml:"max_width"`
	MaxHeight string `toml:"max_height"`

	// Edge maps are keyed by edge name: left, top, right, bottom,
	// start, end, horizontal, vertical, all.
	Margin  map[string]string  `toml:"margin"`
	Padding map[string]string  `toml:"padding"`
	Border  map[string]float64 `toml:"border"`
	Offset  map[string]string  `toml:"offset"`

	Position string `toml:"position"` // "relative" | "absolute"

	FlexGrow   *float64 `toml:"flex_grow"`
	FlexShrink *float64 `toml:"flex_shrink"`
	FlexBasis  string   `toml:"flex_basis"`

	FlexDirection string `toml:"flex_direction"` // "column" | "column-reverse" | "row" | "row-reverse"
	Justify       string `toml:"justify"`
	AlignItems    string `toml:"align_items"`
	AlignSelf     string `toml:"align_self"`
	AlignContent  string `toml:"align_content"`
	Wrap          string `toml:"wrap"`

	Overflow  string `toml:"overflow"`
	Display   string `toml:"display"`
	Direction string `toml:"direction"` // "ltr" | "rtl"

	AspectRatio *float64 `toml:"aspect_ratio"`
}

// ParseDim parses a CSS-like dimension value: "120" (points), "50%"
// (percent), "auto", or "" (unset).
func ParseDim(s string) (shadow.Dim, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return shadow.Dim{}, nil
	case s == "auto":
		return shadow.Auto(), nil
	case strings.HasSuffix(s, "%"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 32)
		if err != nil {
			return shadow.Dim{}, errors.Wrapf(err, "dimension %q", s)
		}
		return shadow.Percent(float32(v)), nil
	default:
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return shadow.Dim{}, errors.Wrapf(err, "dimension %q", s)
		}
		return shadow.Points(float32(v)), nil
	}
}

var edgeNames = map[string]shadow.Edge{
	"left":       shadow.EdgeLeft,
	"top":        shadow.EdgeTop,
	"right":      shadow.EdgeRight,
	"bottom":     shadow.EdgeBottom,
	"start":      shadow.EdgeStart,
	"end":        shadow.EdgeEnd,
	"horizontal": shadow.EdgeHorizontal,
	"vertical":   shadow.EdgeVertical,
	"all":        shadow.EdgeAll,
}

func parseEdgeDims(m map[string]string) (shadow.EdgeValues, error) {
	var ev shadow.EdgeValues
	for name, val := range m {
		e, ok := edgeNames[name]
		if !ok {
			return ev, errors.Errorf("unknown edge %q", name)
		}
		d, err := ParseDim(val)
		if err != nil {
			return ev, err
		}
		ev[e] = d
	}
	return ev, nil
}

func parseEdgePoints(m map[string]float64) (shadow.EdgeValues, error) {
	var ev shadow.EdgeValues
	for name, val := range m {
		e, ok := edgeNames[name]
		if !ok {
			return ev, errors.Errorf("unknown edge %q", name)
		}
		ev[e] = shadow.Points(float32(val))
	}
	return ev, nil
}

// Style converts the declarative values into a validated shadow.Style.
func (s StyleSpec) Style() (shadow.Style, error) {
	out := shadow.DefaultStyle()

	var err error
	if out.Width, err = ParseDim(s.Width); err != nil {
		return out, err
	}
	if out.Height, err = ParseDim(s.Height); err != nil {
		return out, err
	}
	if out.MinWidth, err = ParseDim(s.MinWidth); err != nil {
		return out, err
	}
	if out.MinHeight, err = ParseDim(s.MinHeight); err != nil {
		return out, err
	}
	if out.MaxWidth, err = ParseDim(s.MaxWidth); err != nil {
		return out, err
	}
	if out.MaxHeight, err = ParseDim(s.MaxHeight); err != nil {
		return out, err
	}
	if out.FlexBasis, err = ParseDim(s.FlexBasis); err != nil {
		return out, err
	}

	if out.Margin, err = parseEdgeDims(s.Margin); err != nil {
		return out, errors.Wrap(err, "margin")
	}
	if out.Padding, err = parseEdgeDims(s.Padding); err != nil {
		return out, errors.Wrap(err, "padding")
	}
	if out.Border, err = parseEdgePoints(s.Border); err != nil {
		return out, errors.Wrap(err, "border")
	}
	if out.Position, err = parseEdgeDims(s.Offset); err != nil {
		return out, errors.Wrap(err, "offset")
	}

	if s.FlexGrow != nil {
		out.FlexGrow = float32(*s.FlexGrow)
	}
	if s.FlexShrink != nil {
		out.FlexShrink = float32(*s.FlexShrink)
	}
	if s.AspectRatio != nil {
		out.AspectRatio = float32(*s.AspectRatio)
	}

	switch s.Position {
	case "", "relative":
	case "absolute":
		out.PositionType = shadow.PositionAbsolute
	default:
		return out, errors.Errorf("unknown position %q", s.Position)
	}

	switch s.FlexDirection {
	case "", "column":
	case "column-reverse":
		out.FlexDirection = shadow.FlexColumnReverse
	case "row":
		out.FlexDirection = shadow.FlexRow
	case "row-reverse":
		out.FlexDirection = shadow.FlexRowReverse
	default:
		return out, errors.Errorf("unknown flex direction %q", s.FlexDirection)
	}

	switch s.Justify {
	case "", "flex-start":
	case "center":
		out.Justify = shadow.JustifyCenter
	case "flex-end":
		out.Justify = shadow.JustifyFlexEnd
	case "space-between":
		out.Justify = shadow.JustifySpaceBetween
	case "space-around":
		out.Justify = shadow.JustifySpaceAround
	default:
		return out, errors.Errorf("unknown justify %q", s.Justify)
	}

	if out.AlignItems, err = parseAlign(s.AlignItems, shadow.AlignStretch); err != nil {
		return out, err
	}
	if out.AlignSelf, err = parseAlign(s.AlignSelf, shadow.AlignAuto); err != nil {
		return out, err
	}
	if out.AlignContent, err = parseAlign(s.AlignContent, shadow.AlignFlexStart); err != nil {
		return out, err
	}

	switch s.Wrap {
	case "", "nowrap":
	case "wrap":
		out.Wrap = shadow.WrapWrap
	case "wrap-reverse":
		out.Wrap = shadow.WrapReverse
	default:
		return out, errors.Errorf("unknown wrap %q", s.Wrap)
	}

	switch s.Overflow {
	case "", "visible":
	case "hidden":
		out.Overflow = shadow.OverflowHidden
	case "scroll":
		out.Overflow = shadow.OverflowScroll
	default:
		return out, errors.Errorf("unknown overflow %q", s.Overflow)
	}

	switch s.Display {
	case "", "flex":
	case "none":
		out.Display = shadow.DisplayNone
	default:
		return out, errors.Errorf("unknown display %q", s.Display)
	}

	switch s.Direction {
	case "", "inherit":
	case "ltr":
		out.Direction = shadow.DirectionLTR
	case "rtl":
		out.Direction = shadow.DirectionRTL
	default:
		return out, errors.Errorf("unknown direction %q", s.Direction)
	}

	if err := out.Validate(); err != nil {
		return out, err
	}
	return out, nil
}

func parseAlign(s string, def shadow.Align) (shadow.Align, error) {
	switch s {
	case "":
		return def, nil
	case "auto":
		return shadow.AlignAuto, nil
	case "flex-start":
		return shadow.AlignFlexStart, nil
	case "center":
		return shadow.AlignCenter, nil
	case "flex-end":
		return shadow.AlignFlexEnd, nil
	case "stretch":
		return shadow.AlignStretch, nil
	case "baseline":
		return shadow.AlignBaseline, nil
	case "space-between":
		return shadow.AlignSpaceBetween, nil
	case "space-around":
		return shadow.AlignSpaceAround, nil
	default:
		return def, errors.Errorf("unknown alignment %q", s)
	}
}
