package shadow

import "github.com/kjk/flex"

// StateRecord is a widget-specific state object keyed by its owning node.
// Records are immutable by convention: the bridge layer creates one when
// a node receives new properties, replaces it wholesale on each update,
// and discards it when the node is removed. The layout algorithm reads
// records during measurement but never mutates them.
//
// Fields exposes the record as named values for downstream platform code,
// which reads them (together with the node's computed geometry) to decide
// whether a cached rendering artifact can be reused. The core does not
// define or constrain that format.
type StateRecord interface {
	Fields() map[string]interface{}
}

// TextInputState is the reconciliation state of a text-input widget.
type TextInputState struct {
	// EventCount is the most recent platform edit-event counter; the
	// application layer echoes it back so stale updates can be dropped.
	EventCount int64

	// CacheID identifies a platform-side cached attributed string. Zero
	// means no cached artifact exists.
	CacheID int64

	Text        string
	Placeholder string

	SelectionStart int
	SelectionEnd   int

	// Theme paddings are platform defaults baked into the native widget;
	// measurement must account for them even when the style declares none.
	ThemePaddingStart  float32
	ThemePaddingEnd    float32
	ThemePaddingTop    float32
	ThemePaddingBottom float32
}

// Fields implements StateRecord.
func (s TextInputState) Fields() map[string]interface{} {
	return map[string]interface{}{
		"mostRecentEventCount": s.EventCount,
		"opaqueCacheId":        s.CacheID,
		"text":                 s.Text,
		"placeholder":          s.Placeholder,
		"selectionStart":       s.SelectionStart,
		"selectionEnd":         s.SelectionEnd,
		"themePaddingStart":    s.ThemePaddingStart,
		"themePaddingEnd":      s.ThemePaddingEnd,
		"themePaddingTop":      s.ThemePaddingTop,
		"themePaddingBottom":   s.ThemePaddingBottom,
	}
}

// WithEventCount returns a copy with a newer event counter. The receiver
// is left untouched.
func (s TextInputState) WithEventCount(count int64) TextInputState {
	s.EventCount = count
	return s
}

// EllipsizeMode defines where the ellipsis goes when paragraph text
// cannot fit its boundaries.
type EllipsizeMode int

const (
	EllipsizeClip EllipsizeMode = iota
	EllipsizeHead
	EllipsizeMiddle
	EllipsizeTail
)

// TextBreakStrategy selects the line-breaking algorithm for paragraphs.
type TextBreakStrategy int

const (
	BreakSimple TextBreakStrategy = iota
	BreakHighQuality
	BreakBalanced
)

// ParagraphState is the visual attribute record of a paragraph widget.
// Together with the text itself it is what paragraph measurement reads.
type ParagraphState struct {
	// MaximumLines caps how many lines the paragraph may take. Zero
	// means no limit.
	MaximumLines int

	EllipsizeMode     EllipsizeMode
	TextBreakStrategy TextBreakStrategy

	// AdjustsFontSizeToFit enables font scaling into constrained
	// boundaries, bounded by the font size limits below (NaN = unset).
	AdjustsFontSizeToFit bool
	MinimumFontSize      float32
	MaximumFontSize      float32

	// IncludeFontPadding leaves room for ascenders and descenders
	// instead of using the font ascent and descent strictly.
	IncludeFontPadding bool
}

// DefaultParagraphState returns the paragraph attribute defaults: no
// line limit, font padding included, font size limits unset.
func DefaultParagraphState() ParagraphState {
	return ParagraphState{
		IncludeFontPadding: true,
		MinimumFontSize:    flex.Undefined,
		MaximumFontSize:    flex.Undefined,
	}
}

// Fields implements StateRecord.
func (s ParagraphState) Fields() map[string]interface{} {
	return map[string]interface{}{
		"maximumNumberOfLines": s.MaximumLines,
		"ellipsizeMode":        int(s.EllipsizeMode),
		"textBreakStrategy":    int(s.TextBreakStrategy),
		"adjustsFontSizeToFit": s.AdjustsFontSizeToFit,
		"minimumFontSize":      s.MinimumFontSize,
		"maximumFontSize":      s.MaximumFontSize,
		"includeFontPadding":   s.IncludeFontPadding,
	}
}

// MaskUnits selects the coordinate space mask geometry is resolved in.
type MaskUnits int

const (
	// ObjectBoundingBox resolves fractional values against the bounding
	// box of the masked element.
	ObjectBoundingBox MaskUnits = iota

	// UserSpaceOnUse resolves values in the user coordinate system.
	UserSpaceOnUse
)

// MaskState is the reconciliation state of an SVG mask widget: the mask
// region geometry plus the unit modes for region and content.
type MaskState struct {
	X      Dim
	Y      Dim
	Width  Dim
	Height Dim

	MaskUnits        MaskUnits
	MaskContentUnits MaskUnits
}

// Fields implements StateRecord.
func (s MaskState) Fields() map[string]interface{} {
	return map[string]interface{}{
		"x":                s.X,
		"y":                s.Y,
		"width":            s.Width,
		"height":           s.Height,
		"maskUnits":        int(s.MaskUnits),
		"maskContentUnits": int(s.MaskContentUnits),
	}
}
