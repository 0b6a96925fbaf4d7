package shadow

import (
	"testing"
)

func TestTextInputStateWithEventCount(t *testing.T) {
	orig := TextInputState{EventCount: 3, Text: "hello"}
	next := orig.WithEventCount(4)

	if next.EventCount != 4 {
		t.Errorf("next.EventCount = %d, want 4", next.EventCount)
	}
	if next.Text != "hello" {
		t.Errorf("next.Text = %q, want carried over", next.Text)
	}
	if orig.EventCount != 3 {
		t.Error("WithEventCount mutated the receiver")
	}
}

func TestTextInputStateFields(t *testing.T) {
	s := TextInputState{
		EventCount:        7,
		CacheID:           42,
		Text:              "abc",
		SelectionStart:    1,
		SelectionEnd:      2,
		ThemePaddingStart: 4,
	}
	f := s.Fields()

	if f["mostRecentEventCount"] != int64(7) {
		t.Errorf("mostRecentEventCount = %v, want 7", f["mostRecentEventCount"])
	}
	if f["opaqueCacheId"] != int64(42) {
		t.Errorf("opaqueCacheId = %v, want 42", f["opaqueCacheId"])
	}
	if f["themePaddingStart"] != float32(4) {
		t.Errorf("themePaddingStart = %v, want 4", f["themePaddingStart"])
	}
}

func TestNodeStateReplacement(t *testing.T) {
	n := NewNode(1, "TextInput", Leaf())
	if n.State() != nil {
		t.Fatal("fresh node carries state")
	}

	n.SetState(TextInputState{EventCount: 1})
	got, ok := n.State().(TextInputState)
	if !ok || got.EventCount != 1 {
		t.Fatalf("State() = %v", n.State())
	}

	n.SetState(got.WithEventCount(2))
	if n.State().(TextInputState).EventCount != 2 {
		t.Error("state replacement did not take")
	}
}

func TestParagraphStateDefaults(t *testing.T) {
	s := DefaultParagraphState()

	if s.MaximumLines != 0 {
		t.Errorf("MaximumLines = %d, want 0 (no limit)", s.MaximumLines)
	}
	if !s.IncludeFontPadding {
		t.Error("IncludeFontPadding defaults to false, want true")
	}
	if !flexIsNaN(s.MinimumFontSize) || !flexIsNaN(s.MaximumFontSize) {
		t.Errorf("font size limits = %g/%g, want unset", s.MinimumFontSize, s.MaximumFontSize)
	}
	if s.EllipsizeMode != EllipsizeClip {
		t.Errorf("EllipsizeMode = %d, want clip", s.EllipsizeMode)
	}
}

func flexIsNaN(v float32) bool { return v != v }

func TestParagraphStateFields(t *testing.T) {
	s := ParagraphState{
		MaximumLines:         2,
		EllipsizeMode:        EllipsizeTail,
		TextBreakStrategy:    BreakBalanced,
		AdjustsFontSizeToFit: true,
		MinimumFontSize:      10,
		MaximumFontSize:      24,
	}
	f := s.Fields()

	if f["maximumNumberOfLines"] != 2 {
		t.Errorf("maximumNumberOfLines = %v, want 2", f["maximumNumberOfLines"])
	}
	if f["ellipsizeMode"] != int(EllipsizeTail) {
		t.Errorf("ellipsizeMode = %v, want tail", f["ellipsizeMode"])
	}
	if f["textBreakStrategy"] != int(BreakBalanced) {
		t.Errorf("textBreakStrategy = %v, want balanced", f["textBreakStrategy"])
	}
	if f["adjustsFontSizeToFit"] != true {
		t.Errorf("adjustsFontSizeToFit = %v, want true", f["adjustsFontSizeToFit"])
	}
	if f["minimumFontSize"] != float32(10) {
		t.Errorf("minimumFontSize = %v, want 10", f["minimumFontSize"])
	}
	if f["includeFontPadding"] != false {
		t.Errorf("includeFontPadding = %v, want false", f["includeFontPadding"])
	}
}

func TestMaskStateFields(t *testing.T) {
	s := MaskState{
		X:         Percent(10),
		Width:     Percent(120),
		MaskUnits: UserSpaceOnUse,
	}
	f := s.Fields()

	if f["x"] != Percent(10) {
		t.Errorf("x = %v, want 10%%", f["x"])
	}
	if f["maskUnits"] != int(UserSpaceOnUse) {
		t.Errorf("maskUnits = %v, want %d", f["maskUnits"], UserSpaceOnUse)
	}
	if f["maskContentUnits"] != int(ObjectBoundingBox) {
		t.Errorf("maskContentUnits = %v, want object bounding box default", f["maskContentUnits"])
	}
}
