package umbra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umbralabs/umbra/shadow"
)

func TestParseDim(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    shadow.Dim
		wantErr bool
	}{
		{name: "empty is unset", in: "", want: shadow.Dim{}},
		{name: "points", in: "120", want: shadow.Points(120)},
		{name: "fractional points", in: "12.5", want: shadow.Points(12.5)},
		{name: "percent", in: "50%", want: shadow.Percent(50)},
		{name: "auto", in: "auto", want: shadow.Auto()},
		{name: "whitespace trimmed", in: " 10 ", want: shadow.Points(10)},
		{name: "garbage", in: "12px", wantErr: true},
		{name: "garbage percent", in: "x%", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDim(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStyleSpecStyle(t *testing.T) {
	spec := StyleSpec{
		Width:         "50%",
		Height:        "auto",
		Margin:        map[string]string{"start": "8", "all": "4"},
		Padding:       map[string]string{"horizontal": "10%"},
		Border:        map[string]float64{"all": 1},
		Offset:        map[string]string{"left": "5"},
		Position:      "absolute",
		FlexDirection: "row",
		Justify:       "space-between",
		AlignItems:    "center",
		Direction:     "rtl",
	}

	s, err := spec.Style()
	require.NoError(t, err)

	assert.Equal(t, shadow.Percent(50), s.Width)
	assert.Equal(t, shadow.Auto(), s.Height)
	assert.Equal(t, shadow.Points(8), s.Margin.Get(shadow.EdgeStart))
	assert.Equal(t, shadow.Points(4), s.Margin.Get(shadow.EdgeAll))
	assert.Equal(t, shadow.Percent(10), s.Padding.Get(shadow.EdgeHorizontal))
	assert.Equal(t, shadow.Points(1), s.Border.Get(shadow.EdgeAll))
	assert.Equal(t, shadow.Points(5), s.Position.Get(shadow.EdgeLeft))
	assert.Equal(t, shadow.PositionAbsolute, s.PositionType)
	assert.Equal(t, shadow.FlexRow, s.FlexDirection)
	assert.Equal(t, shadow.JustifySpaceBetween, s.Justify)
	assert.Equal(t, shadow.AlignCenter, s.AlignItems)
	assert.Equal(t, shadow.DirectionRTL, s.Direction)
}

func TestStyleSpecRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		spec StyleSpec
	}{
		{name: "unknown edge", spec: StyleSpec{Margin: map[string]string{"middle": "1"}}},
		{name: "auto padding", spec: StyleSpec{Padding: map[string]string{"top": "auto"}}},
		{name: "bad dimension", spec: StyleSpec{Width: "wide"}},
		{name: "unknown position", spec: StyleSpec{Position: "sticky"}},
		{name: "unknown direction", spec: StyleSpec{FlexDirection: "diagonal"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.spec.Style()
			assert.Error(t, err)
		})
	}
}

func TestKindRegistry(t *testing.T) {
	spec, ok := KindByName(WidgetParagraph)
	require.True(t, ok)
	assert.False(t, spec.AllowsChildren)
	assert.True(t, spec.Measured)

	view, ok := KindByName(WidgetView)
	require.True(t, ok)
	assert.True(t, view.AllowsChildren)

	_, ok = KindByName("Bogus")
	assert.False(t, ok)

	RegisterKind(KindSpec{Name: "Badge", AllowsChildren: false, Measured: true})
	badge, ok := KindByName("Badge")
	require.True(t, ok)
	assert.True(t, badge.Measured)
}

func TestWidgetConstructors(t *testing.T) {
	w := View(StyleSpec{}, Paragraph(100, 40, StyleSpec{}), TextInput("hi", StyleSpec{}))

	assert.Equal(t, WidgetView, w.Kind)
	require.Len(t, w.Children, 2)
	assert.Equal(t, WidgetParagraph, w.Children[0].Kind)
	require.NotNil(t, w.Children[0].IntrinsicWidth)
	assert.Equal(t, 100.0, *w.Children[0].IntrinsicWidth)
	assert.Equal(t, "hi", w.Children[1].Text)
}
