package umbra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umbralabs/umbra/shadow"
)

func TestBuildTreeAssignsTags(t *testing.T) {
	b, err := NewBuilder(DefaultConfig(), nil)
	require.NoError(t, err)

	root := View(StyleSpec{},
		Widget{Kind: WidgetView, Tag: 2},
		View(StyleSpec{}),
	)

	tree, err := b.BuildTree(root)
	require.NoError(t, err)

	// The explicit tag is respected; generated tags skip past it.
	explicit, ok := tree.NodeForTag(2)
	require.True(t, ok)
	assert.Equal(t, WidgetView, WidgetKind(explicit.ViewName()))

	require.Equal(t, 2, tree.Root().ChildCount())
	tags := map[int64]bool{}
	for _, n := range append([]*shadow.Node{tree.Root()}, tree.Root().Children()...) {
		assert.False(t, tags[n.Tag()], "duplicate tag %d", n.Tag())
		tags[n.Tag()] = true
	}
}

func TestBuildTreeRejectsDuplicateTags(t *testing.T) {
	b, err := NewBuilder(DefaultConfig(), nil)
	require.NoError(t, err)

	_, err = b.BuildTree(View(StyleSpec{},
		Widget{Kind: WidgetView, Tag: 5},
		Widget{Kind: WidgetView, Tag: 5},
	))
	assert.Error(t, err)
}

func TestBuildTreeRejectsUnknownKind(t *testing.T) {
	b, err := NewBuilder(DefaultConfig(), nil)
	require.NoError(t, err)

	_, err = b.BuildTree(Widget{Kind: "Carousel"})
	assert.Error(t, err)
}

func TestBuildTreeRejectsChildrenOnLeafKinds(t *testing.T) {
	b, err := NewBuilder(DefaultConfig(), nil)
	require.NoError(t, err)

	_, err = b.BuildTree(Widget{
		Kind:     WidgetParagraph,
		Children: []Widget{{Kind: WidgetView}},
	})
	assert.Error(t, err)
}

func TestBuildTreeSeedsTextInputState(t *testing.T) {
	b, err := NewBuilder(DefaultConfig(), nil)
	require.NoError(t, err)

	tree, err := b.BuildTree(View(StyleSpec{}, TextInput("hello", StyleSpec{})))
	require.NoError(t, err)

	input := tree.Root().Children()[0]
	state, ok := input.State().(shadow.TextInputState)
	require.True(t, ok)
	assert.Equal(t, "hello", state.Text)
}

func TestBuildTreeSeedsParagraphState(t *testing.T) {
	b, err := NewBuilder(DefaultConfig(), nil)
	require.NoError(t, err)

	tree, err := b.BuildTree(View(StyleSpec{}, Paragraph(100, 40, StyleSpec{})))
	require.NoError(t, err)

	para := tree.Root().Children()[0]
	state, ok := para.State().(shadow.ParagraphState)
	require.True(t, ok)
	assert.True(t, state.IncludeFontPadding)
	assert.Zero(t, state.MaximumLines)
}

func TestBuildTreeLayoutEndToEnd(t *testing.T) {
	b, err := NewBuilder(DefaultConfig(), nil)
	require.NoError(t, err)

	root := View(StyleSpec{Width: "200", Height: "100", FlexDirection: "row"},
		View(StyleSpec{FlexGrow: f64(1)}),
		View(StyleSpec{FlexGrow: f64(3)}),
	)

	tree, err := b.BuildTree(root)
	require.NoError(t, err)

	affected, err := tree.Layout(shadow.Size{}, shadow.Size{Width: 200, Height: 100}, shadow.DirectionLTR)
	require.NoError(t, err)
	require.Len(t, affected, 3)

	first := tree.Root().Children()[0].LayoutMetrics().Frame
	second := tree.Root().Children()[1].LayoutMetrics().Frame
	assert.Equal(t, float32(50), first.Size.Width)
	assert.Equal(t, float32(150), second.Size.Width)
	assert.Equal(t, float32(50), second.Origin.X)
}

func TestBuildTreeMeasuredLeaf(t *testing.T) {
	b, err := NewBuilder(DefaultConfig(), nil)
	require.NoError(t, err)

	root := View(StyleSpec{Width: "200", Height: "200", AlignItems: "flex-start"},
		Paragraph(100, 40, StyleSpec{}),
	)
	tree, err := b.BuildTree(root)
	require.NoError(t, err)

	_, err = tree.Layout(shadow.Size{}, shadow.Size{Width: 200, Height: 200}, shadow.DirectionLTR)
	require.NoError(t, err)

	frame := tree.Root().Children()[0].LayoutMetrics().Frame
	assert.Equal(t, float32(100), frame.Size.Width)
	assert.Equal(t, float32(40), frame.Size.Height)
}

func TestSceneRoundTrip(t *testing.T) {
	path := writeFile(t, "scene.toml", `
width = 100.0
height = 100.0

[root]
kind = "View"

[root.style]
width = "100%"
height = "100%"

[[root.children]]
kind = "View"

[root.children.style]
position = "absolute"
width = "50"
height = "50"

[root.children.style.offset]
left = "10"
top = "10"
`)

	scene, err := LoadScene(path)
	require.NoError(t, err)

	b, err := NewBuilder(DefaultConfig(), nil)
	require.NoError(t, err)
	tree, err := b.BuildTree(scene.Root)
	require.NoError(t, err)

	_, err = tree.Layout(scene.MinSize(), scene.MaxSize(), scene.LayoutDirection())
	require.NoError(t, err)

	child := tree.Root().Children()[0]
	assert.Equal(t, shadow.Point{X: 10, Y: 10}, child.LayoutMetrics().Frame.Origin)

	hit := tree.HitTest(shadow.Point{X: 15, Y: 15})
	assert.Equal(t, child, hit)
}

func f64(v float64) *float64 { return &v }
