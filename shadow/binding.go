package shadow

import (
	"github.com/kjk/flex"
	"github.com/pkg/errors"
)

// ErrLayoutInProgress is returned when a layout computation is requested
// while the same subtree is already mid-computation.
var ErrLayoutInProgress = errors.New("shadow: layout computation already in progress")

// MeasureMode tells an intrinsic-size provider how to treat one axis.
type MeasureMode int

const (
	// MeasureUndefined means the axis is unconstrained; return the full
	// intrinsic extent.
	MeasureUndefined MeasureMode = iota

	// MeasureExactly means the offered extent must be returned as-is.
	MeasureExactly

	// MeasureAtMost means the result may not exceed the offered extent.
	MeasureAtMost
)

func measureModeFromFlex(m flex.MeasureMode) MeasureMode {
	switch m {
	case flex.MeasureModeExactly:
		return MeasureExactly
	case flex.MeasureModeAtMost:
		return MeasureAtMost
	default:
		return MeasureUndefined
	}
}

// MeasureFunc negotiates the size of a measured (leaf) node with the
// solver. It is called during constraint solving, once per axis pair.
type MeasureFunc func(n *Node, width float32, widthMode MeasureMode, height float32, heightMode MeasureMode) Size

// MeasureIntrinsic resolves an intrinsic content size against the offered
// constraints. Negative "no intrinsic value" sentinels clamp to zero
// before use so a node can never report a negative extent.
func MeasureIntrinsic(intrinsic Size, width float32, widthMode MeasureMode, height float32, heightMode MeasureMode) Size {
	iw := intrinsic.Width
	if iw < 0 {
		iw = 0
	}
	ih := intrinsic.Height
	if ih < 0 {
		ih = 0
	}

	out := Size{Width: iw, Height: ih}
	switch widthMode {
	case MeasureExactly:
		out.Width = width
	case MeasureAtMost:
		if width < out.Width {
			out.Width = width
		}
	}
	switch heightMode {
	case MeasureExactly:
		out.Height = height
	case MeasureAtMost:
		if height < out.Height {
			out.Height = height
		}
	}
	return out
}

// Binding is the one-to-one proxy between a shadow node and its solver
// node. The solver node is exclusively owned by the binding; nothing else
// may mutate it, and the binding's child topology always mirrors the
// owning shadow node's child list exactly.
type Binding struct {
	node  *flex.Node
	owner *Node

	computing bool

	// Relative-frame snapshot from the previous pass, used to decide
	// whether the solver produced a new layout for this node.
	seen     bool
	lastRect Rect
	lastDir  LayoutDirection
	lastDisp DisplayType
}

func newBinding(owner *Node, config *flex.Config) *Binding {
	var n *flex.Node
	if config != nil {
		n = flex.NewNodeWithConfig(config)
	} else {
		n = flex.NewNode()
	}
	b := &Binding{node: n, owner: owner}
	n.Context = owner
	return b
}

// release severs the binding from its solver node. Called exactly once,
// when the owning node is discarded.
func (b *Binding) release() {
	b.node.Context = nil
	b.node.Measure = nil
	b.node = nil
}

func (b *Binding) insertSolverChild(child *Binding, index int) {
	b.node.InsertChild(child.node, index)
}

func (b *Binding) removeSolverChild(child *Binding) {
	b.node.RemoveChild(child.node)
}

func (b *Binding) isDirty() bool {
	return b.node.IsDirty
}

// SetMeasureFunc installs or removes the measurement callback. The solver
// invokes it while solving nodes that have no children.
func (b *Binding) SetMeasureFunc(fn MeasureFunc) {
	if fn == nil {
		b.node.SetMeasureFunc(nil)
		return
	}
	b.node.SetMeasureFunc(func(n *flex.Node, width float32, widthMode flex.MeasureMode, height float32, heightMode flex.MeasureMode) flex.Size {
		owner, _ := n.Context.(*Node)
		out := fn(owner, width, measureModeFromFlex(widthMode), height, measureModeFromFlex(heightMode))
		return flex.Size{Width: out.Width, Height: out.Height}
	})
}

func (b *Binding) hasMeasureFunc() bool {
	return b.node.Measure != nil
}

// markMeasureDirty invalidates cached measurements of a measured node.
// Only nodes with a measure function may be marked this way.
func (b *Binding) markMeasureDirty() {
	b.node.MarkDirty()
}

// ComputeLayout solves the whole subtree rooted at this binding against
// the given maximum dimensions. Undefined maxima leave the axis
// unconstrained. The error is reported upward, never retried.
func (b *Binding) ComputeLayout(maxWidth, maxHeight float32, direction LayoutDirection) error {
	if b.computing {
		return errors.WithStack(ErrLayoutInProgress)
	}
	b.computing = true
	defer func() { b.computing = false }()

	flex.CalculateLayout(b.node, maxWidth, maxHeight, direction.flex())
	return nil
}

// relativeFrame reads the solver-computed frame in the parent's
// coordinate space.
func (b *Binding) relativeFrame() Rect {
	return Rect{
		Origin: Point{X: b.node.LayoutGetLeft(), Y: b.node.LayoutGetTop()},
		Size:   Size{Width: b.node.LayoutGetWidth(), Height: b.node.LayoutGetHeight()},
	}
}

func (b *Binding) layoutDirection() LayoutDirection {
	return directionFromFlex(b.node.Layout.Direction)
}

func (b *Binding) displayType() DisplayType {
	if b.node.Style.Display == flex.DisplayNone {
		return DisplayNone
	}
	return DisplayFlex
}

// captureFrame compares the solver output against the last captured
// snapshot, updates the snapshot, and reports whether the solver produced
// a new layout for this node since the previous pass.
func (b *Binding) captureFrame() bool {
	r := b.relativeFrame()
	dir := b.layoutDirection()
	disp := b.displayType()
	changed := !b.seen ||
		r != b.lastRect || dir != b.lastDir || disp != b.lastDisp
	b.seen = true
	b.lastRect = r
	b.lastDir = dir
	b.lastDisp = disp
	return changed
}

func (b *Binding) setMinDimensions(min Size) {
	b.node.StyleSetMinWidth(min.Width)
	b.node.StyleSetMinHeight(min.Height)
}

// --- Style translation ---

// edgeWriters is the setter triplet of one box-model group. Groups that
// do not support a unit leave the corresponding writer nil; Validate
// rejects those units before they can reach the binding.
type edgeWriters struct {
	point   func(flex.Edge, float32)
	percent func(flex.Edge, float32)
	auto    func(flex.Edge)
}

func (w edgeWriters) write(e flex.Edge, d Dim) {
	switch d.Unit {
	case UnitPoint:
		w.point(e, d.Value)
	case UnitPercent:
		if w.percent != nil {
			w.percent(e, d.Value)
		}
	case UnitAuto:
		if w.auto != nil {
			w.auto(e)
		}
	default:
		// Clear the edge back to the solver default.
		w.point(e, flex.Undefined)
	}
}

// ApplyBoxModel resolves the sparse per-edge values of the margin,
// padding, and border groups into solver configuration, applying the
// logical-to-physical translation rule independently per group:
//
//   - mirroring disabled: every edge, logical and physical, is written
//     straight through and the solver maps start→left, end→right.
//   - mirroring enabled: only logical edges are written; start falls back
//     to the literal left value when start itself is unset, and end falls
//     back to right likewise.
//
// Horizontal, vertical, and all always pass through; the solver treats
// them as fallbacks for the more specific edges.
func (b *Binding) ApplyBoxModel(margin, padding, border EdgeValues, mirrorRTL bool) {
	n := b.node
	b.applyEdgeGroup(margin, edgeWriters{
		point:   n.StyleSetMargin,
		percent: n.StyleSetMarginPercent,
		auto:    n.StyleSetMarginAuto,
	}, mirrorRTL)
	b.applyEdgeGroup(padding, edgeWriters{
		point:   n.StyleSetPadding,
		percent: n.StyleSetPaddingPercent,
	}, mirrorRTL)
	b.applyEdgeGroup(border, edgeWriters{
		point: n.StyleSetBorder,
	}, mirrorRTL)
}

func (b *Binding) applyEdgeGroup(ev EdgeValues, w edgeWriters, mirrorRTL bool) {
	if !mirrorRTL {
		w.write(flex.EdgeStart, ev[EdgeStart])
		w.write(flex.EdgeEnd, ev[EdgeEnd])
		w.write(flex.EdgeLeft, ev[EdgeLeft])
		w.write(flex.EdgeRight, ev[EdgeRight])
	} else {
		start := ev[EdgeStart]
		if !start.IsSet() {
			start = ev[EdgeLeft]
		}
		end := ev[EdgeEnd]
		if !end.IsSet() {
			end = ev[EdgeRight]
		}
		w.write(flex.EdgeStart, start)
		w.write(flex.EdgeEnd, end)
		// The physical edges served as fallbacks; clear them so stale
		// values from a previous commit cannot shadow the logical ones.
		w.write(flex.EdgeLeft, Dim{})
		w.write(flex.EdgeRight, Dim{})
	}
	w.write(flex.EdgeTop, ev[EdgeTop])
	w.write(flex.EdgeBottom, ev[EdgeBottom])
	w.write(flex.EdgeHorizontal, ev[EdgeHorizontal])
	w.write(flex.EdgeVertical, ev[EdgeVertical])
	w.write(flex.EdgeAll, ev[EdgeAll])
}

func writeDim(d Dim, point func(float32), percent func(float32), auto func()) {
	switch d.Unit {
	case UnitPoint:
		point(d.Value)
	case UnitPercent:
		if percent != nil {
			percent(d.Value)
		}
	case UnitAuto:
		if auto != nil {
			auto()
		}
	default:
		point(flex.Undefined)
	}
}

// applyLayoutProps writes every non-box-model style property directly to
// the solver. Box-model groups are deferred to ApplyBoxModel so their
// resolution runs once per commit, not once per property write.
func (b *Binding) applyLayoutProps(s *Style) {
	n := b.node

	writeDim(s.Width, n.StyleSetWidth, n.StyleSetWidthPercent, n.StyleSetWidthAuto)
	writeDim(s.Height, n.StyleSetHeight, n.StyleSetHeightPercent, n.StyleSetHeightAuto)
	writeDim(s.MinWidth, n.StyleSetMinWidth, n.StyleSetMinWidthPercent, nil)
	writeDim(s.MinHeight, n.StyleSetMinHeight, n.StyleSetMinHeightPercent, nil)
	writeDim(s.MaxWidth, n.StyleSetMaxWidth, n.StyleSetMaxWidthPercent, nil)
	writeDim(s.MaxHeight, n.StyleSetMaxHeight, n.StyleSetMaxHeightPercent, nil)

	n.StyleSetFlexGrow(s.FlexGrow)
	n.StyleSetFlexShrink(s.FlexShrink)
	writeDim(s.FlexBasis, n.StyleSetFlexBasis, n.StyleSetFlexBasisPercent, func() {
		flex.NodeStyleSetFlexBasisAuto(n)
	})

	n.StyleSetPositionType(s.PositionType.flex())
	for e := EdgeLeft; e < edgeCount; e++ {
		d := s.Position[e]
		switch d.Unit {
		case UnitPoint:
			n.StyleSetPosition(e.flex(), d.Value)
		case UnitPercent:
			n.StyleSetPositionPercent(e.flex(), d.Value)
		default:
			n.StyleSetPosition(e.flex(), flex.Undefined)
		}
	}

	n.StyleSetFlexDirection(s.FlexDirection.flex())
	n.StyleSetJustifyContent(s.Justify.flex())
	n.StyleSetAlignItems(s.AlignItems.flex())
	n.StyleSetAlignSelf(s.AlignSelf.flex())
	n.StyleSetAlignContent(s.AlignContent.flex())
	n.StyleSetFlexWrap(s.Wrap.flex())

	n.StyleSetOverflow(s.Overflow.flex())
	n.StyleSetDisplay(s.Display.flex())
	n.StyleSetDirection(s.Direction.flex())
	n.StyleSetAspectRatio(s.AspectRatio)
}

// --- Standalone measurement ---

// MeasureStandalone computes the size the owning node (with its existing
// children) would occupy inside a synthetic single-child container
// constrained to [minSize, maxSize], without touching the live solver
// state. The node's solver subtree is deep-cloned into scratch nodes;
// the scratch computation therefore cannot disturb committed layout,
// dirty flags, or cached measurements, and the scratch state is torn down
// on every exit path, including a solver panic.
func (b *Binding) MeasureStandalone(minSize, maxSize Size, direction LayoutDirection) (Size, error) {
	if b.computing {
		return Size{}, errors.WithStack(ErrLayoutInProgress)
	}

	scratch := flex.NewNodeWithConfig(b.node.Config)
	scratch.StyleSetMinWidth(minSize.Width)
	scratch.StyleSetMinHeight(minSize.Height)
	scratch.StyleSetMaxWidth(maxSize.Width)
	scratch.StyleSetMaxHeight(maxSize.Height)

	clone := cloneSolverTree(b.node)
	scratch.InsertChild(clone, 0)
	defer scratch.RemoveChild(clone)

	flex.CalculateLayout(scratch, flex.Undefined, flex.Undefined, direction.flex())

	return Size{
		Width:  clone.LayoutGetWidth(),
		Height: clone.LayoutGetHeight(),
	}, nil
}

// cloneSolverTree copies a solver subtree into fresh nodes: style, measure
// function, node type, and context are carried over, layout state is not.
func cloneSolverTree(src *flex.Node) *flex.Node {
	dst := flex.NewNodeWithConfig(src.Config)
	flex.NodeCopyStyle(dst, src)
	if src.Measure != nil {
		dst.NodeType = src.NodeType
		dst.Measure = src.Measure
		dst.Context = src.Context
	}
	for i, child := range src.Children {
		dst.InsertChild(cloneSolverTree(child), i)
	}
	return dst
}
