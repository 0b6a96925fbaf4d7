package shadow

import (
	"fmt"

	"github.com/kjk/flex"
	"github.com/pkg/errors"
)

// Contract violations returned by tree mutations. They indicate a caller
// bug, never a transient condition, and must not be retried.
var (
	ErrLeafNode        = errors.New("shadow: node kind does not allow children")
	ErrNotAChild       = errors.New("shadow: node is not a child of this parent")
	ErrHasParent       = errors.New("shadow: node already belongs to a parent")
	ErrIndexOutOfRange = errors.New("shadow: child index out of range")
)

// noIntrinsicSize is the sentinel for "no intrinsic content size set".
var noIntrinsicSize = Size{Width: -1, Height: -1}

// Node is one element of the shadow tree: the off-screen mirror of a
// declared view, used purely for layout computation. A node owns its
// solver binding and its children; the parent pointer is non-owning and
// is cleared on removal.
type Node struct {
	tag      int64
	viewName string

	binding  *Binding
	parent   *Node
	children []*Node

	// tree is set while the node is attached to a Tree (root or any
	// descendant of the root), nil otherwise.
	tree *Tree

	style      Style
	styleDirty bool

	metrics       LayoutMetrics
	pendingLayout bool

	intrinsicSize Size
	measure       MeasureFunc

	childrenAllowed bool

	state StateRecord
}

// NodeOption configures a node at construction time.
type NodeOption func(*nodeConfig)

type nodeConfig struct {
	solverConfig    *flex.Config
	childrenAllowed bool
	measure         MeasureFunc
}

// Leaf marks the node as a leaf widget kind: inserting children into it
// is a contract violation.
func Leaf() NodeOption {
	return func(c *nodeConfig) { c.childrenAllowed = false }
}

// WithMeasureFunc installs a custom intrinsic-size provider. Implies Leaf:
// the solver forbids children on measured nodes.
func WithMeasureFunc(fn MeasureFunc) NodeOption {
	return func(c *nodeConfig) {
		c.measure = fn
		c.childrenAllowed = false
	}
}

// WithSolverConfig attaches the node's solver instance to a shared solver
// configuration (point scale factor, experimental features).
func WithSolverConfig(cfg *flex.Config) NodeOption {
	return func(c *nodeConfig) { c.solverConfig = cfg }
}

// NewNode creates a detached shadow node. The tag must be unique within
// the tree the node will join; the view name identifies the widget type
// for debugging and measurement dispatch.
func NewNode(tag int64, viewName string, opts ...NodeOption) *Node {
	cfg := nodeConfig{childrenAllowed: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := &Node{
		tag:             tag,
		viewName:        viewName,
		style:           DefaultStyle(),
		intrinsicSize:   noIntrinsicSize,
		childrenAllowed: cfg.childrenAllowed,
	}
	n.binding = newBinding(n, cfg.solverConfig)
	if cfg.measure != nil {
		n.measure = cfg.measure
		n.binding.SetMeasureFunc(cfg.measure)
	}
	return n
}

// Tag returns the node's opaque numeric identity.
func (n *Node) Tag() int64 { return n.tag }

// ViewName returns the widget type name the node was created for.
func (n *Node) ViewName() string { return n.viewName }

// Parent returns the owning parent, or nil for a root or detached node.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the ordered child list. Callers must not mutate it.
func (n *Node) Children() []*Node { return n.children }

// ChildCount returns the number of owned children.
func (n *Node) ChildCount() int { return len(n.children) }

// Binding exposes the node's constraint-solver binding.
func (n *Node) Binding() *Binding { return n.binding }

// LayoutMetrics returns the geometry computed by the most recent layout
// pass over the tree containing this node. Metrics are only meaningful
// immediately after a completed pass.
func (n *Node) LayoutMetrics() LayoutMetrics { return n.metrics }

// HasPendingLayout reports whether the solver produced new geometry for
// this node that has not yet been consumed by a traversal.
func (n *Node) HasPendingLayout() bool { return n.pendingLayout }

func (n *Node) String() string {
	return fmt.Sprintf("<%s #%d %s>", n.viewName, n.tag, n.metrics.Frame)
}

// --- Tree mutations ---

// InsertChild splices the child into the child list at index and attaches
// its solver binding at the same position, keeping the solver topology an
// exact mirror of the shadow topology.
func (n *Node) InsertChild(child *Node, index int) error {
	if !n.childrenAllowed || n.binding.hasMeasureFunc() {
		return errors.Wrapf(ErrLeafNode, "cannot insert #%d into %s #%d", child.tag, n.viewName, n.tag)
	}
	if child.parent != nil {
		return errors.Wrapf(ErrHasParent, "node #%d", child.tag)
	}
	if index < 0 || index > len(n.children) {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d with %d children", index, len(n.children))
	}

	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	child.parent = n

	n.binding.insertSolverChild(child.binding, index)

	if n.tree != nil {
		n.tree.attach(child)
	}
	return nil
}

// RemoveChild detaches the child from this node and from the solver.
// Removing a node that is not currently a child is a contract violation,
// not a silent success.
func (n *Node) RemoveChild(child *Node) error {
	idx := -1
	for i, c := range n.children {
		if c == child {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.Wrapf(ErrNotAChild, "node #%d of parent #%d", child.tag, n.tag)
	}

	copy(n.children[idx:], n.children[idx+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.parent = nil

	n.binding.removeSolverChild(child.binding)

	if n.tree != nil {
		n.tree.detach(child)
	}
	return nil
}

// --- Style ---

// SetStyle stages a full style update. Non-box-model properties are
// written to the solver immediately; the margin, padding, and border
// groups are resolved once by the next CommitPendingStyle, so box-model
// recomputation cost stays proportional to dirty nodes rather than to
// individual property writes.
func (n *Node) SetStyle(s Style) error {
	if err := s.Validate(); err != nil {
		return err
	}
	n.style = s
	n.binding.applyLayoutProps(&n.style)
	n.markStyleDirty()
	return nil
}

// Style returns the currently staged style.
func (n *Node) Style() Style { return n.style }

// SetMargin stages one margin edge.
func (n *Node) SetMargin(e Edge, d Dim) {
	n.style.Margin[e] = d
	n.markStyleDirty()
}

// SetPadding stages one padding edge.
func (n *Node) SetPadding(e Edge, d Dim) {
	n.style.Padding[e] = d
	n.markStyleDirty()
}

// SetBorder stages one border edge. Border widths are point values only.
func (n *Node) SetBorder(e Edge, points float32) {
	n.style.Border[e] = Points(points)
	n.markStyleDirty()
}

// SetWidth writes the width dimension through to the solver.
func (n *Node) SetWidth(d Dim) {
	n.style.Width = d
	writeDim(d, n.binding.node.StyleSetWidth, n.binding.node.StyleSetWidthPercent, n.binding.node.StyleSetWidthAuto)
}

// SetHeight writes the height dimension through to the solver.
func (n *Node) SetHeight(d Dim) {
	n.style.Height = d
	writeDim(d, n.binding.node.StyleSetHeight, n.binding.node.StyleSetHeightPercent, n.binding.node.StyleSetHeightAuto)
}

// SetFlexGrow writes the grow factor through to the solver.
func (n *Node) SetFlexGrow(v float32) {
	n.style.FlexGrow = v
	n.binding.node.StyleSetFlexGrow(v)
}

// SetPositionType writes the positioning mode through to the solver.
func (n *Node) SetPositionType(p PositionType) {
	n.style.PositionType = p
	n.binding.node.StyleSetPositionType(p.flex())
}

func (n *Node) markStyleDirty() {
	if n.styleDirty {
		return
	}
	n.styleDirty = true
	if n.tree != nil {
		n.tree.noteStyleDirty(n)
	}
}

// CommitPendingStyle performs the box-model resolution for a batch of
// staged edge writes, exactly once per batch.
func (n *Node) CommitPendingStyle(mirrorRTL bool) {
	if !n.styleDirty {
		return
	}
	n.binding.ApplyBoxModel(n.style.Margin, n.style.Padding, n.style.Border, mirrorRTL)
	n.styleDirty = false
}

// --- Measurement ---

// SetIntrinsicContentSize sets the natural size a measured leaf reports
// when the solver offers it unconstrained space. Passing a size with both
// dimensions negative removes it. Installing an intrinsic size on a node
// without a custom measure function wires the default intrinsic provider.
func (n *Node) SetIntrinsicContentSize(s Size) error {
	if n.childrenAllowed && len(n.children) > 0 {
		return errors.Wrapf(ErrLeafNode, "intrinsic size on container #%d with children", n.tag)
	}

	removed := s.Width < 0 && s.Height < 0
	hadMeasure := n.binding.hasMeasureFunc()
	n.intrinsicSize = s

	switch {
	case removed && n.measure == nil && hadMeasure:
		n.binding.SetMeasureFunc(nil)
	case !removed && !hadMeasure:
		n.binding.SetMeasureFunc(intrinsicMeasure)
	case !removed && hadMeasure:
		n.binding.markMeasureDirty()
	}
	return nil
}

// IntrinsicContentSize returns the current intrinsic size, or a negative
// sentinel pair when none is set.
func (n *Node) IntrinsicContentSize() Size { return n.intrinsicSize }

// intrinsicMeasure is the default provider for nodes that carry an
// intrinsic content size but no custom measure function.
func intrinsicMeasure(n *Node, width float32, widthMode MeasureMode, height float32, heightMode MeasureMode) Size {
	intrinsic := noIntrinsicSize
	if n != nil {
		intrinsic = n.intrinsicSize
	}
	return MeasureIntrinsic(intrinsic, width, widthMode, height, heightMode)
}

// --- State records ---

// SetState replaces the node's widget state record wholesale. Records are
// immutable by convention; the layout algorithm never mutates them.
func (n *Node) SetState(s StateRecord) { n.state = s }

// State returns the current widget state record, or nil.
func (n *Node) State() StateRecord { return n.state }

// --- Layout application ---

// applyLayoutMetrics stores the incoming metrics and registers the node
// in the pass's affected set, but only when the metrics actually differ.
// Comparison is exact; see LayoutMetrics.Equal.
func (n *Node) applyLayoutMetrics(m LayoutMetrics, pass *layoutPass) {
	if n.metrics.Equal(m) {
		return
	}
	n.metrics = m
	pass.affected = append(pass.affected, n)
}

// resolveChildLayout walks the children in list order, consuming pending
// solver output. Each child's subtree is fully processed before the
// traversal advances to the next sibling, and the absolute offset is
// passed down by value so siblings never see each other's offsets.
func (n *Node) resolveChildLayout(absolute Point, pass *layoutPass) {
	for _, child := range n.children {
		if !child.pendingLayout {
			continue
		}
		child.pendingLayout = false

		rel := child.binding.relativeFrame()
		abs := LayoutMetrics{
			Frame: Rect{
				Origin: Point{X: absolute.X + rel.Origin.X, Y: absolute.Y + rel.Origin.Y},
				Size:   rel.Size,
			},
			Direction: child.binding.layoutDirection(),
			Display:   child.binding.displayType(),
		}
		child.applyLayoutMetrics(abs, pass)
		child.resolveChildLayout(abs.Frame.Origin, pass)
	}
}

// hitTest finds the frontmost node containing the point, expressed in
// this node's local coordinate space. Children are tested in list order,
// not draw order; the first geometric match wins. Returns the node itself
// when no child matches.
func (n *Node) hitTest(local Point) *Node {
	for _, child := range n.children {
		rel := Rect{
			Origin: Point{
				X: child.metrics.Frame.Origin.X - n.metrics.Frame.Origin.X,
				Y: child.metrics.Frame.Origin.Y - n.metrics.Frame.Origin.Y,
			},
			Size: child.metrics.Frame.Size,
		}
		if rel.Contains(local) {
			return child.hitTest(Point{X: local.X - rel.Origin.X, Y: local.Y - rel.Origin.Y})
		}
	}
	return n
}
