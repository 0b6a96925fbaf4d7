// Package shadow implements the off-screen layout tree: nodes mirroring
// a declared view hierarchy, each bound to a flexbox solver node, with a
// pass coordinator that solves constraints and propagates computed
// geometry back through the tree.
package shadow

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// passPhase is the layout pass state machine: Idle → Solving → Applying → Idle.
type passPhase int

const (
	phaseIdle passPhase = iota
	phaseSolving
	phaseApplying
)

// layoutPass carries per-pass traversal state: the mutable set of nodes
// whose geometry changed.
type layoutPass struct {
	affected []*Node
}

// Tree is the aggregate shadow structure: a root node, a tag registry,
// and the layout pass coordinator. A tree must be driven from a single
// goroutine; passes on disjoint trees are independent.
type Tree struct {
	root *Node
	lg   *zap.Logger

	// mirrorRTL enables the start/end-over-left/right box-model
	// translation; see Binding.ApplyBoxModel.
	mirrorRTL bool

	phase passPhase

	nodes      map[int64]*Node
	dirtyStyle []*Node

	lastMin    Size
	haveMin    bool
	generation uint64
}

// TreeOption configures a Tree at construction time.
type TreeOption func(*Tree)

// WithLogger attaches a structured logger for pass diagnostics.
func WithLogger(lg *zap.Logger) TreeOption {
	return func(t *Tree) { t.lg = lg }
}

// WithRTLMirroring enables right-to-left mirroring for logical edge
// resolution across the whole tree.
func WithRTLMirroring(enabled bool) TreeOption {
	return func(t *Tree) { t.mirrorRTL = enabled }
}

// NewTree builds a tree rooted at the given detached node.
func NewTree(root *Node, opts ...TreeOption) (*Tree, error) {
	if root.parent != nil {
		return nil, errors.Wrapf(ErrHasParent, "root #%d", root.tag)
	}
	t := &Tree{
		root:  root,
		lg:    zap.NewNop(),
		nodes: make(map[int64]*Node),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.attach(root)
	return t, nil
}

// Root returns the tree's root node.
func (t *Tree) Root() *Node { return t.root }

// NodeForTag looks up an attached node by its tag.
func (t *Tree) NodeForTag(tag int64) (*Node, bool) {
	n, ok := t.nodes[tag]
	return n, ok
}

// attach registers a subtree joining the tree: tag bookkeeping plus
// carrying over any staged style dirtiness into the pass queue.
func (t *Tree) attach(n *Node) {
	stack := acquireNodeSlice(0)
	stack = append(stack, n)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		prev, exists := t.nodes[cur.tag]
		assertf(!exists || prev == cur, "shadow: duplicate tag %d in tree", cur.tag)
		t.nodes[cur.tag] = cur
		cur.tree = t
		if cur.styleDirty {
			t.dirtyStyle = append(t.dirtyStyle, cur)
		}
		stack = append(stack, cur.children...)
	}
	releaseNodeSlice(stack)
}

// detach unregisters a subtree leaving the tree.
func (t *Tree) detach(n *Node) {
	stack := acquireNodeSlice(0)
	stack = append(stack, n)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		delete(t.nodes, cur.tag)
		cur.tree = nil
		stack = append(stack, cur.children...)
	}
	releaseNodeSlice(stack)
}

func (t *Tree) noteStyleDirty(n *Node) {
	t.dirtyStyle = append(t.dirtyStyle, n)
}

// commitPendingStyles resolves box-model state for every node that staged
// edge writes since the previous pass. Cost is proportional to the number
// of dirty nodes, not to the number of property writes.
func (t *Tree) commitPendingStyles() {
	for _, n := range t.dirtyStyle {
		if n.tree == t {
			n.CommitPendingStyle(t.mirrorRTL)
		}
	}
	t.dirtyStyle = t.dirtyStyle[:0]
}

// Layout drives one full layout computation: push root constraints,
// solve, then walk the tree applying computed metrics where they changed.
// It returns the pass's affected nodes in traversal order. An empty
// result means the solver produced no new layout.
//
// Layout must not be re-entered; calling it while a pass is running is a
// contract violation.
func (t *Tree) Layout(minSize, maxSize Size, direction LayoutDirection) ([]*Node, error) {
	if t.phase != phaseIdle {
		return nil, errors.Wrap(ErrLayoutInProgress, "layout pass re-entered")
	}

	start := time.Now()
	t.generation++

	t.commitPendingStyles()

	if !t.haveMin || minSize != t.lastMin {
		t.root.binding.setMinDimensions(minSize)
		t.lastMin = minSize
		t.haveMin = true
	}

	t.phase = phaseSolving
	if err := t.root.binding.ComputeLayout(maxSize.Width, maxSize.Height, direction); err != nil {
		t.phase = phaseIdle
		return nil, err
	}

	// A dirty tree after a completed solve means solver state and shadow
	// state have diverged; continuing would propagate silently wrong
	// geometry, so this is fatal.
	assertf(!t.root.binding.isDirty(), "shadow: solver still dirty after layout pass %d", t.generation)

	marked := markPendingLayouts(t.root, false)
	if marked == 0 {
		t.phase = phaseIdle
		t.lg.Debug("layout pass produced no new layout",
			zap.Uint64("generation", t.generation))
		return nil, nil
	}

	t.phase = phaseApplying

	t.root.pendingLayout = false
	rel := t.root.binding.relativeFrame()
	rootMetrics := LayoutMetrics{
		Frame:     rel,
		Direction: t.root.binding.layoutDirection(),
		Display:   t.root.binding.displayType(),
	}

	scratch := acquireNodeSlice(0)
	pass := &layoutPass{affected: scratch}
	t.root.applyLayoutMetrics(rootMetrics, pass)
	t.root.resolveChildLayout(rootMetrics.Frame.Origin, pass)

	affected := make([]*Node, len(pass.affected))
	copy(affected, pass.affected)
	releaseNodeSlice(pass.affected)

	t.phase = phaseIdle
	t.lg.Debug("layout pass complete",
		zap.Uint64("generation", t.generation),
		zap.Int("marked", marked),
		zap.Int("affected", len(affected)),
		zap.Duration("elapsed", time.Since(start)))
	return affected, nil
}

// markPendingLayouts flags every node whose solver output changed since
// the previous pass, plus every descendant of such a node (when an
// ancestor's origin moves, the descendants' absolute frames move with it
// even though their relative frames are unchanged), plus every ancestor
// of such a node: the traversal only descends through pending nodes, so
// the path from the root down to a changed node must itself be pending
// or the change would never be visited. Returns the number of nodes
// flagged.
func markPendingLayouts(n *Node, ancestorChanged bool) int {
	changed := n.binding.captureFrame() || ancestorChanged

	flagged := 0
	for _, child := range n.children {
		flagged += markPendingLayouts(child, changed)
	}
	if changed || flagged > 0 {
		n.pendingLayout = true
		flagged++
	}
	return flagged
}

// HitTest returns the frontmost node whose frame contains the point, in
// root coordinates, or nil when the point is outside the root. Siblings
// are tested in child-list order, so overlapping frames resolve to the
// earlier sibling regardless of drawing order.
func (t *Tree) HitTest(p Point) *Node {
	frame := t.root.metrics.Frame
	if !frame.Contains(p) {
		return nil
	}
	return t.root.hitTest(Point{X: p.X - frame.Origin.X, Y: p.Y - frame.Origin.Y})
}

func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
