package umbra

import (
	"github.com/kjk/flex"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/umbralabs/umbra/shadow"
)

// Builder compiles declarative widget descriptions into live shadow
// trees under one engine configuration.
type Builder struct {
	cfg Config
	lg  *zap.Logger
}

// NewBuilder creates a builder. A nil logger disables diagnostics.
func NewBuilder(cfg Config, lg *zap.Logger) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Builder{cfg: cfg, lg: lg}, nil
}

// BuildTree compiles a widget description into a shadow tree. Tags left
// zero in the description are assigned sequentially, skipping any tags
// the description sets explicitly.
func (b *Builder) BuildTree(root Widget) (*shadow.Tree, error) {
	used := make(map[int64]bool)
	if err := collectTags(&root, used); err != nil {
		return nil, err
	}

	alloc := tagAllocator{used: used}
	solverCfg := b.cfg.SolverConfig()

	rootNode, err := b.buildNode(&root, &alloc, solverCfg)
	if err != nil {
		return nil, err
	}
	return shadow.NewTree(rootNode,
		shadow.WithLogger(b.lg),
		shadow.WithRTLMirroring(b.cfg.RTLMirroring),
	)
}

func collectTags(w *Widget, used map[int64]bool) error {
	if w.Tag != 0 {
		if used[w.Tag] {
			return errors.Errorf("duplicate widget tag %d", w.Tag)
		}
		used[w.Tag] = true
	}
	for i := range w.Children {
		if err := collectTags(&w.Children[i], used); err != nil {
			return err
		}
	}
	return nil
}

type tagAllocator struct {
	used map[int64]bool
	next int64
}

func (a *tagAllocator) allocate() int64 {
	for {
		a.next++
		if !a.used[a.next] {
			a.used[a.next] = true
			return a.next
		}
	}
}

func (b *Builder) buildNode(w *Widget, alloc *tagAllocator, solverCfg *flex.Config) (*shadow.Node, error) {
	spec, ok := KindByName(w.Kind)
	if !ok {
		return nil, errors.Errorf("unknown widget kind %q", w.Kind)
	}

	tag := w.Tag
	if tag == 0 {
		tag = alloc.allocate()
	}

	opts := []shadow.NodeOption{shadow.WithSolverConfig(solverCfg)}
	if !spec.AllowsChildren {
		opts = append(opts, shadow.Leaf())
	}
	node := shadow.NewNode(tag, string(w.Kind), opts...)

	style, err := w.Style.Style()
	if err != nil {
		return nil, errors.Wrapf(err, "widget #%d (%s)", tag, w.Kind)
	}
	if err := node.SetStyle(style); err != nil {
		return nil, errors.Wrapf(err, "widget #%d (%s)", tag, w.Kind)
	}

	if w.IntrinsicWidth != nil || w.IntrinsicHeight != nil {
		size := shadow.Size{Width: -1, Height: -1}
		if w.IntrinsicWidth != nil {
			size.Width = float32(*w.IntrinsicWidth)
		}
		if w.IntrinsicHeight != nil {
			size.Height = float32(*w.IntrinsicHeight)
		}
		if err := node.SetIntrinsicContentSize(size); err != nil {
			return nil, errors.Wrapf(err, "widget #%d (%s)", tag, w.Kind)
		}
	}

	switch w.Kind {
	case WidgetParagraph:
		node.SetState(shadow.DefaultParagraphState())
	case WidgetTextInput:
		node.SetState(shadow.TextInputState{Text: w.Text})
	case WidgetMask:
		node.SetState(shadow.MaskState{})
	}

	for i := range w.Children {
		child, err := b.buildNode(&w.Children[i], alloc, solverCfg)
		if err != nil {
			return nil, err
		}
		if err := node.InsertChild(child, node.ChildCount()); err != nil {
			return nil, errors.Wrapf(err, "widget #%d (%s)", tag, w.Kind)
		}
	}
	return node, nil
}
