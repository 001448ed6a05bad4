package render

import (
	"github.com/weftui/weft/core"
	"github.com/weftui/weft/property"
	"github.com/weftui/weft/tree"
	"github.com/weftui/weft/widget"
)

// Builder assembles snapshots from the store and tree. It holds no
// state between frames; damage bookkeeping belongs to the caller
type Builder struct {
	store *property.Store
	tree  *tree.Tree
}

// NewBuilder creates a snapshot builder over the given store and tree
func NewBuilder(store *property.Store, tr *tree.Tree) *Builder {
	return &Builder{store: store, tree: tr}
}

// Build walks the visible tree in paint order and resolves each
// widget's visual properties. Subtrees that are hidden or collapsed
// are left out entirely. Nodes listed in damage, or all nodes when
// full is set, come back flagged for painting
func (b *Builder) Build(seq int64, viewport core.Rect, damage map[core.Entity]bool, full bool) *Frame {
	f := &Frame{Seq: seq, Viewport: viewport, Full: full}
	root := b.tree.Root()
	if root == core.NoEntity {
		return f
	}
	b.collect(f, root, viewport, 0, damage, full)
	return f
}

func (b *Builder) collect(f *Frame, e core.Entity, parentClip core.Rect, depth int, damage map[core.Entity]bool, full bool) {
	if property.GetOr(b.store, e, widget.KeyVisibility, core.Visible) != core.Visible {
		return
	}

	bounds := property.GetOr(b.store, e, widget.KeyBounds, core.Rect{})
	clip := bounds.Intersect(parentClip)

	inner := bounds
	if property.GetOr(b.store, e, widget.KeyBorder, false) {
		inner = inner.Shrink(core.UniformThickness(1))
	}
	content := inner.Shrink(property.GetOr(b.store, e, widget.KeyPadding, core.Thickness{}))

	f.Nodes = append(f.Nodes, Node{
		Entity:     e,
		Depth:      depth,
		Bounds:     bounds,
		Clip:       clip,
		Content:    content,
		Background: property.GetOr(b.store, e, widget.KeyBackground, core.BrushTransparent),
		Foreground: property.GetOr(b.store, e, widget.KeyForeground, core.BrushTransparent),
		Border:     property.GetOr(b.store, e, widget.KeyBorder, false),
		BorderHue:  property.GetOr(b.store, e, widget.KeyBorderBrush, core.BrushTransparent),
		Text:       property.GetOr(b.store, e, widget.KeyText, ""),
		TextHAlign: property.GetOr(b.store, e, widget.KeyHAlign, core.AlignStart),
		TextVAlign: property.GetOr(b.store, e, widget.KeyVAlign, core.AlignStart),
		Focused:    property.GetOr(b.store, e, widget.KeyFocused, false),
		Enabled:    property.GetOr(b.store, e, widget.KeyEnabled, true),
		Damaged:    full || damage[e],
	})

	// Children draw after the parent, clipped to its inner region so
	// overflow never paints across a border
	childClip := inner.Intersect(clip)
	for _, c := range b.tree.Children(e) {
		b.collect(f, c, childClip, depth+1, damage, full)
	}
}
