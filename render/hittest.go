package render

import (
	"github.com/weftui/weft/core"
	"github.com/weftui/weft/event"
	"github.com/weftui/weft/property"
	"github.com/weftui/weft/tree"
	"github.com/weftui/weft/widget"
)

// BoundsHitTester resolves untargeted pointer events to the topmost
// visible widget under the pointer. It walks in paint order with the
// same clipping the painter applies, so the last hit is what the user
// sees at that cell
type BoundsHitTester struct {
	store *property.Store
	tree  *tree.Tree
}

// NewBoundsHitTester creates a hit tester over the given store and
// tree
func NewBoundsHitTester(store *property.Store, tr *tree.Tree) *BoundsHitTester {
	return &BoundsHitTester{store: store, tree: tr}
}

// Resolve implements event.TargetResolver for pointer and scroll
// payloads. Events without a position, or positions over no widget,
// stay unresolved
func (h *BoundsHitTester) Resolve(ev *event.Event) (core.Entity, bool) {
	var pt core.Point
	switch p := ev.Payload.(type) {
	case event.PointerPayload:
		pt = p.Pos
	case event.ScrollPayload:
		pt = p.Pos
	default:
		return core.NoEntity, false
	}
	return h.HitTest(pt)
}

// HitTest returns the topmost visible widget containing the point
func (h *BoundsHitTester) HitTest(pt core.Point) (core.Entity, bool) {
	root := h.tree.Root()
	if root == core.NoEntity {
		return core.NoEntity, false
	}
	rootBounds := property.GetOr(h.store, root, widget.KeyBounds, core.Rect{})

	hit := core.NoEntity
	h.probe(root, rootBounds, pt, &hit)
	return hit, hit != core.NoEntity
}

func (h *BoundsHitTester) probe(e core.Entity, clip core.Rect, pt core.Point, hit *core.Entity) {
	if property.GetOr(h.store, e, widget.KeyVisibility, core.Visible) != core.Visible {
		return
	}
	bounds := property.GetOr(h.store, e, widget.KeyBounds, core.Rect{})
	if bounds.Intersect(clip).Contains(pt) {
		*hit = e
	}

	inner := bounds
	if property.GetOr(h.store, e, widget.KeyBorder, false) {
		inner = inner.Shrink(core.UniformThickness(1))
	}
	childClip := inner.Intersect(clip)
	if childClip.IsEmpty() {
		return
	}
	for _, c := range h.tree.Children(e) {
		h.probe(c, childClip, pt, hit)
	}
}
