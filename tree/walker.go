package tree

import "github.com/weftui/weft/core"

// Walkers yield entities lazily over the structure as it stands when
// the walk begins. A walker is single-use: there is no reset. The
// commit discipline guarantees no structural mutation happens while a
// walker is live, so the live child slices are safe to read

// PreOrderWalker visits parents before children, siblings in order
type PreOrderWalker struct {
	tree  *Tree
	stack []core.Entity
}

// PreOrder starts a pre-order walk at start (top-down, for build and
// layout passes). A detached start yields an empty walk
func (t *Tree) PreOrder(start core.Entity) *PreOrderWalker {
	w := &PreOrderWalker{tree: t}
	if t.Contains(start) {
		w.stack = append(w.stack, start)
	}
	return w
}

// Next returns the next entity, false when the walk is exhausted
func (w *PreOrderWalker) Next() (core.Entity, bool) {
	if len(w.stack) == 0 {
		return core.NoEntity, false
	}
	e := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]

	// Push children reversed so the first sibling pops first
	kids := w.tree.children[e]
	for i := len(kids) - 1; i >= 0; i-- {
		w.stack = append(w.stack, kids[i])
	}
	return e, true
}

// PostOrderWalker visits children before parents, siblings in order
type PostOrderWalker struct {
	tree  *Tree
	stack []postFrame
}

type postFrame struct {
	entity core.Entity
	next   int
}

// PostOrder starts a post-order walk at start (bottom-up, for
// measurement and cleanup passes). A detached start yields an empty walk
func (t *Tree) PostOrder(start core.Entity) *PostOrderWalker {
	w := &PostOrderWalker{tree: t}
	if t.Contains(start) {
		w.stack = append(w.stack, postFrame{entity: start})
	}
	return w
}

// Next returns the next entity, false when the walk is exhausted
func (w *PostOrderWalker) Next() (core.Entity, bool) {
	for len(w.stack) > 0 {
		top := &w.stack[len(w.stack)-1]
		kids := w.tree.children[top.entity]
		if top.next < len(kids) {
			child := kids[top.next]
			top.next++
			w.stack = append(w.stack, postFrame{entity: child})
			continue
		}
		e := top.entity
		w.stack = w.stack[:len(w.stack)-1]
		return e, true
	}
	return core.NoEntity, false
}

// Collect drains a pre-order walker into a slice, for passes that
// need the full sequence up front
func (w *PreOrderWalker) Collect() []core.Entity {
	var out []core.Entity
	for e, ok := w.Next(); ok; e, ok = w.Next() {
		out = append(out, e)
	}
	return out
}
