package tree

import (
	"errors"
	"fmt"

	"github.com/weftui/weft/core"
)

var (
	// ErrUnknownEntity marks an operation referencing an entity the
	// tree does not contain, typically a stale reference after removal
	ErrUnknownEntity = errors.New("entity not in tree")

	// ErrAlreadyInTree marks an insert of an entity that is already
	// attached somewhere in the tree
	ErrAlreadyInTree = errors.New("entity already in tree")
)

// Tree maintains the parent/child relation over widget entities with
// stable sibling order. One designated root anchors the structure; no
// entity can be its own ancestor
//
// Thread-Safety:
//   - Owned by the update loop
//   - Structural writes happen only during the commit phase, never
//     while a walker is live
type Tree struct {
	root     core.Entity
	parent   map[core.Entity]core.Entity
	children map[core.Entity][]core.Entity
}

// New creates an empty tree. SetRoot must run before any insert
func New() *Tree {
	return &Tree{
		parent:   make(map[core.Entity]core.Entity),
		children: make(map[core.Entity][]core.Entity),
	}
}

// SetRoot designates the root entity
// Panics if the tree already has content: re-rooting a live tree is
// structural corruption, not a recoverable condition
func (t *Tree) SetRoot(e core.Entity) {
	if t.root != core.NoEntity || len(t.parent) > 0 {
		panic("tree: already rooted")
	}
	if e == core.NoEntity {
		panic("tree: zero entity cannot be root")
	}
	t.root = e
	t.children[e] = nil
}

// Root returns the designated root, or the zero entity when empty
func (t *Tree) Root() core.Entity {
	return t.root
}

// Contains returns true if the entity is attached to the tree
func (t *Tree) Contains(e core.Entity) bool {
	if e == core.NoEntity {
		return false
	}
	if e == t.root {
		return t.root != core.NoEntity
	}
	_, ok := t.parent[e]
	return ok
}

// Len returns the number of attached entities including the root
func (t *Tree) Len() int {
	if t.root == core.NoEntity {
		return 0
	}
	return len(t.parent) + 1
}

// Insert attaches child under parent at the given sibling index
// An out-of-range index appends. Fails with ErrUnknownEntity when the
// parent is not attached and ErrAlreadyInTree when the child is
func (t *Tree) Insert(parent, child core.Entity, index int) error {
	if child == parent {
		panic(fmt.Sprintf("tree: entity %d inserted under itself", child))
	}
	if child == core.NoEntity {
		return fmt.Errorf("tree: insert zero entity: %w", ErrUnknownEntity)
	}
	if !t.Contains(parent) {
		return fmt.Errorf("tree: insert under %d: %w", parent, ErrUnknownEntity)
	}
	if t.Contains(child) {
		return fmt.Errorf("tree: insert %d: %w", child, ErrAlreadyInTree)
	}

	siblings := t.children[parent]
	if index < 0 || index >= len(siblings) {
		siblings = append(siblings, child)
	} else {
		siblings = append(siblings, core.NoEntity)
		copy(siblings[index+1:], siblings[index:])
		siblings[index] = child
	}
	t.children[parent] = siblings
	t.parent[child] = parent
	return nil
}

// Remove detaches the subtree rooted at e and returns its entities in
// post-order (children before parents, e last) so the caller can run
// cleanup bottom-up. Removing the root empties the tree
func (t *Tree) Remove(e core.Entity) ([]core.Entity, error) {
	if !t.Contains(e) {
		return nil, fmt.Errorf("tree: remove %d: %w", e, ErrUnknownEntity)
	}

	removed := make([]core.Entity, 0, 8)
	w := t.PostOrder(e)
	for ent, ok := w.Next(); ok; ent, ok = w.Next() {
		removed = append(removed, ent)
	}

	// Detach from the parent's sibling list, preserving order
	if parent, ok := t.parent[e]; ok {
		siblings := t.children[parent]
		for i, s := range siblings {
			if s == e {
				t.children[parent] = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}

	for _, ent := range removed {
		delete(t.parent, ent)
		delete(t.children, ent)
	}
	if e == t.root {
		t.root = core.NoEntity
	}
	return removed, nil
}

// Parent returns the parent of e, false for the root or a detached entity
func (t *Tree) Parent(e core.Entity) (core.Entity, bool) {
	p, ok := t.parent[e]
	return p, ok
}

// Children returns a copy of e's children in sibling order
func (t *Tree) Children(e core.Entity) []core.Entity {
	kids := t.children[e]
	if len(kids) == 0 {
		return nil
	}
	out := make([]core.Entity, len(kids))
	copy(out, kids)
	return out
}

// ChildCount returns the number of direct children of e
func (t *Tree) ChildCount(e core.Entity) int {
	return len(t.children[e])
}

// Ancestors returns the path from e's parent up to and including the
// root. Empty for the root itself or a detached entity
func (t *Tree) Ancestors(e core.Entity) []core.Entity {
	var path []core.Entity
	cur := e
	for {
		p, ok := t.parent[cur]
		if !ok {
			break
		}
		path = append(path, p)
		cur = p
	}
	return path
}

// Depth returns the number of edges between e and the root, -1 when
// detached
func (t *Tree) Depth(e core.Entity) int {
	if !t.Contains(e) {
		return -1
	}
	depth := 0
	cur := e
	for {
		p, ok := t.parent[cur]
		if !ok {
			return depth
		}
		depth++
		cur = p
	}
}
