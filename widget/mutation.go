package widget

import "github.com/weftui/weft/core"

// MutationKind discriminates deferred structural operations
type MutationKind uint8

const (
	MutationInsert MutationKind = iota
	MutationRemove
)

// Mutation is one deferred structural request. Insert carries the
// widget to build plus the mount point; Remove carries the target
type Mutation struct {
	Kind   MutationKind
	Parent core.Entity
	Widget Widget
	Index  int
	Target core.Entity
}

// MutationQueue buffers structural requests raised during a frame so
// they can be applied in order at the commit phase, after dispatch and
// updates have finished walking the tree
type MutationQueue struct {
	ops []Mutation
}

// NewMutationQueue returns an empty buffer
func NewMutationQueue() *MutationQueue {
	return &MutationQueue{}
}

// PushInsert records a subtree insertion. index beyond the current
// child count appends; negative indices append as well
func (q *MutationQueue) PushInsert(parent core.Entity, w Widget, index int) {
	q.ops = append(q.ops, Mutation{Kind: MutationInsert, Parent: parent, Widget: w, Index: index})
}

// PushRemove records a subtree removal
func (q *MutationQueue) PushRemove(target core.Entity) {
	q.ops = append(q.ops, Mutation{Kind: MutationRemove, Target: target})
}

// Len returns the number of pending requests
func (q *MutationQueue) Len() int { return len(q.ops) }

// Drain returns the pending requests in request order and empties the
// buffer
func (q *MutationQueue) Drain() []Mutation {
	ops := q.ops
	q.ops = nil
	return ops
}
