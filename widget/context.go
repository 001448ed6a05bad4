package widget

import (
	"github.com/weftui/weft/core"
	"github.com/weftui/weft/event"
	"github.com/weftui/weft/property"
	"github.com/weftui/weft/tree"
)

// ContextParams carries the frame-scoped collaborators a Context is
// built from
type ContextParams struct {
	Entity    core.Entity
	Store     *property.Store
	Tree      *tree.Tree
	Queue     *event.Queue
	Handlers  *event.HandlerMap
	Mutations *MutationQueue
	Tick      event.TickInfo
}

// Context is the scoped capability object handed to state machine
// callbacks. It exposes the owning entity's properties, read-only tree
// inspection, event emission and deferred structural mutation
//
// A Context is valid only for the duration of the callback it was
// created for; callbacks must not retain it
type Context struct {
	entity    core.Entity
	store     *property.Store
	tree      *tree.Tree
	queue     *event.Queue
	handlers  *event.HandlerMap
	mutations *MutationQueue
	tick      event.TickInfo
}

// NewContext builds a callback context for one entity
func NewContext(p ContextParams) *Context {
	return &Context{
		entity:    p.Entity,
		store:     p.Store,
		tree:      p.Tree,
		queue:     p.Queue,
		handlers:  p.Handlers,
		mutations: p.Mutations,
		tick:      p.Tick,
	}
}

// Entity returns the entity the callback runs for
func (c *Context) Entity() core.Entity { return c.entity }

// Frame returns the running frame's sequence number
func (c *Context) Frame() int64 { return c.tick.Frame }

// Tick returns the frame clock: elapsed time since the previous frame
// and the frame sequence number
func (c *Context) Tick() event.TickInfo { return c.tick }

// Store exposes the property store for use with the generic
// property.Get and property.Set helpers
func (c *Context) Store() *property.Store { return c.store }

// Handlers exposes the handler map so states can wire event handlers
// outside the build pass
func (c *Context) Handlers() *event.HandlerMap { return c.handlers }

// Queue exposes the event queue. Handler closures may capture it; the
// Context itself must not outlive the callback
func (c *Context) Queue() *event.Queue { return c.queue }

// Parent returns the entity's parent, or false at the root
func (c *Context) Parent() (core.Entity, bool) { return c.tree.Parent(c.entity) }

// Children returns the entity's children in sibling order
func (c *Context) Children() []core.Entity { return c.tree.Children(c.entity) }

// ChildrenOf returns another entity's children in sibling order
func (c *Context) ChildrenOf(e core.Entity) []core.Entity { return c.tree.Children(e) }

// Root returns the tree root
func (c *Context) Root() core.Entity { return c.tree.Root() }

// InTree reports whether an entity is currently attached
func (c *Context) InTree(e core.Entity) bool { return c.tree.Contains(e) }

// Emit queues an event for the next frame's intake. Reports false when
// the queue is full and the event was dropped
func (c *Context) Emit(t event.Type, target core.Entity, payload any) bool {
	return c.queue.Push(event.Event{Type: t, Target: target, Payload: payload, Frame: c.tick.Frame})
}

// EmitSelf queues an event targeting the owning entity
func (c *Context) EmitSelf(t event.Type, payload any) bool {
	return c.Emit(t, c.entity, payload)
}

// RequestInsert defers insertion of a new widget subtree under parent
// at the given child index. Out-of-range indices append. The subtree
// is built and mounted during the frame's commit phase; if the parent
// has been removed by then the request is dropped
func (c *Context) RequestInsert(parent core.Entity, w Widget, index int) {
	c.mutations.PushInsert(parent, w, index)
}

// RequestAppend defers insertion at the end of parent's children
func (c *Context) RequestAppend(parent core.Entity, w Widget) {
	c.mutations.PushInsert(parent, w, -1)
}

// RequestRemove defers removal of an entity and its subtree. Removing
// an already removed entity is a no-op
func (c *Context) RequestRemove(e core.Entity) {
	c.mutations.PushRemove(e)
}

// RequestUpdate marks the owning entity update-dirty so OnUpdate runs
// again next frame
func (c *Context) RequestUpdate() {
	c.store.MarkDirty(c.entity, property.DirtyUpdate)
}

// Get reads a property of the context's entity
func Get[T any](c *Context, key property.Key[T]) (T, error) {
	return property.Get(c.store, c.entity, key)
}

// GetOr reads a property of the context's entity, falling back when
// unset or unresolvable
func GetOr[T any](c *Context, key property.Key[T], fallback T) T {
	return property.GetOr(c.store, c.entity, key, fallback)
}

// Set writes a property of the context's entity
func Set[T any](c *Context, key property.Key[T], value T) {
	property.Set(c.store, c.entity, key, value)
}

// GetOf reads a property of another entity
func GetOf[T any](c *Context, e core.Entity, key property.Key[T]) (T, error) {
	return property.Get(c.store, e, key)
}

// SetOf writes a property of another entity
func SetOf[T any](c *Context, e core.Entity, key property.Key[T], value T) {
	property.Set(c.store, e, key, value)
}
