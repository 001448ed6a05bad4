package widget

import (
	"github.com/weftui/weft/core"
	"github.com/weftui/weft/ecs"
	"github.com/weftui/weft/event"
	"github.com/weftui/weft/property"
	"github.com/weftui/weft/tree"
)

// Widget is a declarative description of a widget subtree. Build
// creates the entity, sets its properties, wires handlers and builds
// children, returning the subtree root
//
// Entities produced by Build are staged, not yet part of the tree;
// they attach when the subtree is mounted
type Widget interface {
	Build(bc *BuildContext) core.Entity
}

// BuildFunc adapts a function to the Widget interface
type BuildFunc func(bc *BuildContext) core.Entity

func (f BuildFunc) Build(bc *BuildContext) core.Entity { return f(bc) }

// BuildContext creates widget entities and assembles them into
// subtrees. Child edges recorded during a build are staged and applied
// top-down when the finished subtree mounts, so builds never touch the
// live tree
type BuildContext struct {
	world    *ecs.World
	store    *property.Store
	tree     *tree.Tree
	handlers *event.HandlerMap
	queue    *event.Queue
	registry *Registry

	staged map[core.Entity][]core.Entity
}

// NewBuildContext wires a build context to the world it creates
// entities in
func NewBuildContext(world *ecs.World, store *property.Store, tr *tree.Tree, handlers *event.HandlerMap, queue *event.Queue, registry *Registry) *BuildContext {
	return &BuildContext{
		world:    world,
		store:    store,
		tree:     tr,
		handlers: handlers,
		queue:    queue,
		registry: registry,
		staged:   make(map[core.Entity][]core.Entity),
	}
}

// CreateEntity allocates a fresh entity. It joins the tree only when
// the subtree it belongs to is mounted
func (bc *BuildContext) CreateEntity() core.Entity {
	return bc.world.CreateEntity()
}

// Store exposes the property store for use with the generic
// property.Set helper during builds
func (bc *BuildContext) Store() *property.Store { return bc.store }

// Handlers exposes the handler map so builds can wire event handlers
func (bc *BuildContext) Handlers() *event.HandlerMap { return bc.handlers }

// Queue exposes the event queue for handler closures that emit events
func (bc *BuildContext) Queue() *event.Queue { return bc.queue }

// AttachState binds a state machine to an entity. OnInit runs after
// the entity's mount commits
func (bc *BuildContext) AttachState(e core.Entity, st State) {
	bc.registry.Attach(e, st)
}

// AddChild stages child under parent, after previously staged
// siblings. Both entities must come from this build context and must
// not be mounted yet
func (bc *BuildContext) AddChild(parent, child core.Entity) {
	bc.staged[parent] = append(bc.staged[parent], child)
}

// Instantiate builds a widget description into a staged subtree
func (bc *BuildContext) Instantiate(w Widget) core.Entity {
	return w.Build(bc)
}

// Mount inserts a built subtree under a live parent at the given child
// index, then attaches the staged edges top-down. On error the subtree
// remains staged; callers should Discard it
func (bc *BuildContext) Mount(built core.Entity, parent core.Entity, index int) error {
	if err := bc.tree.Insert(parent, built, index); err != nil {
		return err
	}
	bc.attachStaged(built)
	return nil
}

// MountRoot makes a built subtree the tree root and attaches its
// staged edges. Panics if a root is already set
func (bc *BuildContext) MountRoot(built core.Entity) {
	bc.tree.SetRoot(built)
	bc.attachStaged(built)
}

func (bc *BuildContext) attachStaged(e core.Entity) {
	children := bc.staged[e]
	delete(bc.staged, e)
	for _, c := range children {
		// Parent is live by now, so plain appends cannot fail
		if err := bc.tree.Insert(e, c, -1); err != nil {
			panic(err)
		}
		bc.attachStaged(c)
	}
}

// Discard destroys a staged subtree that will not be mounted, freeing
// its entities and their components
func (bc *BuildContext) Discard(built core.Entity) {
	doomed := bc.collectStaged(built, nil)
	bc.world.DestroyBatch(doomed)
}

func (bc *BuildContext) collectStaged(e core.Entity, acc []core.Entity) []core.Entity {
	acc = append(acc, e)
	children := bc.staged[e]
	delete(bc.staged, e)
	for _, c := range children {
		acc = bc.collectStaged(c, acc)
	}
	return acc
}
