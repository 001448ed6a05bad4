package widget

import (
	"sort"

	"github.com/weftui/weft/core"
	"github.com/weftui/weft/ecs"
	"github.com/weftui/weft/tree"
)

// Registry owns the state machines attached to widget entities and
// tracks which of them have run OnInit
//
// Thread-Safety: the registry is confined to the frame loop goroutine,
// like the tree and property store it operates alongside
type Registry struct {
	states   *ecs.Store[State]
	initDone *ecs.Store[struct{}]
	pending  []core.Entity
}

// NewRegistry creates a registry whose stores participate in world
// entity destruction
func NewRegistry(world *ecs.World) *Registry {
	r := &Registry{
		states:   ecs.NewStore[State](),
		initDone: ecs.NewStore[struct{}](),
	}
	world.RegisterStore(r.states)
	world.RegisterStore(r.initDone)
	return r
}

// Attach binds a state machine to an entity and schedules its OnInit
// for the next commit. An entity owns at most one state machine;
// attaching a second panics
func (r *Registry) Attach(e core.Entity, st State) {
	if st == nil {
		panic("widget: attach of nil state")
	}
	if r.states.Has(e) {
		panic("widget: entity already has a state machine")
	}
	r.states.Add(e, st)
	r.pending = append(r.pending, e)
}

// Has reports whether an entity carries a state machine
func (r *Registry) Has(e core.Entity) bool {
	return r.states.Has(e)
}

// StateOf returns the entity's state machine, if any
func (r *Registry) StateOf(e core.Entity) (State, bool) {
	return r.states.Get(e)
}

// Count returns the number of attached state machines
func (r *Registry) Count() int {
	return r.states.Count()
}

// RunPendingInits runs OnInit for states attached since the last call,
// in attach order, and returns the entities that were initialized.
// Entities that were destroyed before their init, or never made it
// into the tree, are skipped. Panics are contained and reported
// through onErr
func (r *Registry) RunPendingInits(tr *tree.Tree, makeCtx func(core.Entity) *Context, onErr func(*UpdateError)) []core.Entity {
	pending := r.pending
	r.pending = nil
	var inited []core.Entity
	for _, e := range pending {
		st, ok := r.states.Get(e)
		if !ok || !tr.Contains(e) {
			continue
		}
		r.initDone.Add(e, struct{}{})
		inited = append(inited, e)
		ctx := makeCtx(e)
		r.invoke(e, "init", func() { st.OnInit(ctx) }, onErr)
	}
	return inited
}

// RunDirtyUpdates runs OnUpdate for the given update-dirty entities,
// parents before children, and returns how many states actually ran.
// Entities without a state machine, or removed from the tree earlier
// in the frame, are skipped. A panicking callback is reported through
// onErr and does not disturb the rest of the pass
func (r *Registry) RunDirtyUpdates(dirty []core.Entity, tr *tree.Tree, makeCtx func(core.Entity) *Context, onErr func(*UpdateError)) int {
	ordered := make([]core.Entity, len(dirty))
	copy(ordered, dirty)
	sort.SliceStable(ordered, func(i, j int) bool {
		return tr.Depth(ordered[i]) < tr.Depth(ordered[j])
	})
	ran := 0
	for _, e := range ordered {
		if !tr.Contains(e) {
			continue
		}
		st, ok := r.states.Get(e)
		if !ok || !r.initDone.Has(e) {
			continue
		}
		ctx := makeCtx(e)
		r.invoke(e, "update", func() { st.OnUpdate(ctx) }, onErr)
		ran++
	}
	return ran
}

// RunCleanup runs OnCleanup for the given entities in the order
// provided, which removal produces post-order so children clean up
// before their parents. States that never ran OnInit are dropped
// without a callback
func (r *Registry) RunCleanup(removed []core.Entity, makeCtx func(core.Entity) *Context, onErr func(*UpdateError)) {
	for _, e := range removed {
		st, ok := r.states.Get(e)
		if !ok || !r.initDone.Has(e) {
			continue
		}
		ctx := makeCtx(e)
		r.invoke(e, "cleanup", func() { st.OnCleanup(ctx) }, onErr)
	}
}

func (r *Registry) invoke(e core.Entity, stage string, fn func(), onErr func(*UpdateError)) {
	defer func() {
		if rec := recover(); rec != nil && onErr != nil {
			onErr(&UpdateError{Entity: e, Stage: stage, Cause: rec})
		}
	}()
	fn()
}
