package widget

import (
	"strings"
	"testing"

	"github.com/weftui/weft/core"
	"github.com/weftui/weft/ecs"
	"github.com/weftui/weft/event"
	"github.com/weftui/weft/property"
	"github.com/weftui/weft/tree"
)

type rig struct {
	world     *ecs.World
	store     *property.Store
	tree      *tree.Tree
	handlers  *event.HandlerMap
	queue     *event.Queue
	mutations *MutationQueue
	registry  *Registry
	bc        *BuildContext
	errs      []*UpdateError
}

func newRig() *rig {
	r := &rig{}
	r.world = ecs.NewWorld()
	r.store = property.NewStore(r.world)
	r.tree = tree.New()
	r.handlers = event.NewHandlerMap(r.world)
	r.queue = event.NewQueue(16)
	r.mutations = NewMutationQueue()
	r.registry = NewRegistry(r.world)
	r.bc = NewBuildContext(r.world, r.store, r.tree, r.handlers, r.queue, r.registry)
	return r
}

func (r *rig) makeCtx(e core.Entity) *Context {
	return NewContext(ContextParams{
		Entity:    e,
		Store:     r.store,
		Tree:      r.tree,
		Queue:     r.queue,
		Handlers:  r.handlers,
		Mutations: r.mutations,
		Tick:      event.TickInfo{Frame: 7},
	})
}

func (r *rig) onErr(err *UpdateError) {
	r.errs = append(r.errs, err)
}

type recState struct {
	name       string
	log        *[]string
	failUpdate bool
}

func (s *recState) OnInit(*Context)    { *s.log = append(*s.log, s.name+":init") }
func (s *recState) OnCleanup(*Context) { *s.log = append(*s.log, s.name+":cleanup") }
func (s *recState) OnUpdate(*Context) {
	if s.failUpdate {
		panic("update exploded")
	}
	*s.log = append(*s.log, s.name+":update")
}

func TestLifecycleOrder(t *testing.T) {
	r := newRig()
	var log []string

	e := r.world.CreateEntity()
	r.tree.SetRoot(e)
	r.registry.Attach(e, &recState{name: "w", log: &log})

	r.registry.RunPendingInits(r.tree, r.makeCtx, r.onErr)
	r.registry.RunDirtyUpdates([]core.Entity{e}, r.tree, r.makeCtx, r.onErr)

	removed, err := r.tree.Remove(e)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	r.registry.RunCleanup(removed, r.makeCtx, r.onErr)
	r.world.DestroyBatch(removed)

	want := []string{"w:init", "w:update", "w:cleanup"}
	if strings.Join(log, ",") != strings.Join(want, ",") {
		t.Errorf("Expected lifecycle %v, got %v", want, log)
	}

	// Nothing may fire for the entity after cleanup
	r.registry.RunDirtyUpdates([]core.Entity{e}, r.tree, r.makeCtx, r.onErr)
	if len(log) != 3 {
		t.Errorf("Expected no callbacks after cleanup, got %v", log)
	}
	if len(r.errs) != 0 {
		t.Errorf("Expected no errors, got %v", r.errs)
	}
}

func TestUpdatePanicIsolated(t *testing.T) {
	r := newRig()
	var log []string

	root := r.world.CreateEntity()
	r.tree.SetRoot(root)
	bad := r.world.CreateEntity()
	good := r.world.CreateEntity()
	r.tree.Insert(root, bad, -1)
	r.tree.Insert(root, good, -1)

	r.registry.Attach(bad, &recState{name: "bad", log: &log, failUpdate: true})
	r.registry.Attach(good, &recState{name: "good", log: &log})
	r.registry.RunPendingInits(r.tree, r.makeCtx, r.onErr)
	log = nil

	r.registry.RunDirtyUpdates([]core.Entity{bad, good}, r.tree, r.makeCtx, r.onErr)

	if len(r.errs) != 1 {
		t.Fatalf("Expected 1 update error, got %d", len(r.errs))
	}
	if r.errs[0].Entity != bad || r.errs[0].Stage != "update" {
		t.Errorf("Expected error for entity %d stage update, got %+v", bad, r.errs[0])
	}
	if strings.Join(log, ",") != "good:update" {
		t.Errorf("Expected surviving widget to update, got %v", log)
	}
}

func TestDirtyUpdatesRunParentsFirst(t *testing.T) {
	r := newRig()
	var log []string

	parent := r.world.CreateEntity()
	r.tree.SetRoot(parent)
	child := r.world.CreateEntity()
	r.tree.Insert(parent, child, -1)

	r.registry.Attach(parent, &recState{name: "parent", log: &log})
	r.registry.Attach(child, &recState{name: "child", log: &log})
	r.registry.RunPendingInits(r.tree, r.makeCtx, r.onErr)
	log = nil

	// Dirty order lists the child first; depth ordering must win
	r.registry.RunDirtyUpdates([]core.Entity{child, parent}, r.tree, r.makeCtx, r.onErr)

	want := "parent:update,child:update"
	if strings.Join(log, ",") != want {
		t.Errorf("Expected %q, got %q", want, strings.Join(log, ","))
	}
}

func TestCleanupSkipsUninitialized(t *testing.T) {
	r := newRig()
	var log []string

	e := r.world.CreateEntity()
	r.tree.SetRoot(e)
	r.registry.Attach(e, &recState{name: "w", log: &log})

	// Removed before its init ever ran
	removed, err := r.tree.Remove(e)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	r.registry.RunCleanup(removed, r.makeCtx, r.onErr)

	if len(log) != 0 {
		t.Errorf("Expected no cleanup for uninitialized state, got %v", log)
	}
}

func TestAttachGuards(t *testing.T) {
	r := newRig()
	e := r.world.CreateEntity()
	r.registry.Attach(e, &recState{name: "w", log: new([]string)})

	assertPanics(t, "second attach", func() {
		r.registry.Attach(e, &recState{name: "dup", log: new([]string)})
	})
	assertPanics(t, "nil state", func() {
		r.registry.Attach(r.world.CreateEntity(), nil)
	})
}

func TestBuildMountAssemblesSubtree(t *testing.T) {
	r := newRig()
	root := r.world.CreateEntity()
	r.tree.SetRoot(root)

	var panel, first, second core.Entity
	w := BuildFunc(func(bc *BuildContext) core.Entity {
		panel = bc.CreateEntity()
		property.Set(bc.Store(), panel, KeyText, "panel")
		first = bc.CreateEntity()
		second = bc.CreateEntity()
		bc.AddChild(panel, first)
		bc.AddChild(panel, second)
		return panel
	})

	built := r.bc.Instantiate(w)
	if r.tree.Contains(built) {
		t.Errorf("Expected staged subtree to stay out of the tree until mounted")
	}

	if err := r.bc.Mount(built, root, -1); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	if p, _ := r.tree.Parent(built); p != root {
		t.Errorf("Expected mounted subtree under root, got parent %d", p)
	}
	children := r.tree.Children(panel)
	if len(children) != 2 || children[0] != first || children[1] != second {
		t.Errorf("Expected children [%d %d], got %v", first, second, children)
	}
	if got := property.GetOr(r.store, panel, KeyText, ""); got != "panel" {
		t.Errorf("Expected property set during build, got %q", got)
	}
}

func TestDiscardDestroysStagedSubtree(t *testing.T) {
	r := newRig()
	var log []string
	var panel, child core.Entity
	w := BuildFunc(func(bc *BuildContext) core.Entity {
		panel = bc.CreateEntity()
		child = bc.CreateEntity()
		property.Set(bc.Store(), child, KeyText, "orphan")
		bc.AddChild(panel, child)
		bc.AttachState(panel, &recState{name: "panel", log: &log})
		return panel
	})

	built := r.bc.Instantiate(w)
	r.bc.Discard(built)

	if property.Has(r.store, child, KeyText) {
		t.Errorf("Expected discarded entity's properties to be destroyed")
	}
	if r.registry.Has(panel) {
		t.Errorf("Expected discarded entity's state machine to be dropped")
	}

	// Its init must never fire
	r.registry.RunPendingInits(r.tree, r.makeCtx, func(err *UpdateError) {
		t.Errorf("Unexpected error: %v", err)
	})
	if len(log) != 0 {
		t.Errorf("Expected no init for discarded subtree, got %v", log)
	}
}

func TestContextDefersStructuralMutations(t *testing.T) {
	r := newRig()
	root := r.world.CreateEntity()
	r.tree.SetRoot(root)
	doomed := r.world.CreateEntity()
	r.tree.Insert(root, doomed, -1)

	ctx := r.makeCtx(root)
	ctx.RequestAppend(root, BuildFunc(func(bc *BuildContext) core.Entity {
		return bc.CreateEntity()
	}))
	ctx.RequestRemove(doomed)

	// Nothing structural happens until the commit phase applies the queue
	if r.tree.Len() != 2 {
		t.Errorf("Expected tree untouched, got %d entities", r.tree.Len())
	}

	ops := r.mutations.Drain()
	if len(ops) != 2 {
		t.Fatalf("Expected 2 buffered mutations, got %d", len(ops))
	}
	if ops[0].Kind != MutationInsert || ops[0].Parent != root {
		t.Errorf("Expected first op insert under %d, got %+v", root, ops[0])
	}
	if ops[1].Kind != MutationRemove || ops[1].Target != doomed {
		t.Errorf("Expected second op remove of %d, got %+v", doomed, ops[1])
	}
	if r.mutations.Len() != 0 {
		t.Errorf("Expected queue empty after drain, got %d", r.mutations.Len())
	}
}

func TestContextEmitQueuesForNextIntake(t *testing.T) {
	r := newRig()
	e := r.world.CreateEntity()
	r.tree.SetRoot(e)

	ctx := r.makeCtx(e)
	if !ctx.EmitSelf(event.TypeActivated, nil) {
		t.Fatalf("Expected emit to be accepted")
	}

	events := r.queue.Drain()
	if len(events) != 1 {
		t.Fatalf("Expected 1 queued event, got %d", len(events))
	}
	if events[0].Type != event.TypeActivated || events[0].Target != e || events[0].Frame != 7 {
		t.Errorf("Expected activated event for %d at frame 7, got %+v", e, events[0])
	}
}

func TestContextPropertyAccess(t *testing.T) {
	r := newRig()
	e := r.world.CreateEntity()
	r.tree.SetRoot(e)
	ctx := r.makeCtx(e)

	Set(ctx, KeyText, "hello")
	got, err := Get(ctx, KeyText)
	if err != nil || got != "hello" {
		t.Errorf("Expected hello, got %q (err %v)", got, err)
	}
	if got := GetOr(ctx, KeySpacing, 2); got != 2 {
		t.Errorf("Expected fallback 2, got %d", got)
	}

	ctx.RequestUpdate()
	dirty := r.store.Dirty(property.DirtyUpdate)
	if len(dirty) != 1 || dirty[0] != e {
		t.Errorf("Expected %d update-dirty, got %v", e, dirty)
	}
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic for %s", name)
		}
	}()
	fn()
}
