package app

import (
	"time"

	"github.com/weftui/weft/core"
	"github.com/weftui/weft/event"
	"github.com/weftui/weft/property"
	"github.com/weftui/weft/widget"
)

// FrameStats summarizes one frame for the caller: what was processed
// and whether a paint is due
type FrameStats struct {
	Frame       int64
	Events      int
	Dropped     int
	Updates     int
	Mutations   int
	Errors      int
	NeedsRender bool
	Elapsed     time.Duration
}

// RunFrame advances the application one frame: collect queued events,
// dispatch them, run dirty widget updates, commit deferred structural
// mutations, then fold dirty flags into layout and paint damage.
// Failures inside widget callbacks are contained per entity; the
// frame always completes
func (a *Application) RunFrame(delta time.Duration) FrameStats {
	start := time.Now()
	a.frame++
	a.tick = event.TickInfo{Delta: delta, Frame: a.frame}
	stats := FrameStats{Frame: a.frame}

	a.world.RunSafe(func() {
		events := a.collectEvents(&stats)
		a.dispatchEvents(events)
		a.runUpdates(&stats)
		a.applyMutations(&stats)
		a.propagateDirty()
		a.runLayout()
	})

	stats.NeedsRender = a.fullRepaint || len(a.damage) > 0
	stats.Elapsed = time.Since(start)

	a.mFrames.Add(1)
	a.mEvents.Add(int64(stats.Events))
	a.mUpdates.Add(int64(stats.Updates))
	a.mMutations.Add(int64(stats.Mutations))
	a.mWidgets.Store(int64(a.tree.Len()))
	a.mMillis.Set(float64(stats.Elapsed.Microseconds()) / 1000.0)

	return stats
}

// collectEvents drains the intake for this frame and stamps each
// event. Overflow since the last frame is logged once and counted
func (a *Application) collectEvents(stats *FrameStats) []event.Event {
	events := a.queue.Drain()
	for i := range events {
		events[i].Frame = a.frame
	}
	if dropped := a.queue.TakeDropped(); dropped > 0 {
		stats.Dropped = int(dropped)
		a.mDropped.Add(int64(dropped))
		a.logger.Printf("event queue overflow: %d events dropped", dropped)
	}
	stats.Events = len(events)
	return events
}

func (a *Application) dispatchEvents(events []event.Event) {
	for i := range events {
		a.dispatch.Dispatch(&events[i])
	}
}

// runUpdates drains the update-dirty set and runs OnUpdate for each
// entity that has an initialized state, parents first
func (a *Application) runUpdates(stats *FrameStats) {
	dirty := a.store.DrainDirty(property.DirtyUpdate)
	if len(dirty) == 0 {
		return
	}
	stats.Updates = a.registry.RunDirtyUpdates(dirty, a.tree, a.makeCtx, a.reportError(stats))
}

// applyMutations commits the structural requests buffered during the
// frame, in request order, then initializes anything newly mounted.
// Inserts under parents that were removed earlier in the commit are
// dropped with a log line; removals of already removed entities are
// no-ops
func (a *Application) applyMutations(stats *FrameStats) {
	ops := a.mutations.Drain()
	stats.Mutations = len(ops)

	for _, op := range ops {
		switch op.Kind {
		case widget.MutationInsert:
			if !a.tree.Contains(op.Parent) {
				a.logger.Printf("insert dropped: unknown parent %d", op.Parent)
				continue
			}
			built := a.builder.Instantiate(op.Widget)
			if err := a.builder.Mount(built, op.Parent, op.Index); err != nil {
				a.logger.Printf("insert under %d failed: %v", op.Parent, err)
				a.builder.Discard(built)
				continue
			}
			a.styleSubtree(built)
			a.needsLayout = true
		case widget.MutationRemove:
			if !a.tree.Contains(op.Target) {
				continue
			}
			a.removeSubtree(op.Target, stats)
		}
	}

	inited := a.registry.RunPendingInits(a.tree, a.makeCtx, a.reportError(stats))
	for _, e := range inited {
		a.store.MarkDirty(e, property.DirtyUpdate)
	}
}

// removeSubtree detaches a subtree, runs cleanups child-first, then
// destroys the entities and every trace of them
func (a *Application) removeSubtree(target core.Entity, stats *FrameStats) {
	parent, hasParent := a.tree.Parent(target)

	removed, err := a.tree.Remove(target)
	if err != nil {
		a.logger.Printf("remove of %d failed: %v", target, err)
		return
	}
	a.registry.RunCleanup(removed, a.makeCtx, a.reportError(stats))

	for _, e := range removed {
		delete(a.damage, e)
		if e == a.focus {
			a.focus = core.NoEntity
		}
	}
	a.store.ForgetDirty(removed)
	a.world.DestroyBatch(removed)

	// The siblings shift and the vacated cells need repainting
	a.needsLayout = true
	if hasParent && a.tree.Contains(parent) {
		a.damageSubtree(parent)
	} else {
		a.fullRepaint = true
	}
}

// propagateDirty folds the frame's dirty marks into the layout flag
// and the paint damage set. Render damage spreads to whole subtrees,
// since repainting a widget repaints over its children
func (a *Application) propagateDirty() {
	if len(a.store.DrainDirty(property.DirtyLayout)) > 0 {
		a.needsLayout = true
	}
	for _, e := range a.store.DrainDirty(property.DirtyRender) {
		a.damageSubtree(e)
	}
}

// runLayout arranges the tree when something invalidated layout, then
// folds the resulting bounds changes into paint damage
func (a *Application) runLayout() {
	if !a.needsLayout || a.viewport.IsEmpty() || a.tree.Root() == core.NoEntity {
		return
	}
	a.layouter.Layout(a.viewport)
	a.needsLayout = false
	for _, e := range a.store.DrainDirty(property.DirtyRender) {
		a.damageSubtree(e)
	}
}

func (a *Application) damageSubtree(e core.Entity) {
	if !a.tree.Contains(e) {
		return
	}
	w := a.tree.PreOrder(e)
	for n, ok := w.Next(); ok; n, ok = w.Next() {
		a.damage[n] = true
	}
}

// reportError wraps the error hook so frame stats and metrics count
// every contained failure
func (a *Application) reportError(stats *FrameStats) func(*widget.UpdateError) {
	return func(err *widget.UpdateError) {
		stats.Errors++
		a.mErrors.Add(1)
		a.onUpdateError(err)
	}
}
