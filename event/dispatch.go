package event

import (
	"github.com/weftui/weft/core"
	"github.com/weftui/weft/tree"
)

// TargetResolver resolves an untargeted event to the widget under it
// The layout/render collaborator implements this over current bounds;
// the dispatcher only consumes the resolved entity
type TargetResolver interface {
	Resolve(ev *Event) (core.Entity, bool)
}

// Result reports how one event's dispatch ended. Capture and bubble
// consumption are tracked independently
type Result struct {
	Delivered      bool
	CaptureHandled bool
	BubbleHandled  bool
}

// Handled reports whether either phase consumed the event
func (r Result) Handled() bool {
	return r.CaptureHandled || r.BubbleHandled
}

// Dispatcher delivers events along the tree path to their target:
// capture visits strict ancestors root-first, then bubble visits the
// target and walks back to the root
//
// Thread-Safety: single-threaded, runs inside the frame's dispatch
// phase while the tree is structurally stable
type Dispatcher struct {
	tree     *tree.Tree
	handlers *HandlerMap
	resolver TargetResolver
}

// NewDispatcher creates a dispatcher over the given tree and handlers
func NewDispatcher(t *tree.Tree, handlers *HandlerMap) *Dispatcher {
	return &Dispatcher{tree: t, handlers: handlers}
}

// SetResolver wires the hit-testing collaborator used for untargeted
// events. Without one, untargeted events are dropped as no-ops
func (d *Dispatcher) SetResolver(r TargetResolver) {
	d.resolver = r
}

// Dispatch delivers one event and reports the outcome. An
// unresolvable target, or a target removed earlier in the frame, is a
// no-op rather than a fault: the entity may legitimately be gone by
// the time its event surfaces
func (d *Dispatcher) Dispatch(ev *Event) Result {
	target := ev.Target
	if target == core.NoEntity {
		if d.resolver == nil {
			return Result{}
		}
		resolved, ok := d.resolver.Resolve(ev)
		if !ok {
			return Result{}
		}
		target = resolved
	}
	if !d.tree.Contains(target) {
		return Result{}
	}

	res := Result{Delivered: true}
	ancestors := d.tree.Ancestors(target)

	// Capture: root toward the target's parent. Consumption stops
	// further capture delivery but never suppresses the bubble phase
	for i := len(ancestors) - 1; i >= 0; i-- {
		if d.handlers.run(ancestors[i], ev, PhaseCapture) {
			res.CaptureHandled = true
			break
		}
	}

	// Bubble: target first, then each ancestor toward the root,
	// stopping at the first consumer
	if d.handlers.run(target, ev, PhaseBubble) {
		res.BubbleHandled = true
		return res
	}
	for _, anc := range ancestors {
		if d.handlers.run(anc, ev, PhaseBubble) {
			res.BubbleHandled = true
			break
		}
	}
	return res
}
