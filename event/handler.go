package event

import (
	"github.com/weftui/weft/core"
	"github.com/weftui/weft/ecs"
)

// Phase names the delivery pass visiting an entity
type Phase uint8

const (
	// PhaseCapture travels root toward the target's parent
	PhaseCapture Phase = iota
	// PhaseBubble travels target toward the root
	PhaseBubble
)

// String returns the phase name for diagnostics
func (p Phase) String() string {
	if p == PhaseCapture {
		return "capture"
	}
	return "bubble"
}

// HandlerFunc processes one delivery of an event to one entity
// Called synchronously during the dispatch phase
type HandlerFunc func(d *Delivery)

// Delivery carries one event's visit to one entity
type Delivery struct {
	Event  *Event
	Entity core.Entity
	Phase  Phase

	handled bool
}

// MarkHandled consumes the event for the current phase. Capture
// consumption stops further capture delivery; bubble consumption stops
// the bubble walk. The two flags are independent across phases
func (d *Delivery) MarkHandled() {
	d.handled = true
}

type registration struct {
	fn      HandlerFunc
	capture bool
}

type handlerSet struct {
	byType map[Type][]registration
}

// HandlerMap stores per-entity event handlers. It is backed by a
// component store so destroying an entity drops its handlers along
// with the rest of its data
//
// Handlers registered with On run during bubble; capture delivery is
// opt-in through OnCapture. Multiple handlers on one (entity, type)
// run in registration order
type HandlerMap struct {
	store *ecs.Store[*handlerSet]
}

// NewHandlerMap creates a handler map registered with the world for
// lifecycle cleanup. A nil world is allowed for standalone use
func NewHandlerMap(world *ecs.World) *HandlerMap {
	m := &HandlerMap{store: ecs.NewStore[*handlerSet]()}
	if world != nil {
		world.RegisterStore(m.store)
	}
	return m
}

// On registers a bubble-phase handler for (entity, type)
func (m *HandlerMap) On(e core.Entity, t Type, fn HandlerFunc) {
	m.add(e, t, fn, false)
}

// OnCapture registers a capture-phase handler for (entity, type)
func (m *HandlerMap) OnCapture(e core.Entity, t Type, fn HandlerFunc) {
	m.add(e, t, fn, true)
}

func (m *HandlerMap) add(e core.Entity, t Type, fn HandlerFunc, capture bool) {
	if fn == nil {
		panic("event: nil handler registered")
	}
	set, ok := m.store.Get(e)
	if !ok {
		set = &handlerSet{byType: make(map[Type][]registration, 4)}
		m.store.Add(e, set)
	}
	set.byType[t] = append(set.byType[t], registration{fn: fn, capture: capture})
}

// Off removes every handler for (entity, type) in both phases
func (m *HandlerMap) Off(e core.Entity, t Type) {
	if set, ok := m.store.Get(e); ok {
		delete(set.byType, t)
	}
}

// RemoveEntity drops all handlers attached to the entity
func (m *HandlerMap) RemoveEntity(e core.Entity) {
	m.store.Remove(e)
}

// HandlerCount returns the number of handlers registered for
// (entity, type) across both phases
func (m *HandlerMap) HandlerCount(e core.Entity, t Type) int {
	set, ok := m.store.Get(e)
	if !ok {
		return 0
	}
	return len(set.byType[t])
}

// run delivers the event to the entity's handlers for one phase and
// reports whether any of them consumed it. All of the entity's
// handlers for the phase run even after consumption; the walk stops
// at entity granularity, not mid-list
func (m *HandlerMap) run(e core.Entity, ev *Event, phase Phase) bool {
	set, ok := m.store.Get(e)
	if !ok {
		return false
	}
	regs := set.byType[ev.Type]
	if len(regs) == 0 {
		return false
	}

	d := &Delivery{Event: ev, Entity: e, Phase: phase}
	wantCapture := phase == PhaseCapture
	for _, r := range regs {
		if r.capture != wantCapture {
			continue
		}
		r.fn(d)
	}
	return d.handled
}
