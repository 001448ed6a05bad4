package widget

import (
	"fmt"

	"github.com/weftui/weft/core"
)

// State is the behavior contract of a widget entity: three capability
// points covering its whole lifecycle. A widget owns at most one state
// machine; its lifetime is bounded by the entity's
//
// Callbacks receive a scoped Context valid only for the call. They may
// read and write properties and request structural mutations, which
// are deferred to the frame's commit phase
type State interface {
	// OnInit runs once after the entity's insertion commits
	OnInit(ctx *Context)

	// OnUpdate runs once per frame while the entity is update-dirty
	OnUpdate(ctx *Context)

	// OnCleanup runs once, synchronously, before removal completes
	// No callback fires for the entity afterwards
	OnCleanup(ctx *Context)
}

// StateBase provides no-op defaults so widget states implement only
// the callbacks they need
type StateBase struct{}

func (StateBase) OnInit(*Context)    {}
func (StateBase) OnUpdate(*Context)  {}
func (StateBase) OnCleanup(*Context) {}

// UpdateError reports a state machine callback failure. The failure is
// isolated to the offending entity; the frame continues with the
// remaining entities
type UpdateError struct {
	Entity core.Entity
	Stage  string // init, update or cleanup
	Cause  any    // recovered panic value
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("widget %d: %s failed: %v", e.Entity, e.Stage, e.Cause)
}
