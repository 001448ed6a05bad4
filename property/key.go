package property

import (
	"strings"
	"sync"

	"github.com/weftui/weft/ecs"
)

// Categories is a bitmask of dirty-flag categories a key invalidates
type Categories uint8

const (
	// DirtyUpdate schedules the owning widget's state machine
	DirtyUpdate Categories = 1 << iota
	// DirtyLayout schedules bounds recomputation
	DirtyLayout
	// DirtyRender schedules redraw
	DirtyRender
)

const categoryCount = 3

// DirtyAll covers every category
const DirtyAll = DirtyUpdate | DirtyLayout | DirtyRender

// Contains returns true if any bit of other is set in c
func (c Categories) Contains(other Categories) bool {
	return c&other != 0
}

// String returns a pipe-joined category list for diagnostics
func (c Categories) String() string {
	if c == 0 {
		return "none"
	}
	parts := make([]string, 0, categoryCount)
	if c.Contains(DirtyUpdate) {
		parts = append(parts, "update")
	}
	if c.Contains(DirtyLayout) {
		parts = append(parts, "layout")
	}
	if c.Contains(DirtyRender) {
		parts = append(parts, "render")
	}
	return strings.Join(parts, "|")
}

// KeyID is the registry-assigned identity of a property key
type KeyID uint32

// Key identifies a typed property slot on entities. Keys are declared
// once at package init; identity is the registered ID, never the name
type Key[T any] struct {
	id    KeyID
	name  string
	dirty Categories
}

type keyInfo struct {
	name    string
	dirty   Categories
	makeTab func(name string) anyTable
}

var registry = struct {
	mu     sync.RWMutex
	byName map[string]KeyID
	infos  []keyInfo
}{byName: make(map[string]KeyID)}

// NewKey registers a typed property key under a unique name. The dirty
// categories declare which passes a mutation of this key invalidates.
// Panics on a duplicate name: keys are compile-time vocabulary and a
// collision is a programmer error
func NewKey[T any](name string, dirty Categories) Key[T] {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, exists := registry.byName[name]; exists {
		panic("property key already registered: " + name)
	}

	id := KeyID(len(registry.infos))
	registry.infos = append(registry.infos, keyInfo{
		name:  name,
		dirty: dirty,
		makeTab: func(n string) anyTable {
			return &table[T]{Store: ecs.NewStore[slot[T]](), name: n}
		},
	})
	registry.byName[name] = id

	return Key[T]{id: id, name: name, dirty: dirty}
}

// ID returns the registry identity
func (k Key[T]) ID() KeyID {
	return k.id
}

// Name returns the registered name
func (k Key[T]) Name() string {
	return k.name
}

// Dirty returns the categories a mutation of this key invalidates
func (k Key[T]) Dirty() Categories {
	return k.dirty
}

// KeyByName resolves a registered key ID for type-erased access paths
// such as style application
func KeyByName(name string) (KeyID, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	id, ok := registry.byName[name]
	return id, ok
}

// KeyName returns the registered name for diagnostics
func KeyName(id KeyID) string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	if int(id) >= len(registry.infos) {
		return "?"
	}
	return registry.infos[id].name
}

// KeyCategories returns the dirty categories registered for a key ID
func KeyCategories(id KeyID) Categories {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	if int(id) >= len(registry.infos) {
		return 0
	}
	return registry.infos[id].dirty
}

func keyTableFactory(id KeyID) (keyInfo, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	if int(id) >= len(registry.infos) {
		return keyInfo{}, false
	}
	return registry.infos[id], true
}
