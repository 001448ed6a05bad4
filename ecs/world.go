package ecs

import (
	"sync"

	"github.com/weftui/weft/core"
)

// World allocates entity identifiers and manages the stores attached
// to them. It carries no widget semantics itself; the toolkit layers
// the tree, properties, and behaviors on top of it
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity

	// Lifecycle registry - all stores implement AnyStore for uniform cleanup
	allStores []AnyStore

	// Serializes frame execution against out-of-frame readers
	updateMutex sync.Mutex
}

// NewWorld creates a new ECS world
func NewWorld() *World {
	return &World{
		nextEntityID: 1,
		allStores:    make([]AnyStore, 0, 8),
	}
}

// RegisterStore adds a store to the lifecycle registry so entity
// destruction and Clear reach it
func (w *World) RegisterStore(s AnyStore) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.allStores = append(w.allStores, s)
}

// CreateEntity reserves a new entity ID without adding any components
// IDs are never reused within a process run, so stale identifiers fail
// lookups instead of aliasing a newer entity
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// DestroyEntity removes all components associated with an entity
func (w *World) DestroyEntity(e core.Entity) {
	w.mu.RLock()
	stores := w.allStores
	w.mu.RUnlock()

	for _, store := range stores {
		store.Remove(e)
	}
}

// DestroyBatch removes all components for multiple entities
// Stores with batch support compact once instead of per entity
func (w *World) DestroyBatch(entities []core.Entity) {
	if len(entities) == 0 {
		return
	}

	w.mu.RLock()
	stores := w.allStores
	w.mu.RUnlock()

	for _, store := range stores {
		if batcher, ok := store.(interface{ RemoveBatch([]core.Entity) }); ok {
			batcher.RemoveBatch(entities)
			continue
		}
		for _, e := range entities {
			store.Remove(e)
		}
	}
}

// HasAnyComponent checks if an entity has at least one component
func (w *World) HasAnyComponent(e core.Entity) bool {
	w.mu.RLock()
	stores := w.allStores
	w.mu.RUnlock()

	for _, store := range stores {
		if store.Has(e) {
			return true
		}
	}
	return false
}

// Clear removes all entities and components from the world
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.nextEntityID = 1
	for _, store := range w.allStores {
		store.Clear()
	}
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Lock acquires the world's update mutex
func (w *World) Lock() {
	w.updateMutex.Lock()
}

// Unlock releases the update mutex
func (w *World) Unlock() {
	w.updateMutex.Unlock()
}
