package ecs

import (
	"testing"

	"github.com/weftui/weft/core"
)

func TestCreateEntityUnique(t *testing.T) {
	w := NewWorld()

	seen := make(map[core.Entity]bool)
	for i := 0; i < 100; i++ {
		e := w.CreateEntity()
		if e == core.NoEntity {
			t.Fatal("CreateEntity returned the zero entity")
		}
		if seen[e] {
			t.Fatalf("Entity %d allocated twice", e)
		}
		seen[e] = true
	}
}

func TestStoreAddGetRemove(t *testing.T) {
	s := NewStore[string]()
	e := core.Entity(1)

	s.Add(e, "hello")
	val, ok := s.Get(e)
	if !ok || val != "hello" {
		t.Errorf("Expected hello, got %q (ok=%v)", val, ok)
	}

	// Add overwrites without duplicating the entity entry
	s.Add(e, "world")
	if s.Count() != 1 {
		t.Errorf("Expected count 1 after overwrite, got %d", s.Count())
	}
	val, _ = s.Get(e)
	if val != "world" {
		t.Errorf("Expected world, got %q", val)
	}

	s.Remove(e)
	if s.Has(e) {
		t.Error("Expected entity removed")
	}
	if _, ok := s.Get(core.Entity(99)); ok {
		t.Error("Expected miss for unknown entity")
	}
}

func TestStoreRemoveBatch(t *testing.T) {
	s := NewStore[int]()
	for i := 1; i <= 5; i++ {
		s.Add(core.Entity(i), i*10)
	}

	s.RemoveBatch([]core.Entity{2, 4, 99})

	if s.Count() != 3 {
		t.Errorf("Expected 3 entities after batch remove, got %d", s.Count())
	}
	for _, e := range []core.Entity{1, 3, 5} {
		if !s.Has(e) {
			t.Errorf("Expected entity %d to survive", e)
		}
	}

	// Survivor order is preserved after compaction
	all := s.All()
	want := []core.Entity{1, 3, 5}
	for i, e := range all {
		if e != want[i] {
			t.Errorf("Expected order %v, got %v", want, all)
			break
		}
	}
}

func TestDestroyEntityReachesAllStores(t *testing.T) {
	w := NewWorld()
	a := NewStore[int]()
	b := NewStore[string]()
	w.RegisterStore(a)
	w.RegisterStore(b)

	e := w.CreateEntity()
	a.Add(e, 42)
	b.Add(e, "tag")

	w.DestroyEntity(e)

	if a.Has(e) || b.Has(e) {
		t.Error("Expected entity removed from all registered stores")
	}
	if w.HasAnyComponent(e) {
		t.Error("Expected no components after destroy")
	}
}

func TestClearResetsWorld(t *testing.T) {
	w := NewWorld()
	s := NewStore[int]()
	w.RegisterStore(s)

	e := w.CreateEntity()
	s.Add(e, 1)

	w.Clear()

	if s.Count() != 0 {
		t.Errorf("Expected empty store after Clear, got %d entries", s.Count())
	}
	if got := w.CreateEntity(); got != e {
		t.Errorf("Expected ID allocation to restart at %d, got %d", e, got)
	}
}
