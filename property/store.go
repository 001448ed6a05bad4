package property

import (
	"fmt"

	"github.com/weftui/weft/core"
	"github.com/weftui/weft/ecs"
)

// Shared sources may themselves be re-shared after a reference was
// recorded, so reads walk the chain; anything deeper than this bound
// is treated as a reference loop
const maxShareDepth = 4

// slot holds one entity's state for one key: an owned value, or a
// reference to another entity's slot when source is set
type slot[T any] struct {
	value  T
	source core.Entity
}

// anyTable is the type-erased view of a key's table, used for entity
// lifecycle and the string-keyed style path
type anyTable interface {
	ecs.AnyStore
	setErased(e core.Entity, v any) error
}

// table is the typed storage for a single key across all entities
type table[T any] struct {
	*ecs.Store[slot[T]]
	name string
}

func (t *table[T]) setErased(e core.Entity, v any) error {
	val, ok := v.(T)
	if !ok {
		var want T
		return fmt.Errorf("property %q: %w: have %T, want %T", t.name, ErrTypeMismatch, v, want)
	}
	t.Add(e, slot[T]{value: val})
	return nil
}

// Store maps (entity, key) pairs to property values and records which
// dirty categories each mutation invalidates
//
// Thread-Safety:
//   - Owned by the update loop during a frame
//   - Out-of-frame readers must hold the world update lock
type Store struct {
	world  *ecs.World
	tables map[KeyID]anyTable
	dirty  [categoryCount]*dirtySet
}

// NewStore creates a property store backed by the given world. Each
// key's table registers with the world so entity destruction clears
// property data uniformly. A nil world is allowed for standalone use
func NewStore(world *ecs.World) *Store {
	s := &Store{
		world:  world,
		tables: make(map[KeyID]anyTable),
	}
	for i := range s.dirty {
		s.dirty[i] = newDirtySet()
	}
	return s
}

func tableFor[T any](s *Store, k Key[T]) *table[T] {
	if t, ok := s.tables[k.id]; ok {
		return t.(*table[T])
	}
	t := &table[T]{Store: ecs.NewStore[slot[T]](), name: k.name}
	s.tables[k.id] = t
	if s.world != nil {
		s.world.RegisterStore(t)
	}
	return t
}

func (s *Store) tableByID(id KeyID) (anyTable, error) {
	if t, ok := s.tables[id]; ok {
		return t, nil
	}
	info, ok := keyTableFactory(id)
	if !ok {
		return nil, fmt.Errorf("property id %d: %w", id, ErrUnknownKey)
	}
	t := info.makeTab(info.name)
	s.tables[id] = t
	if s.world != nil {
		s.world.RegisterStore(t)
	}
	return t, nil
}

// Set overwrites the entity's owned value for the key and marks the
// entity dirty for every category the key registered. Setting a shared
// slot detaches it: the entity owns the new value afterwards
func Set[T any](s *Store, e core.Entity, k Key[T], v T) {
	tableFor(s, k).Add(e, slot[T]{value: v})
	s.MarkDirty(e, k.dirty)
}

// Get returns the entity's resolved value for the key. A shared slot
// reads through its source; a well-formed reference resolves in one
// hop because Share records the terminal owner at write time. Chains
// left behind by later re-shares are walked up to maxShareDepth
func Get[T any](s *Store, e core.Entity, k Key[T]) (T, error) {
	var zero T
	t := tableFor(s, k)

	sl, ok := t.Store.Get(e)
	if !ok {
		return zero, fmt.Errorf("property %q on entity %d: %w", k.name, e, ErrNoValue)
	}
	if sl.source == core.NoEntity {
		return sl.value, nil
	}

	src := sl.source
	for depth := 0; depth < maxShareDepth; depth++ {
		next, ok := t.Store.Get(src)
		if !ok {
			return zero, fmt.Errorf("property %q on entity %d: source %d gone: %w",
				k.name, e, src, ErrBrokenReference)
		}
		if next.source == core.NoEntity {
			return next.value, nil
		}
		src = next.source
	}
	return zero, fmt.Errorf("property %q on entity %d: %w", k.name, e, ErrCyclicReference)
}

// GetOr returns the resolved value, or def when the slot is missing or
// its reference cannot be resolved
func GetOr[T any](s *Store, e core.Entity, k Key[T], def T) T {
	v, err := Get(s, e, k)
	if err != nil {
		return def
	}
	return v
}

// Has returns true if the entity holds an owned or shared slot for the key
func Has[T any](s *Store, e core.Entity, k Key[T]) bool {
	return tableFor(s, k).Has(e)
}

// Share makes entity read the key through source. The stored reference
// points at source's terminal owner so well-formed reads resolve in one
// hop. Fails with ErrCyclicReference when source already (transitively)
// reads from entity, leaving the store unchanged on failure
func Share[T any](s *Store, e core.Entity, k Key[T], source core.Entity) error {
	if source == e {
		return fmt.Errorf("property %q: entity %d sharing with itself: %w",
			k.name, e, ErrCyclicReference)
	}
	t := tableFor(s, k)

	term := source
	resolved := false
	for depth := 0; depth <= maxShareDepth; depth++ {
		sl, ok := t.Store.Get(term)
		if !ok || sl.source == core.NoEntity {
			resolved = true
			break
		}
		term = sl.source
	}
	if !resolved {
		return fmt.Errorf("property %q: source %d chain too deep: %w",
			k.name, source, ErrCyclicReference)
	}
	if term == e {
		return fmt.Errorf("property %q: source %d reads from entity %d: %w",
			k.name, source, e, ErrCyclicReference)
	}

	t.Add(e, slot[T]{source: term})
	s.MarkDirty(e, k.dirty)
	return nil
}

// Unshare converts a shared slot into an owned copy of its resolved
// value. Owned slots pass through untouched
func Unshare[T any](s *Store, e core.Entity, k Key[T]) error {
	t := tableFor(s, k)
	sl, ok := t.Store.Get(e)
	if !ok {
		return fmt.Errorf("property %q on entity %d: %w", k.name, e, ErrNoValue)
	}
	if sl.source == core.NoEntity {
		return nil
	}
	v, err := Get(s, e, k)
	if err != nil {
		return err
	}
	t.Add(e, slot[T]{value: v})
	s.MarkDirty(e, k.dirty)
	return nil
}

// Remove deletes the entity's slot for the key without touching dirty
// marks. Later reads through references to this entity report
// ErrBrokenReference
func Remove[T any](s *Store, e core.Entity, k Key[T]) {
	tableFor(s, k).Remove(e)
}

// IsShared reports whether the entity's slot for the key is a reference
func IsShared[T any](s *Store, e core.Entity, k Key[T]) bool {
	sl, ok := tableFor(s, k).Store.Get(e)
	return ok && sl.source != core.NoEntity
}

// SetErased writes a value through the ID-keyed path used by style
// resolution. The dynamic type must match the key's registered type
func (s *Store) SetErased(e core.Entity, id KeyID, v any) error {
	t, err := s.tableByID(id)
	if err != nil {
		return err
	}
	if err := t.setErased(e, v); err != nil {
		return err
	}
	s.MarkDirty(e, KeyCategories(id))
	return nil
}

// MarkDirty records the entity in each named category's pending set
// Insertion order is preserved for deterministic pass ordering
func (s *Store) MarkDirty(e core.Entity, cats Categories) {
	for i := 0; i < categoryCount; i++ {
		if cats&(1<<i) != 0 {
			s.dirty[i].add(e)
		}
	}
}

// Dirty returns the entities marked for a single category, in mark order
func (s *Store) Dirty(c Categories) []core.Entity {
	return s.dirty[categoryIndex(c)].snapshot()
}

// DrainDirty returns the entities marked for a single category and
// clears the set
func (s *Store) DrainDirty(c Categories) []core.Entity {
	return s.dirty[categoryIndex(c)].drain()
}

// HasDirty reports whether the entity is marked in the category
func (s *Store) HasDirty(c Categories, e core.Entity) bool {
	return s.dirty[categoryIndex(c)].has(e)
}

// ClearDirty unmarks the entity in every category it appears in
func (s *Store) ClearDirty(e core.Entity) {
	for i := range s.dirty {
		s.dirty[i].remove(e)
	}
}

// ForgetDirty unmarks a batch of removed entities in every category
func (s *Store) ForgetDirty(entities []core.Entity) {
	for _, e := range entities {
		s.ClearDirty(e)
	}
}

// RemoveEntity deletes all of the entity's slots and dirty marks
// World-backed stores get table cleanup through DestroyEntity as well;
// the double removal is harmless
func (s *Store) RemoveEntity(e core.Entity) {
	for _, t := range s.tables {
		t.Remove(e)
	}
	s.ClearDirty(e)
}

func categoryIndex(c Categories) int {
	switch c {
	case DirtyUpdate:
		return 0
	case DirtyLayout:
		return 1
	case DirtyRender:
		return 2
	default:
		panic("property: exactly one dirty category required, got " + c.String())
	}
}
