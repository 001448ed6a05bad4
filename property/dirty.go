package property

import "github.com/weftui/weft/core"

// dirtySet is an insertion-ordered set of marked entities
// Order determines pass execution order, so it must be stable
type dirtySet struct {
	order []core.Entity
	seen  map[core.Entity]struct{}
}

func newDirtySet() *dirtySet {
	return &dirtySet{
		order: make([]core.Entity, 0, 32),
		seen:  make(map[core.Entity]struct{}, 32),
	}
}

func (d *dirtySet) add(e core.Entity) {
	if _, ok := d.seen[e]; ok {
		return
	}
	d.seen[e] = struct{}{}
	d.order = append(d.order, e)
}

func (d *dirtySet) has(e core.Entity) bool {
	_, ok := d.seen[e]
	return ok
}

func (d *dirtySet) snapshot() []core.Entity {
	out := make([]core.Entity, len(d.order))
	copy(out, d.order)
	return out
}

func (d *dirtySet) drain() []core.Entity {
	out := d.order
	d.order = make([]core.Entity, 0, 32)
	d.seen = make(map[core.Entity]struct{}, 32)
	return out
}

func (d *dirtySet) remove(e core.Entity) {
	if _, ok := d.seen[e]; !ok {
		return
	}
	delete(d.seen, e)
	for i, cur := range d.order {
		if cur == e {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}
