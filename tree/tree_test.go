package tree

import (
	"errors"
	"testing"

	"github.com/weftui/weft/core"
)

const (
	root = core.Entity(1)
	nA   = core.Entity(2)
	nB   = core.Entity(3)
	nC   = core.Entity(4)
	nD   = core.Entity(5)
)

func newRooted() *Tree {
	t := New()
	t.SetRoot(root)
	return t
}

func TestInsertSiblingOrder(t *testing.T) {
	tr := newRooted()

	// Inserting at index 0 twice prepends the second child
	if err := tr.Insert(root, nC, 0); err != nil {
		t.Fatalf("Insert C failed: %v", err)
	}
	if err := tr.Insert(root, nD, 0); err != nil {
		t.Fatalf("Insert D failed: %v", err)
	}

	kids := tr.Children(root)
	if len(kids) != 2 || kids[0] != nD || kids[1] != nC {
		t.Errorf("Expected [D C] = [%d %d], got %v", nD, nC, kids)
	}
}

func TestInsertOutOfRangeAppends(t *testing.T) {
	tr := newRooted()

	tr.Insert(root, nA, 0)
	if err := tr.Insert(root, nB, 99); err != nil {
		t.Fatalf("Insert with large index failed: %v", err)
	}
	if err := tr.Insert(root, nC, -1); err != nil {
		t.Fatalf("Insert with negative index failed: %v", err)
	}

	kids := tr.Children(root)
	want := []core.Entity{nA, nB, nC}
	for i, k := range kids {
		if k != want[i] {
			t.Errorf("Expected order %v, got %v", want, kids)
			break
		}
	}
}

func TestInsertErrors(t *testing.T) {
	tr := newRooted()

	if err := tr.Insert(core.Entity(99), nA, 0); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("Expected ErrUnknownEntity for missing parent, got %v", err)
	}

	tr.Insert(root, nA, 0)
	if err := tr.Insert(root, nA, 1); !errors.Is(err, ErrAlreadyInTree) {
		t.Errorf("Expected ErrAlreadyInTree, got %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for self-parent insert")
		}
	}()
	tr.Insert(nA, nA, 0)
}

func TestRemoveReturnsPostOrder(t *testing.T) {
	tr := newRooted()
	// root → A → {B, C}; D under B
	tr.Insert(root, nA, 0)
	tr.Insert(nA, nB, 0)
	tr.Insert(nA, nC, 1)
	tr.Insert(nB, nD, 0)

	removed, err := tr.Remove(nA)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	want := []core.Entity{nD, nB, nC, nA}
	if len(removed) != len(want) {
		t.Fatalf("Expected %d removed, got %v", len(want), removed)
	}
	for i, e := range removed {
		if e != want[i] {
			t.Errorf("Expected post-order %v, got %v", want, removed)
			break
		}
	}

	for _, e := range removed {
		if tr.Contains(e) {
			t.Errorf("Expected entity %d detached", e)
		}
	}
	if tr.Len() != 1 {
		t.Errorf("Expected only root left, got %d", tr.Len())
	}

	if _, err := tr.Remove(nA); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("Expected ErrUnknownEntity for repeated remove, got %v", err)
	}
}

func TestRemoveRootEmptiesTree(t *testing.T) {
	tr := newRooted()
	tr.Insert(root, nA, 0)

	removed, err := tr.Remove(root)
	if err != nil {
		t.Fatalf("Remove root failed: %v", err)
	}
	if len(removed) != 2 {
		t.Errorf("Expected 2 removed, got %v", removed)
	}
	if tr.Root() != core.NoEntity || tr.Len() != 0 {
		t.Error("Expected empty tree after root removal")
	}
}

func TestPreOrderWalk(t *testing.T) {
	tr := newRooted()
	tr.Insert(root, nA, 0)
	tr.Insert(root, nB, 1)
	tr.Insert(nA, nC, 0)

	w := tr.PreOrder(root)
	got := w.Collect()
	want := []core.Entity{root, nA, nC, nB}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected pre-order %v, got %v", want, got)
			break
		}
	}

	// Walker is exhausted, not restartable
	if _, ok := w.Next(); ok {
		t.Error("Expected exhausted walker to stay exhausted")
	}

	// Detached start yields an empty walk
	if _, ok := tr.PreOrder(core.Entity(99)).Next(); ok {
		t.Error("Expected empty walk for detached start")
	}
}

func TestPostOrderWalk(t *testing.T) {
	tr := newRooted()
	tr.Insert(root, nA, 0)
	tr.Insert(root, nB, 1)
	tr.Insert(nA, nC, 0)

	w := tr.PostOrder(root)
	var got []core.Entity
	for e, ok := w.Next(); ok; e, ok = w.Next() {
		got = append(got, e)
	}

	want := []core.Entity{nC, nA, nB, root}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected post-order %v, got %v", want, got)
			break
		}
	}
}

func TestAncestorsAndDepth(t *testing.T) {
	tr := newRooted()
	tr.Insert(root, nA, 0)
	tr.Insert(nA, nB, 0)

	anc := tr.Ancestors(nB)
	if len(anc) != 2 || anc[0] != nA || anc[1] != root {
		t.Errorf("Expected [A root], got %v", anc)
	}
	if len(tr.Ancestors(root)) != 0 {
		t.Error("Expected root to have no ancestors")
	}

	if d := tr.Depth(nB); d != 2 {
		t.Errorf("Expected depth 2, got %d", d)
	}
	if d := tr.Depth(root); d != 0 {
		t.Errorf("Expected depth 0, got %d", d)
	}
	if d := tr.Depth(core.Entity(99)); d != -1 {
		t.Errorf("Expected depth -1 for detached entity, got %d", d)
	}
}

func TestParentLookup(t *testing.T) {
	tr := newRooted()
	tr.Insert(root, nA, 0)

	p, ok := tr.Parent(nA)
	if !ok || p != root {
		t.Errorf("Expected parent root, got %d (ok=%v)", p, ok)
	}
	if _, ok := tr.Parent(root); ok {
		t.Error("Expected root to have no parent")
	}
}
