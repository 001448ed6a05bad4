package event

import (
	"testing"

	"github.com/weftui/weft/core"
	"github.com/weftui/weft/ecs"
	"github.com/weftui/weft/tree"
)

const (
	eRoot = core.Entity(1)
	eA    = core.Entity(2)
	eB    = core.Entity(3)
	eC    = core.Entity(4)
)

type stubResolver struct {
	target core.Entity
	ok     bool
}

func (s stubResolver) Resolve(ev *Event) (core.Entity, bool) {
	return s.target, s.ok
}

// newFixture builds root → {A, B} with a recording helper
func newFixture() (*tree.Tree, *HandlerMap, *Dispatcher, *[]string) {
	tr := tree.New()
	tr.SetRoot(eRoot)
	tr.Insert(eRoot, eA, 0)
	tr.Insert(eRoot, eB, 1)

	hm := NewHandlerMap(nil)
	d := NewDispatcher(tr, hm)
	log := &[]string{}
	return tr, hm, d, log
}

func record(log *[]string, label string, consume bool) HandlerFunc {
	return func(d *Delivery) {
		*log = append(*log, label)
		if consume {
			d.MarkHandled()
		}
	}
}

func TestBubbleOrderUnhandled(t *testing.T) {
	_, hm, d, log := newFixture()

	hm.On(eA, TypePointerDown, record(log, "A", false))
	hm.On(eRoot, TypePointerDown, record(log, "R", false))

	d.SetResolver(stubResolver{target: eA, ok: true})
	res := d.Dispatch(&Event{Type: TypePointerDown})

	if !res.Delivered {
		t.Fatal("Expected event to be delivered")
	}
	if res.Handled() {
		t.Error("Expected handled=false when no handler consumes")
	}

	want := []string{"A", "R"}
	if len(*log) != 2 || (*log)[0] != want[0] || (*log)[1] != want[1] {
		t.Errorf("Expected bubble order %v, got %v", want, *log)
	}
}

func TestCaptureAndBubbleIndependent(t *testing.T) {
	_, hm, d, log := newFixture()

	// The root consumes during capture; bubble must still reach both
	// the target and the root
	hm.OnCapture(eRoot, TypePointerDown, record(log, "R-capture", true))
	hm.On(eA, TypePointerDown, record(log, "A-bubble", false))
	hm.On(eRoot, TypePointerDown, record(log, "R-bubble", false))

	res := d.Dispatch(&Event{Type: TypePointerDown, Target: eA})

	if !res.CaptureHandled {
		t.Error("Expected capture phase to be consumed")
	}
	if res.BubbleHandled {
		t.Error("Expected bubble phase unconsumed")
	}

	want := []string{"R-capture", "A-bubble", "R-bubble"}
	if len(*log) != 3 {
		t.Fatalf("Expected deliveries %v, got %v", want, *log)
	}
	for i := range want {
		if (*log)[i] != want[i] {
			t.Errorf("Expected deliveries %v, got %v", want, *log)
			break
		}
	}
}

func TestCaptureConsumptionStopsCaptureOnly(t *testing.T) {
	tr, hm, d, log := newFixture()
	tr.Insert(eA, eC, 0)

	hm.OnCapture(eRoot, TypePointerDown, record(log, "R-capture", true))
	hm.OnCapture(eA, TypePointerDown, record(log, "A-capture", false))
	hm.On(eC, TypePointerDown, record(log, "C-bubble", false))
	hm.On(eA, TypePointerDown, record(log, "A-bubble", false))
	hm.On(eRoot, TypePointerDown, record(log, "R-bubble", false))

	d.Dispatch(&Event{Type: TypePointerDown, Target: eC})

	// A's capture handler is skipped, the full bubble path still runs
	want := []string{"R-capture", "C-bubble", "A-bubble", "R-bubble"}
	if len(*log) != len(want) {
		t.Fatalf("Expected %v, got %v", want, *log)
	}
	for i := range want {
		if (*log)[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, *log)
			break
		}
	}
}

func TestBubbleStopsAtFirstConsumer(t *testing.T) {
	tr, hm, d, log := newFixture()
	tr.Insert(eA, eC, 0)

	hm.On(eC, TypePointerDown, record(log, "C", true))
	hm.On(eA, TypePointerDown, record(log, "A", false))
	hm.On(eRoot, TypePointerDown, record(log, "R", false))

	res := d.Dispatch(&Event{Type: TypePointerDown, Target: eC})

	if !res.BubbleHandled {
		t.Error("Expected bubble consumption")
	}
	if len(*log) != 1 || (*log)[0] != "C" {
		t.Errorf("Expected delivery to stop at C, got %v", *log)
	}
}

func TestCaptureNeverVisitsTarget(t *testing.T) {
	_, hm, d, log := newFixture()

	hm.OnCapture(eA, TypePointerDown, record(log, "A-capture", false))
	hm.On(eA, TypePointerDown, record(log, "A-bubble", false))

	d.Dispatch(&Event{Type: TypePointerDown, Target: eA})

	if len(*log) != 1 || (*log)[0] != "A-bubble" {
		t.Errorf("Expected capture to skip the target, got %v", *log)
	}
}

func TestDispatchToRemovedEntityNoop(t *testing.T) {
	tr, hm, d, log := newFixture()
	hm.On(eA, TypePointerDown, record(log, "A", false))

	tr.Remove(eA)
	res := d.Dispatch(&Event{Type: TypePointerDown, Target: eA})

	if res.Delivered || res.Handled() {
		t.Error("Expected no-op for removed target")
	}
	if len(*log) != 0 {
		t.Errorf("Expected no deliveries, got %v", *log)
	}
}

func TestUntargetedWithoutResolution(t *testing.T) {
	_, hm, d, log := newFixture()
	hm.On(eA, TypePointerDown, record(log, "A", false))

	// No resolver wired
	if res := d.Dispatch(&Event{Type: TypePointerDown}); res.Delivered {
		t.Error("Expected no-op without a resolver")
	}

	// Resolver reports nothing under the pointer
	d.SetResolver(stubResolver{ok: false})
	if res := d.Dispatch(&Event{Type: TypePointerDown}); res.Delivered {
		t.Error("Expected no-op on resolver miss")
	}

	if len(*log) != 0 {
		t.Errorf("Expected no deliveries, got %v", *log)
	}
}

func TestHandlersRunInOrderAfterConsumption(t *testing.T) {
	_, hm, d, log := newFixture()

	// Both handlers on the same entity run even though the first
	// consumes; the stop applies at entity granularity
	hm.On(eA, TypePointerDown, record(log, "first", true))
	hm.On(eA, TypePointerDown, record(log, "second", false))
	hm.On(eRoot, TypePointerDown, record(log, "R", false))

	res := d.Dispatch(&Event{Type: TypePointerDown, Target: eA})

	if !res.BubbleHandled {
		t.Error("Expected bubble consumption")
	}
	want := []string{"first", "second"}
	if len(*log) != 2 || (*log)[0] != want[0] || (*log)[1] != want[1] {
		t.Errorf("Expected %v, got %v", want, *log)
	}
}

func TestOffAndHandlerCount(t *testing.T) {
	_, hm, _, log := newFixture()

	hm.On(eA, TypePointerDown, record(log, "x", false))
	hm.OnCapture(eA, TypePointerDown, record(log, "y", false))
	if got := hm.HandlerCount(eA, TypePointerDown); got != 2 {
		t.Errorf("Expected 2 handlers, got %d", got)
	}

	hm.Off(eA, TypePointerDown)
	if got := hm.HandlerCount(eA, TypePointerDown); got != 0 {
		t.Errorf("Expected 0 handlers after Off, got %d", got)
	}
}

func TestWorldDestroyDropsHandlers(t *testing.T) {
	w := ecs.NewWorld()
	hm := NewHandlerMap(w)
	e := w.CreateEntity()

	hm.On(e, TypeActivated, func(d *Delivery) {})
	if hm.HandlerCount(e, TypeActivated) != 1 {
		t.Fatal("Expected handler registered")
	}

	w.DestroyEntity(e)
	if hm.HandlerCount(e, TypeActivated) != 0 {
		t.Error("Expected world destroy to drop handlers")
	}
}
