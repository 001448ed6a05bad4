package status

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// Well-known metric names published by the frame loop. Shells and
// overlays read them by name; anything else registers its own
const (
	MetricFrameCount       = "frame.count"
	MetricFrameMillis      = "frame.millis"
	MetricEventsDispatched = "events.dispatched"
	MetricEventsDropped    = "events.dropped"
	MetricUpdatesRun       = "updates.run"
	MetricUpdateErrors     = "updates.errors"
	MetricTreeMutations    = "tree.mutations"
	MetricWidgetCount      = "widgets.count"
	MetricThemeName        = "theme.name"
)

// metricMap is a registry for metrics of one type. Registration takes
// the mutex; a cached pointer is written lock-free afterwards
type metricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func newMetricMap[T any]() *metricMap[T] {
	return &metricMap[T]{items: make(map[string]*T)}
}

// get returns the metric pointer for name, allocating on first use
func (m *metricMap[T]) get(name string) *T {
	m.mu.RLock()
	if ptr, ok := m.items[name]; ok {
		m.mu.RUnlock()
		return ptr
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[name]; ok {
		return ptr
	}
	ptr := new(T)
	m.items[name] = ptr
	return ptr
}

func (m *metricMap[T]) count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// rangeSorted visits all metrics in name order
func (m *metricMap[T]) rangeSorted(fn func(name string, ptr *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.items))
	for n := range m.items {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fn(n, m.items[n])
	}
}

// Board is the central metrics facade. The frame loop caches pointers
// at construction and writes atomics per frame; status overlays and
// tests read from any goroutine
type Board struct {
	ints    *metricMap[atomic.Int64]
	floats  *metricMap[AtomicFloat]
	bools   *metricMap[atomic.Bool]
	strings *metricMap[AtomicString]
}

// NewBoard creates an empty metrics board
func NewBoard() *Board {
	return &Board{
		ints:    newMetricMap[atomic.Int64](),
		floats:  newMetricMap[AtomicFloat](),
		bools:   newMetricMap[atomic.Bool](),
		strings: newMetricMap[AtomicString](),
	}
}

// Int returns the named counter, registering it on first use
func (b *Board) Int(name string) *atomic.Int64 { return b.ints.get(name) }

// Float returns the named gauge, registering it on first use
func (b *Board) Float(name string) *AtomicFloat { return b.floats.get(name) }

// Bool returns the named flag, registering it on first use
func (b *Board) Bool(name string) *atomic.Bool { return b.bools.get(name) }

// Str returns the named label, registering it on first use
func (b *Board) Str(name string) *AtomicString { return b.strings.get(name) }

// Count returns the number of registered metrics across all types
func (b *Board) Count() int {
	return b.ints.count() + b.floats.count() + b.bools.count() + b.strings.count()
}

// Lines renders every metric as "name=value", sorted by name within
// each type, for status overlays and logs
func (b *Board) Lines() []string {
	var lines []string
	b.ints.rangeSorted(func(name string, v *atomic.Int64) {
		lines = append(lines, fmt.Sprintf("%s=%d", name, v.Load()))
	})
	b.floats.rangeSorted(func(name string, v *AtomicFloat) {
		lines = append(lines, fmt.Sprintf("%s=%.2f", name, v.Get()))
	})
	b.bools.rangeSorted(func(name string, v *atomic.Bool) {
		lines = append(lines, fmt.Sprintf("%s=%t", name, v.Load()))
	})
	b.strings.rangeSorted(func(name string, v *AtomicString) {
		lines = append(lines, fmt.Sprintf("%s=%s", name, v.Load()))
	})
	sort.Strings(lines)
	return lines
}
