package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is an atomic float64 backed by bit conversion. The zero
// value is ready to use and reads as 0.0
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set stores a value atomically
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get loads the value atomically
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add adds delta to the value and returns the result
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// MaxLabelLen bounds AtomicString values so status lines built from
// them keep a predictable width
const MaxLabelLen = 24

// AtomicString is an atomic label with a fixed maximum length. The
// zero value reads as the empty string
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the label, truncating to MaxLabelLen
func (s *AtomicString) Store(val string) {
	if len(val) > MaxLabelLen {
		val = val[:MaxLabelLen]
	}
	s.ptr.Store(&val)
}

// Load returns the current label
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
