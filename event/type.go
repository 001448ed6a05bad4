package event

import "sync"

// Type identifies an event kind flowing through the frame queue
type Type int

const (
	// === Pointer Events ===

	// TypePointerMoved reports pointer motion in cell coordinates
	// Trigger: shell mouse motion | Payload: PointerPayload
	TypePointerMoved Type = iota + 1

	// TypePointerDown reports a button press
	// Trigger: shell mouse button | Payload: PointerPayload
	TypePointerDown

	// TypePointerUp reports a button release
	// Trigger: shell mouse button | Payload: PointerPayload
	TypePointerUp

	// TypeScroll reports wheel movement at a pointer position
	// Trigger: shell mouse wheel | Payload: ScrollPayload
	TypeScroll

	// === Keyboard Events ===

	// TypeKeyPressed reports a key press routed to the focused widget
	// Trigger: shell keyboard | Payload: KeyPayload
	TypeKeyPressed

	// === Window Events ===

	// TypeResized reports a new terminal size
	// Trigger: shell resize | Payload: ResizePayload
	TypeResized

	// TypeCloseRequested asks the application to shut down
	// Trigger: shell interrupt or close key | Payload: nil
	TypeCloseRequested

	// === Widget Events ===

	// TypeActivated reports a widget firing its primary action, such
	// as a button click
	// Trigger: widget state machines | Payload: nil
	TypeActivated
)

// TypeUserBase is the first identifier available for application
// defined event types registered through RegisterType
const TypeUserBase Type = 1000

var typeRegistry = struct {
	mu     sync.RWMutex
	byName map[string]Type
	names  map[Type]string
	next   Type
}{
	byName: make(map[string]Type),
	names:  make(map[Type]string),
	next:   TypeUserBase,
}

func init() {
	builtin := map[Type]string{
		TypePointerMoved:   "pointer-moved",
		TypePointerDown:    "pointer-down",
		TypePointerUp:      "pointer-up",
		TypeScroll:         "scroll",
		TypeKeyPressed:     "key-pressed",
		TypeResized:        "resized",
		TypeCloseRequested: "close-requested",
		TypeActivated:      "activated",
	}
	for t, name := range builtin {
		typeRegistry.names[t] = name
		typeRegistry.byName[name] = t
	}
}

// RegisterType allocates a new event type under the given name
// Panics on a duplicate name: event vocabulary is fixed at startup
func RegisterType(name string) Type {
	typeRegistry.mu.Lock()
	defer typeRegistry.mu.Unlock()

	if _, exists := typeRegistry.byName[name]; exists {
		panic("event type already registered: " + name)
	}
	t := typeRegistry.next
	typeRegistry.next++
	typeRegistry.byName[name] = t
	typeRegistry.names[t] = name
	return t
}

// TypeByName resolves a registered event type
func TypeByName(name string) (Type, bool) {
	typeRegistry.mu.RLock()
	defer typeRegistry.mu.RUnlock()
	t, ok := typeRegistry.byName[name]
	return t, ok
}

// String returns the registered name for diagnostics
func (t Type) String() string {
	typeRegistry.mu.RLock()
	defer typeRegistry.mu.RUnlock()
	if name, ok := typeRegistry.names[t]; ok {
		return name
	}
	return "unknown"
}
