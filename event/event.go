package event

import (
	"time"

	"github.com/weftui/weft/core"
)

// Event is one typed occurrence flowing through the frame queue
// Lifecycle: created by the shell conversion or a widget state
// machine, queued, dispatched exactly once, then discarded
type Event struct {
	Type    Type
	Target  core.Entity // zero resolves through hit testing
	Payload any
	Frame   int64
}

// PointerButton identifies a pointer button in payloads
type PointerButton uint8

const (
	ButtonNone PointerButton = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// PointerPayload carries pointer position and button state
// Payload of: TypePointerMoved, TypePointerDown, TypePointerUp
type PointerPayload struct {
	Pos    core.Point
	Button PointerButton
}

// ScrollPayload carries wheel deltas at a pointer position
// Payload of: TypeScroll
type ScrollPayload struct {
	Pos    core.Point
	DeltaX int
	DeltaY int
}

// Modifiers is a bitmask of held modifier keys
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

// KeyCode identifies non-printing keys; printable input arrives as
// KeyRune with the rune set in the payload
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyEscape
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// KeyPayload carries one key press
// Payload of: TypeKeyPressed
type KeyPayload struct {
	Code KeyCode
	Rune rune // Set when Code == KeyRune
	Mod  Modifiers
}

// ResizePayload carries the new terminal dimensions
// Payload of: TypeResized
type ResizePayload struct {
	Size core.Size
}

// TickInfo carries frame clock data the shell hands to the update
// loop alongside each tick
type TickInfo struct {
	Delta time.Duration
	Frame int64
}
