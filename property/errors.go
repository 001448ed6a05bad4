package property

import "errors"

// Reference and typing failures surface as wrapped sentinels so callers
// branch with errors.Is while the message keeps key and entity context
var (
	// ErrNoValue marks a read of a key the entity never set
	ErrNoValue = errors.New("property not set")

	// ErrBrokenReference marks a shared read whose source entity no
	// longer holds the key
	ErrBrokenReference = errors.New("broken shared reference")

	// ErrCyclicReference marks a share that would route an entity's
	// reads back to itself, or a reference chain past the resolve bound
	ErrCyclicReference = errors.New("cyclic shared reference")

	// ErrTypeMismatch marks an erased write whose value type differs
	// from the key's registered type
	ErrTypeMismatch = errors.New("property type mismatch")

	// ErrUnknownKey marks an erased access naming an unregistered key
	ErrUnknownKey = errors.New("unknown property key")
)
