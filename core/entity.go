package core

// Entity is a stable identifier for a widget node
// All widget data lives in properties attached to the entity; the
// identifier itself carries no state
type Entity uint64

// NoEntity is the zero identifier, used for optional references
// Allocators never hand it out
const NoEntity Entity = 0
