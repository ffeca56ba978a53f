package namedargs

// Presence is the bit flag recorded for each bound value.
type Presence uint8

const (
	PresenceSupplied       Presence = 1 << iota // Value came from the argument set.
	PresenceDefaultApplied                      // Declared default was applied.
)

// Value is one resolved slot of a Bound sequence.
type Value struct {
	Kind     *Kind
	V        any // Bound representation; see Kind.BoundType.
	Presence Presence
}

// Supplied reports whether the caller gave this value explicitly.
func (v Value) Supplied() bool { return v.Presence&PresenceSupplied != 0 }

// DefaultApplied reports whether the value was materialized from a default.
func (v Value) DefaultApplied() bool { return v.Presence&PresenceDefaultApplied != 0 }

// Absent reports an omitted Optional parameter.
func (v Value) Absent() bool { return v.Presence == 0 }
