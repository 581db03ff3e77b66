// Package draft holds the client-side working copy of an event and its owned
// collections while an operator edits them, and reduces the recorded edits
// to the operations a save has to issue.
package draft

import (
	"fmt"
	"sync/atomic"
)

// Allocator mints temporary identifiers for entities created in a session.
// Durable identifiers are never negative, so the two spaces are disjoint.
type Allocator struct {
	last atomic.Int64
}

// Allocate returns -1, -2, -3, ... across calls. Values are never reused.
func (a *Allocator) Allocate() int64 {
	return a.last.Add(-1)
}

// IsTemporary reports whether id was minted by an Allocator.
func IsTemporary(id int64) bool {
	return id < 0
}

// IDRemap records the durable identifier assigned to each temporary one.
// Each temporary identifier can be bound once.
type IDRemap map[int64]int64

// Bind records that temporary id temp is now durable id durable.
func (m IDRemap) Bind(temp, durable int64) error {
	if !IsTemporary(temp) {
		return fmt.Errorf("bind %d: not a temporary id", temp)
	}
	if IsTemporary(durable) {
		return fmt.Errorf("bind %d: %d is not a durable id", temp, durable)
	}
	if prev, ok := m[temp]; ok {
		return fmt.Errorf("bind %d: already bound to %d", temp, prev)
	}
	m[temp] = durable
	return nil
}

// Resolve returns the durable id for id if one was bound, otherwise id.
func (m IDRemap) Resolve(id int64) int64 {
	if durable, ok := m[id]; ok {
		return durable
	}
	return id
}
