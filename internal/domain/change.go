package domain

import "time"

// ChangeKind is the kind of edit recorded in a change log.
type ChangeKind string

const (
	ChangeAdd    ChangeKind = "add"
	ChangeUpdate ChangeKind = "update"
	ChangeDelete ChangeKind = "delete"
)

// ChangeRecord is one edit to an owned collection. Seq breaks ties between
// records with equal timestamps.
type ChangeRecord[T any] struct {
	Kind      ChangeKind `json:"kind"`
	Data      T          `json:"data"`
	Timestamp time.Time  `json:"timestamp"`
	Seq       uint64     `json:"seq"`
}

// ChangeSet is the collapsed net effect of a change log.
// ToAdd runs first because later steps may need the ids it produces.
type ChangeSet[T any] struct {
	ToAdd    []T `json:"toAdd"`
	ToUpdate []T `json:"toUpdate"`
	ToDelete []T `json:"toDelete"`
	// Discarded counts records dropped because they targeted an entity
	// already staged for deletion or unknown to the baseline.
	Discarded int `json:"discarded"`
}

// Empty reports whether the set issues no operation.
func (c ChangeSet[T]) Empty() bool {
	return len(c.ToAdd) == 0 && len(c.ToUpdate) == 0 && len(c.ToDelete) == 0
}

// Len is the number of operations the set issues.
func (c ChangeSet[T]) Len() int {
	return len(c.ToAdd) + len(c.ToUpdate) + len(c.ToDelete)
}
