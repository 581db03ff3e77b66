package draft

import (
	"slices"
	"time"

	"organizerdashboard/internal/domain"
)

// Log is the append-only record of edits to one owned collection.
type Log[T any] struct {
	records []domain.ChangeRecord[T]
	seq     uint64
	now     func() time.Time
}

// NewLog returns an empty log stamping records with now. A nil now uses time.Now.
func NewLog[T any](now func() time.Time) *Log[T] {
	if now == nil {
		now = time.Now
	}
	return &Log[T]{now: now}
}

// Append records an edit and returns the stored record.
func (l *Log[T]) Append(kind domain.ChangeKind, data T) domain.ChangeRecord[T] {
	l.seq++
	rec := domain.ChangeRecord[T]{Kind: kind, Data: data, Timestamp: l.now(), Seq: l.seq}
	l.records = append(l.records, rec)
	return rec
}

// Records returns a copy of the log in append order.
func (l *Log[T]) Records() []domain.ChangeRecord[T] {
	return slices.Clone(l.records)
}

// Len is the number of records in the log.
func (l *Log[T]) Len() int {
	return len(l.records)
}

// retract removes the records matching drop and returns how many it removed.
func (l *Log[T]) retract(drop func(domain.ChangeRecord[T]) bool) int {
	n := len(l.records)
	l.records = slices.DeleteFunc(l.records, drop)
	return n - len(l.records)
}

// Reset drops all records. Sequence numbers keep increasing.
func (l *Log[T]) Reset() {
	l.records = nil
}
