package draft

import (
	"cmp"
	"slices"

	"organizerdashboard/internal/domain"
)

type pendingState int

const (
	pendingAdd pendingState = iota
	pendingUpdate
	pendingDelete
)

type pendingEntry[T any] struct {
	state pendingState
	data  T
	// at orders entries within their output bucket: append position for
	// additions, first update for updates, the delete record for deletions.
	at int
}

// Collapse reduces records to the net operations that take original to the
// current draft. key maps an entity to its logical identity in the session.
//
// Additions that are later deleted cancel out. Repeated updates keep the last
// payload, and updates to a pending addition fold into the addition. Records
// that follow a deletion of the same key are dropped, as are updates and
// deletions of keys that are neither pending nor in original; both are counted
// in Discarded.
func Collapse[T any, K comparable](records []domain.ChangeRecord[T], original []T, key func(T) K) domain.ChangeSet[T] {
	ordered := slices.Clone(records)
	slices.SortStableFunc(ordered, func(a, b domain.ChangeRecord[T]) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(a.Seq, b.Seq)
	})

	baseline := make(map[K]struct{}, len(original))
	for _, item := range original {
		baseline[key(item)] = struct{}{}
	}

	var out domain.ChangeSet[T]
	entries := make(map[K]*pendingEntry[T])
	for i, rec := range ordered {
		k := key(rec.Data)
		e, seen := entries[k]
		_, existed := baseline[k]
		switch rec.Kind {
		case domain.ChangeAdd:
			if seen || existed {
				out.Discarded++
				continue
			}
			entries[k] = &pendingEntry[T]{state: pendingAdd, data: rec.Data, at: i}
		case domain.ChangeUpdate:
			switch {
			case !seen && existed:
				entries[k] = &pendingEntry[T]{state: pendingUpdate, data: rec.Data, at: i}
			case seen && e.state != pendingDelete:
				e.data = rec.Data
			default:
				out.Discarded++
			}
		case domain.ChangeDelete:
			switch {
			case !seen && existed:
				entries[k] = &pendingEntry[T]{state: pendingDelete, data: rec.Data, at: i}
			case seen && e.state == pendingAdd:
				delete(entries, k)
			case seen && e.state == pendingUpdate:
				e.state, e.data, e.at = pendingDelete, rec.Data, i
			default:
				out.Discarded++
			}
		default:
			out.Discarded++
		}
	}

	var buckets [3][]*pendingEntry[T]
	for _, e := range entries {
		buckets[e.state] = append(buckets[e.state], e)
	}
	for state, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		slices.SortFunc(bucket, func(a, b *pendingEntry[T]) int { return cmp.Compare(a.at, b.at) })
		items := make([]T, 0, len(bucket))
		for _, e := range bucket {
			items = append(items, e.data)
		}
		switch pendingState(state) {
		case pendingAdd:
			out.ToAdd = items
		case pendingUpdate:
			out.ToUpdate = items
		case pendingDelete:
			out.ToDelete = items
		}
	}
	return out
}

// Apply replays changes onto items: deletions remove the matching key,
// updates replace it, additions are appended. The input slice is not modified.
func Apply[T any, K comparable](items []T, changes domain.ChangeSet[T], key func(T) K) []T {
	deleted := make(map[K]struct{}, len(changes.ToDelete))
	for _, d := range changes.ToDelete {
		deleted[key(d)] = struct{}{}
	}
	updated := make(map[K]T, len(changes.ToUpdate))
	for _, u := range changes.ToUpdate {
		updated[key(u)] = u
	}
	out := make([]T, 0, len(items)+len(changes.ToAdd))
	for _, item := range items {
		k := key(item)
		if _, ok := deleted[k]; ok {
			continue
		}
		if u, ok := updated[k]; ok {
			item = u
		}
		out = append(out, item)
	}
	return append(out, changes.ToAdd...)
}
