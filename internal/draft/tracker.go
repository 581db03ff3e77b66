package draft

import "organizerdashboard/internal/domain"

// Tracker holds the session's dirty flag and guards navigation away from it.
type Tracker struct {
	dirty  bool
	saving bool
}

// Observe recomputes the flag: the form diverges from its last saved
// defaults, a photo is staged, or any change log has records.
func (t *Tracker) Observe(draft, saved *domain.Event, photoStaged bool, pendingRecords int) {
	t.dirty = !draft.SameFields(saved) || photoStaged || pendingRecords > 0
}

// IsDirty reports whether the session has unsaved edits.
func (t *Tracker) IsDirty() bool { return t.dirty }

// Saving reports whether a save is in flight.
func (t *Tracker) Saving() bool { return t.saving }

// Clear resets the flag after a fully successful save.
func (t *Tracker) Clear() { t.dirty = false }

// Guard decides whether the operator may leave the screen. Leaving is
// refused while a save is running, and while dirty unless confirmed.
func (t *Tracker) Guard(confirmed bool) error {
	if t.saving {
		return domain.ErrSaveInProgress
	}
	if t.dirty && !confirmed {
		return domain.ErrUnsavedChanges
	}
	return nil
}
