package draft

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"organizerdashboard/internal/domain"
)

// Session is one operator's editing session of an event's settings. It owns
// the working copy, the change logs of both owned collections, the identity
// allocator and the dirty tracker. All methods are safe for concurrent use;
// edits are refused while a save is in flight so the save sees a stable
// snapshot.
type Session struct {
	ID         string
	EventID    int64
	OperatorID string

	mu           sync.Mutex
	saved        domain.Snapshot
	store        *Store
	coOrganizers *Log[domain.CoOrganizer]
	attributes   *Log[domain.Attribute]
	ids          Allocator
	dirty        Tracker
	now          func() time.Time
	lastActive   time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock used for change record timestamps and idle tracking.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession seeds a session from the durable snapshot with empty logs.
func NewSession(id, operatorID string, snap domain.Snapshot, opts ...Option) *Session {
	s := &Session{ID: id, OperatorID: operatorID, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if snap.Event != nil {
		s.EventID = snap.Event.ID
	}
	s.coOrganizers = NewLog[domain.CoOrganizer](s.now)
	s.attributes = NewLog[domain.Attribute](s.now)
	s.reseed(snap)
	s.lastActive = s.now()
	return s
}

// PendingChanges counts raw change records per collection.
type PendingChanges struct {
	CoOrganizers int `json:"coOrganizers"`
	Attributes   int `json:"attributes"`
}

// View is a read-only copy of the session state for rendering.
type View struct {
	SessionID      string          `json:"sessionId"`
	EventID        int64           `json:"eventId"`
	Draft          domain.Snapshot `json:"draft"`
	Saved          domain.Snapshot `json:"saved"`
	PhotoStaged    bool            `json:"photoStaged"`
	IsDirty        bool            `json:"isDirty"`
	Saving         bool            `json:"saving"`
	PendingChanges PendingChanges  `json:"pendingChanges"`
}

// View returns the current state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		SessionID:   s.ID,
		EventID:     s.EventID,
		Draft:       s.store.Snapshot(),
		Saved:       s.saved.Clone(),
		PhotoStaged: s.store.photo != nil,
		IsDirty:     s.dirty.IsDirty(),
		Saving:      s.dirty.Saving(),
		PendingChanges: PendingChanges{
			CoOrganizers: s.coOrganizers.Len(),
			Attributes:   s.attributes.Len(),
		},
	}
}

// IsDirty reports whether the session has unsaved edits.
func (s *Session) IsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty.IsDirty()
}

// Saving reports whether a save is in flight.
func (s *Session) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty.Saving()
}

// LastActive is the time of the last call that touched the session.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// edit runs fn under the lock unless a save is in flight, then refreshes the
// dirty flag.
func (s *Session) edit(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = s.now()
	if s.dirty.Saving() {
		return domain.ErrSaveInProgress
	}
	if err := fn(); err != nil {
		return err
	}
	s.observe()
	return nil
}

func (s *Session) observe() {
	s.dirty.Observe(s.store.event, s.saved.Event, s.store.photo != nil, s.coOrganizers.Len()+s.attributes.Len())
}

// EditEvent applies changed form fields to the draft event.
func (s *Session) EditEvent(patch domain.EventFieldPatch) error {
	return s.edit(func() error {
		patch.ApplyTo(s.store.event)
		return nil
	})
}

// SetPhoto stages an image for the next event update. A nil upload unstages it.
func (s *Session) SetPhoto(upload *domain.Upload) error {
	return s.edit(func() error {
		s.store.photo = upload
		return nil
	})
}

// AddCoOrganizer invites email with the given permissions. Re-adding a saved
// co-organizer staged for removal cancels the removal and updates their
// permissions instead.
func (s *Session) AddCoOrganizer(email string, permissions []domain.Permission) error {
	return s.edit(func() error {
		email = domain.NormalizeEmail(email)
		if email == "" {
			return fmt.Errorf("co-organizer email is required: %w", domain.ErrInvalidInput)
		}
		if s.store.coOrganizerIndex(email) >= 0 {
			return fmt.Errorf("co-organizer %s already exists: %w", email, domain.ErrInvalidInput)
		}
		if saved, ok := s.savedCoOrganizer(email); ok {
			s.restoreCoOrganizer(saved, permissions)
			return nil
		}
		c := domain.CoOrganizer{Email: email, Permissions: slices.Clone(permissions)}
		s.store.coOrganizers = append(s.store.coOrganizers, c)
		s.coOrganizers.Append(domain.ChangeAdd, c.Clone())
		return nil
	})
}

// UpdateCoOrganizer replaces the permissions of the co-organizer with email.
func (s *Session) UpdateCoOrganizer(email string, permissions []domain.Permission) error {
	return s.edit(func() error {
		i, err := s.findCoOrganizer(email)
		if err != nil {
			return err
		}
		s.store.coOrganizers[i].Permissions = slices.Clone(permissions)
		s.coOrganizers.Append(domain.ChangeUpdate, s.store.coOrganizers[i].Clone())
		return nil
	})
}

// RemoveCoOrganizer stages the co-organizer with email for removal.
func (s *Session) RemoveCoOrganizer(email string) error {
	return s.edit(func() error {
		i, err := s.findCoOrganizer(email)
		if err != nil {
			return err
		}
		c := s.store.coOrganizers[i]
		s.store.coOrganizers = slices.Delete(s.store.coOrganizers, i, i+1)
		s.coOrganizers.Append(domain.ChangeDelete, c.Clone())
		return nil
	})
}

// savedCoOrganizer returns the durable co-organizer with email, if any.
func (s *Session) savedCoOrganizer(email string) (domain.CoOrganizer, bool) {
	for _, c := range s.saved.CoOrganizers {
		if c.ID != nil && domain.NormalizeEmail(c.Email) == email {
			return c.Clone(), true
		}
	}
	return domain.CoOrganizer{}, false
}

// restoreCoOrganizer un-stages the removal of saved and records the new
// permissions as an update of the durable entry.
func (s *Session) restoreCoOrganizer(saved domain.CoOrganizer, permissions []domain.Permission) {
	key := saved.Key()
	s.coOrganizers.retract(func(rec domain.ChangeRecord[domain.CoOrganizer]) bool {
		return rec.Kind == domain.ChangeDelete && rec.Data.Key() == key
	})
	saved.Permissions = slices.Clone(permissions)
	s.store.coOrganizers = append(s.store.coOrganizers, saved)
	s.coOrganizers.Append(domain.ChangeUpdate, saved.Clone())
}

func (s *Session) findCoOrganizer(email string) (int, error) {
	if i := s.store.coOrganizerIndex(email); i >= 0 {
		return i, nil
	}
	email = domain.NormalizeEmail(email)
	for _, c := range s.saved.CoOrganizers {
		if domain.NormalizeEmail(c.Email) == email {
			return -1, fmt.Errorf("co-organizer %s: %w", email, domain.ErrStaleEntity)
		}
	}
	return -1, fmt.Errorf("co-organizer %s: %w", email, domain.ErrNotFound)
}

// AddAttribute appends a new attribute with a temporary id and returns it.
func (s *Session) AddAttribute(attr domain.Attribute) (domain.Attribute, error) {
	var out domain.Attribute
	err := s.edit(func() error {
		if !attr.Type.Valid() {
			return fmt.Errorf("attribute type %q: %w", attr.Type, domain.ErrInvalidInput)
		}
		attr = attr.Clone()
		attr.ID = s.ids.Allocate()
		attr.Order = len(s.store.attributes)
		s.store.attributes = append(s.store.attributes, attr)
		s.attributes.Append(domain.ChangeAdd, attr.Clone())
		out = attr.Clone()
		return nil
	})
	return out, err
}

// UpdateAttribute replaces the attribute with attr.ID. Its position is kept;
// use MoveAttribute to reorder.
func (s *Session) UpdateAttribute(attr domain.Attribute) error {
	return s.edit(func() error {
		i, err := s.findAttribute(attr.ID)
		if err != nil {
			return err
		}
		if !attr.Type.Valid() {
			return fmt.Errorf("attribute type %q: %w", attr.Type, domain.ErrInvalidInput)
		}
		attr = attr.Clone()
		attr.Order = s.store.attributes[i].Order
		s.store.attributes[i] = attr
		s.attributes.Append(domain.ChangeUpdate, attr.Clone())
		return nil
	})
}

// RemoveAttribute stages the attribute with id for removal.
func (s *Session) RemoveAttribute(id int64) error {
	return s.edit(func() error {
		i, err := s.findAttribute(id)
		if err != nil {
			return err
		}
		a := s.store.attributes[i]
		s.store.attributes = slices.Delete(s.store.attributes, i, i+1)
		s.attributes.Append(domain.ChangeDelete, a.Clone())
		return nil
	})
}

// MoveAttribute moves the attribute with id to position index and rewrites
// the order of every attribute whose position changed.
func (s *Session) MoveAttribute(id int64, index int) error {
	return s.edit(func() error {
		i, err := s.findAttribute(id)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(s.store.attributes) {
			return fmt.Errorf("position %d out of range: %w", index, domain.ErrInvalidInput)
		}
		a := s.store.attributes[i]
		attrs := slices.Delete(s.store.attributes, i, i+1)
		attrs = slices.Insert(attrs, index, a)
		for pos := range attrs {
			if attrs[pos].Order == pos {
				continue
			}
			attrs[pos].Order = pos
			s.attributes.Append(domain.ChangeUpdate, attrs[pos].Clone())
		}
		s.store.attributes = attrs
		return nil
	})
}

func (s *Session) findAttribute(id int64) (int, error) {
	if i := s.store.attributeIndex(id); i >= 0 {
		return i, nil
	}
	for _, a := range s.saved.Attributes {
		if a.ID == id {
			return -1, fmt.Errorf("attribute %d: %w", id, domain.ErrStaleEntity)
		}
	}
	return -1, fmt.Errorf("attribute %d: %w", id, domain.ErrNotFound)
}

// BeginSave collapses both change logs and returns the immutable input of a
// save. Until Finish is called the session refuses edits, saves and discards.
func (s *Session) BeginSave() (domain.ReconcileInput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = s.now()
	if s.dirty.Saving() {
		return domain.ReconcileInput{}, domain.ErrSaveInProgress
	}
	s.dirty.saving = true
	in := domain.ReconcileInput{
		EventID:      s.EventID,
		Original:     s.saved.Event.Clone(),
		Draft:        s.store.event.Clone(),
		CoOrganizers: Collapse(s.coOrganizers.Records(), s.saved.CoOrganizers, coOrganizerKey),
		Attributes:   Collapse(s.attributes.Records(), s.saved.Attributes, attributeKey),
	}
	if p := s.store.photo; p != nil {
		c := *p
		c.Data = slices.Clone(p.Data)
		in.Photo = &c
	}
	return in, nil
}

// Finish applies the result of the save started by BeginSave.
//
// On full success the session is re-seeded from fresh (or, when fresh is nil,
// from the baseline plus the applied operations) and the logs are cleared.
// On partial success the baseline moves to what landed and the logs are
// replaced by the operations still pending, so the next save retries only
// those. On failure nothing changes.
func (s *Session) Finish(res domain.ReconcileResult, fresh *domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty.saving = false
	s.lastActive = s.now()

	switch res.Outcome.Kind() {
	case domain.OutcomeSuccess:
		base := s.rebase(res)
		if fresh != nil {
			base = fresh.Clone()
		}
		s.reseed(base)
		s.dirty.Clear()
	case domain.OutcomePartialSuccess:
		base := s.rebase(res)
		if fresh != nil {
			base = fresh.Clone()
		}
		s.reseed(base)
		replay(s.coOrganizers, res.CoOrganizers.Pending)
		replay(s.attributes, res.Attributes.Pending)
		s.store.coOrganizers = Apply(s.store.coOrganizers, res.CoOrganizers.Pending, coOrganizerKey)
		s.store.attributes = Apply(s.store.attributes, res.Attributes.Pending, attributeKey)
		sortAttributes(s.store.attributes)
		s.observe()
	default:
		s.observe()
	}
}

// rebase returns the baseline with the applied operations of res replayed.
func (s *Session) rebase(res domain.ReconcileResult) domain.Snapshot {
	base := s.saved.Clone()
	if res.Event != nil {
		base.Event = res.Event.Clone()
	}
	base.CoOrganizers = Apply(base.CoOrganizers, res.CoOrganizers.Applied, coOrganizerKey)
	base.Attributes = Apply(base.Attributes, res.Attributes.Applied, attributeKey)
	return base
}

func (s *Session) reseed(snap domain.Snapshot) {
	s.saved = snap.Clone()
	sortAttributes(s.saved.Attributes)
	s.store = newStore(snap)
	s.coOrganizers.Reset()
	s.attributes.Reset()
}

func replay[T any](log *Log[T], changes domain.ChangeSet[T]) {
	for _, a := range changes.ToAdd {
		log.Append(domain.ChangeAdd, a)
	}
	for _, u := range changes.ToUpdate {
		log.Append(domain.ChangeUpdate, u)
	}
	for _, d := range changes.ToDelete {
		log.Append(domain.ChangeDelete, d)
	}
}

// Discard drops all unsaved edits. It is the navigation guard: it refuses
// while a save is running, and while dirty unless confirmed.
func (s *Session) Discard(confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = s.now()
	if err := s.dirty.Guard(confirmed); err != nil {
		return err
	}
	s.reseed(s.saved)
	s.dirty.Clear()
	return nil
}
