package draft

import (
	"cmp"
	"slices"

	"organizerdashboard/internal/domain"
)

// Store is the working copy rendered by the settings form.
type Store struct {
	event        *domain.Event
	coOrganizers []domain.CoOrganizer
	attributes   []domain.Attribute
	photo        *domain.Upload
}

func newStore(snap domain.Snapshot) *Store {
	c := snap.Clone()
	sortAttributes(c.Attributes)
	return &Store{event: c.Event, coOrganizers: c.CoOrganizers, attributes: c.Attributes}
}

// Snapshot returns a deep copy of the working copy.
func (s *Store) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Event:        s.event,
		CoOrganizers: s.coOrganizers,
		Attributes:   s.attributes,
	}.Clone()
}

func (s *Store) coOrganizerIndex(email string) int {
	email = domain.NormalizeEmail(email)
	return slices.IndexFunc(s.coOrganizers, func(c domain.CoOrganizer) bool {
		return domain.NormalizeEmail(c.Email) == email
	})
}

func (s *Store) attributeIndex(id int64) int {
	return slices.IndexFunc(s.attributes, func(a domain.Attribute) bool { return a.ID == id })
}

func sortAttributes(attrs []domain.Attribute) {
	slices.SortStableFunc(attrs, func(a, b domain.Attribute) int { return cmp.Compare(a.Order, b.Order) })
}

func coOrganizerKey(c domain.CoOrganizer) string { return c.Key() }

func attributeKey(a domain.Attribute) int64 { return a.Key() }
