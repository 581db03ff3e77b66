package domain

import (
	"slices"
	"time"
)

// Event is the aggregate root edited on the settings screen.
// swagger:model Event
type Event struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	StartDate         time.Time  `json:"startDate"`
	EndDate           time.Time  `json:"endDate"`
	Location          string     `json:"location"`
	Description       string     `json:"description"`
	PhotoURL          string     `json:"photoUrl"`
	SocialLinks       []string   `json:"socialLinks"`
	Slug              string     `json:"slug"`
	ContactEmail      string     `json:"contactEmail"`
	ParticipantsLimit *int       `json:"participantsLimit"`
	PrimaryColor      string     `json:"primaryColor"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty"`
}

// Clone returns a deep copy of e.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	c := *e
	c.SocialLinks = slices.Clone(e.SocialLinks)
	if e.ParticipantsLimit != nil {
		v := *e.ParticipantsLimit
		c.ParticipantsLimit = &v
	}
	if e.UpdatedAt != nil {
		v := *e.UpdatedAt
		c.UpdatedAt = &v
	}
	return &c
}

// SameFields reports whether the editable fields of e and o are equal.
// ID and UpdatedAt are not compared.
func (e *Event) SameFields(o *Event) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.Name != o.Name ||
		!e.StartDate.Equal(o.StartDate) ||
		!e.EndDate.Equal(o.EndDate) ||
		e.Location != o.Location ||
		e.Description != o.Description ||
		e.PhotoURL != o.PhotoURL ||
		e.Slug != o.Slug ||
		e.ContactEmail != o.ContactEmail ||
		e.PrimaryColor != o.PrimaryColor {
		return false
	}
	if (e.ParticipantsLimit == nil) != (o.ParticipantsLimit == nil) {
		return false
	}
	if e.ParticipantsLimit != nil && *e.ParticipantsLimit != *o.ParticipantsLimit {
		return false
	}
	return slices.Equal(e.SocialLinks, o.SocialLinks)
}

// Upload is an image staged for the next event update. The bytes are opaque
// to the engine; the upstream API stores them and returns a new PhotoURL.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// EventUpdate is the body of an event-field update (PUT /events/{id}).
type EventUpdate struct {
	Event *Event
	Photo *Upload
}

// EventFieldPatch carries the fields an operator changed in the form.
// Nil pointer fields mean "don't change".
type EventFieldPatch struct {
	Name              *string    `json:"name"`
	StartDate         *time.Time `json:"startDate"`
	EndDate           *time.Time `json:"endDate"`
	Location          *string    `json:"location"`
	Description       *string    `json:"description"`
	SocialLinks       []string   `json:"socialLinks"`
	Slug              *string    `json:"slug"`
	ContactEmail      *string    `json:"contactEmail"`
	ParticipantsLimit *int       `json:"participantsLimit"`
	ClearLimit        bool       `json:"clearParticipantsLimit"`
	PrimaryColor      *string    `json:"primaryColor"`
}

// ApplyTo writes the non-nil fields of p onto e.
func (p EventFieldPatch) ApplyTo(e *Event) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.StartDate != nil {
		e.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		e.EndDate = *p.EndDate
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.SocialLinks != nil {
		e.SocialLinks = slices.Clone(p.SocialLinks)
	}
	if p.Slug != nil {
		e.Slug = *p.Slug
	}
	if p.ContactEmail != nil {
		e.ContactEmail = *p.ContactEmail
	}
	if p.ParticipantsLimit != nil {
		v := *p.ParticipantsLimit
		e.ParticipantsLimit = &v
	}
	if p.ClearLimit {
		e.ParticipantsLimit = nil
	}
	if p.PrimaryColor != nil {
		e.PrimaryColor = *p.PrimaryColor
	}
}
