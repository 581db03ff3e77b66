package domain

import (
	"context"
	"fmt"
	"strings"
)

// EventAPI is the upstream event REST API the dashboard edits through.
// Every call is independent; there is no cross-call transaction.
type EventAPI interface {
	GetEvent(ctx context.Context, eventID int64) (*Event, error)
	CreateEvent(ctx context.Context, update EventUpdate) (*Event, error)
	UpdateEvent(ctx context.Context, eventID int64, update EventUpdate) (*Event, error)

	ListOrganizers(ctx context.Context, eventID int64) ([]CoOrganizer, error)
	CreateOrganizer(ctx context.Context, eventID int64, email string, permissionIDs []int64) (*CoOrganizer, error)
	ReplaceOrganizerPermissions(ctx context.Context, eventID, organizerID int64, permissionIDs []int64) error
	DeleteOrganizer(ctx context.Context, eventID, organizerID int64) error

	ListAttributes(ctx context.Context, eventID int64) ([]Attribute, error)
	CreateAttribute(ctx context.Context, eventID int64, attr Attribute) (*Attribute, error)
	UpdateAttribute(ctx context.Context, eventID int64, attr Attribute) error
	DeleteAttribute(ctx context.Context, eventID, attributeID int64) error
}

// Snapshot is the durable state of an event and its owned collections as
// last read from or written to the upstream API.
type Snapshot struct {
	Event        *Event        `json:"event"`
	CoOrganizers []CoOrganizer `json:"coOrganizers"`
	Attributes   []Attribute   `json:"attributes"`
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Event: s.Event.Clone()}
	out.CoOrganizers = make([]CoOrganizer, 0, len(s.CoOrganizers))
	for _, c := range s.CoOrganizers {
		out.CoOrganizers = append(out.CoOrganizers, c.Clone())
	}
	out.Attributes = make([]Attribute, 0, len(s.Attributes))
	for _, a := range s.Attributes {
		out.Attributes = append(out.Attributes, a.Clone())
	}
	return out
}

// RemoteError is a non-2xx answer from the upstream API. Errors that are not
// a RemoteError (dial, timeout, undecodable body) are transport errors.
type RemoteError struct {
	StatusCode int
	Messages   []string
}

func (e *RemoteError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
}
