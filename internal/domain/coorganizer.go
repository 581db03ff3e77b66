package domain

import (
	"slices"
	"strconv"
	"strings"
)

// Permission is a grant a co-organizer holds on an event.
// swagger:model Permission
type Permission struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// CoOrganizer is an operator invited to help manage an event.
// ID is nil until the upstream store has created the co-organizer.
// swagger:model CoOrganizer
type CoOrganizer struct {
	ID          *int64       `json:"id"`
	Email       string       `json:"email"`
	Permissions []Permission `json:"permissions"`
}

// Key identifies the co-organizer inside one editing session: the durable
// id once known, otherwise the normalized email.
func (c CoOrganizer) Key() string {
	if c.ID != nil {
		return "id:" + strconv.FormatInt(*c.ID, 10)
	}
	return "email:" + NormalizeEmail(c.Email)
}

// PermissionIDs returns the permission ids in the order they were granted.
func (c CoOrganizer) PermissionIDs() []int64 {
	ids := make([]int64, 0, len(c.Permissions))
	for _, p := range c.Permissions {
		ids = append(ids, p.ID)
	}
	return ids
}

// Clone returns a deep copy of c.
func (c CoOrganizer) Clone() CoOrganizer {
	out := c
	if c.ID != nil {
		id := *c.ID
		out.ID = &id
	}
	out.Permissions = slices.Clone(c.Permissions)
	return out
}

// NormalizeEmail lowercases and trims an email for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
