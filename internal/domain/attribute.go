package domain

import (
	"encoding/json"
	"fmt"
	"slices"
)

// AttributeType is the closed set of participant attribute kinds. The
// reconciliation engine treats it as opaque payload.
type AttributeType string

const (
	AttributeText        AttributeType = "text"
	AttributeNumber      AttributeType = "number"
	AttributeEmail       AttributeType = "email"
	AttributeTel         AttributeType = "tel"
	AttributeDate        AttributeType = "date"
	AttributeCheckbox    AttributeType = "checkbox"
	AttributeSelect      AttributeType = "select"
	AttributeMultiSelect AttributeType = "multiselect"
	AttributeBlock       AttributeType = "block"
)

var attributeTypes = []AttributeType{
	AttributeText, AttributeNumber, AttributeEmail, AttributeTel, AttributeDate,
	AttributeCheckbox, AttributeSelect, AttributeMultiSelect, AttributeBlock,
}

// Valid reports whether t is one of the known attribute types.
func (t AttributeType) Valid() bool {
	return slices.Contains(attributeTypes, t)
}

// HasOptions reports whether attributes of type t carry an option list.
func (t AttributeType) HasOptions() bool {
	return t == AttributeSelect || t == AttributeMultiSelect || t == AttributeBlock
}

// UnmarshalJSON rejects unknown attribute types.
func (t *AttributeType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v := AttributeType(s)
	if !v.Valid() {
		return fmt.Errorf("unknown attribute type %q", s)
	}
	*t = v
	return nil
}

// Attribute is a custom participant field defined for an event.
// Negative IDs are temporary and only meaningful inside one editing session.
// swagger:model Attribute
type Attribute struct {
	ID              int64         `json:"id"`
	Name            string        `json:"name"`
	Slug            string        `json:"slug"`
	Type            AttributeType `json:"type"`
	Options         []string      `json:"options,omitempty"`
	ShowInList      bool          `json:"showInList"`
	Order           int           `json:"order"`
	IsSensitiveData bool          `json:"isSensitiveData"`
	Reason          string        `json:"reason,omitempty"`
}

// Key identifies the attribute inside one editing session.
func (a Attribute) Key() int64 { return a.ID }

// Temporary reports whether a has not been created upstream yet.
func (a Attribute) Temporary() bool { return a.ID < 0 }

// Clone returns a deep copy of a.
func (a Attribute) Clone() Attribute {
	out := a
	out.Options = slices.Clone(a.Options)
	return out
}
