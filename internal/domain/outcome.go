package domain

import (
	"slices"
	"strings"
)

// Section is an independently failable resource group of a save.
type Section string

const (
	SectionEvent        Section = "event"
	SectionCoOrganizers Section = "coOrganizers"
	SectionAttributes   Section = "attributes"
	SectionOther        Section = "other"
)

// blocking reports whether an error in s means nothing downstream was saved.
func (s Section) blocking() bool {
	return s == SectionEvent || s == SectionOther
}

// SectionError is one failed remote operation attributed to a section.
// swagger:model SectionError
type SectionError struct {
	Message string  `json:"message"`
	Section Section `json:"section"`
}

// OutcomeKind is the user-facing classification of a save.
type OutcomeKind string

const (
	OutcomeSuccess        OutcomeKind = "success"
	OutcomePartialSuccess OutcomeKind = "partial"
	OutcomeFailure        OutcomeKind = "failure"
)

// Outcome is what a save reports back to the screen. Success is true only
// when Errors is empty.
// swagger:model Outcome
type Outcome struct {
	Success bool           `json:"success"`
	Errors  []SectionError `json:"errors,omitempty"`
}

// Kind classifies o: any event-level or "other" error is a full failure; only
// collection errors is a partial success.
func (o Outcome) Kind() OutcomeKind {
	if len(o.Errors) == 0 {
		return OutcomeSuccess
	}
	for _, e := range o.Errors {
		if e.Section.blocking() {
			return OutcomeFailure
		}
	}
	return OutcomePartialSuccess
}

// FailedSections lists the distinct sections with errors, in first-seen order.
func (o Outcome) FailedSections() []Section {
	var out []Section
	for _, e := range o.Errors {
		if !slices.Contains(out, e.Section) {
			out = append(out, e.Section)
		}
	}
	return out
}

var sectionLabels = map[Section]string{
	SectionCoOrganizers: "co-organizers",
	SectionAttributes:   "attributes",
}

// Label is the name of s shown to operators.
func (s Section) Label() string {
	if l, ok := sectionLabels[s]; ok {
		return l
	}
	return string(s)
}

// Message renders the single line shown to the operator.
func (o Outcome) Message() string {
	switch o.Kind() {
	case OutcomeSuccess:
		return "Event settings saved."
	case OutcomeFailure:
		for _, e := range o.Errors {
			if e.Section.blocking() {
				return "Event settings could not be saved: " + e.Message
			}
		}
	}
	var names []string
	for _, s := range o.FailedSections() {
		names = append(names, s.Label())
	}
	return "Event saved, but changes to " + strings.Join(names, " and ") + " could not be saved. Please review and save them again."
}
