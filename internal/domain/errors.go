package domain

import "errors"

// Sentinel errors shared across layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")

	// ErrSaveInProgress is returned for edits, saves and discards attempted
	// while a save of the same session is running.
	ErrSaveInProgress = errors.New("save in progress")
	// ErrUnsavedChanges is returned by the navigation guard when the session
	// is dirty and the operator did not confirm discarding it.
	ErrUnsavedChanges = errors.New("unsaved changes")
	// ErrSessionNotFound is returned for unknown or evicted session handles.
	ErrSessionNotFound = errors.New("settings session not found")
	// ErrStaleEntity is returned when an edit targets an entity already
	// staged for deletion.
	ErrStaleEntity = errors.New("entity is staged for deletion")
)
