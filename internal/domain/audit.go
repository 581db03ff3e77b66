package domain

import (
	"context"
	"time"
)

// SaveAttempt is one entry of the save audit journal.
// swagger:model SaveAttempt
type SaveAttempt struct {
	ID             int64       `json:"id"`
	SessionID      string      `json:"sessionId"`
	EventID        int64       `json:"eventId"`
	OperatorID     string      `json:"operatorId"`
	Outcome        OutcomeKind `json:"outcome"`
	FailedSections []Section   `json:"failedSections"`
	ErrorCount     int         `json:"errorCount"`
	OperationCount int         `json:"operationCount"`
	DurationMS     int64       `json:"durationMs"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// SaveAuditRepository stores save attempts.
type SaveAuditRepository interface {
	Record(ctx context.Context, attempt *SaveAttempt) error
	ListByEventID(ctx context.Context, eventID int64, limit int) ([]*SaveAttempt, error)
}

// ReconcileObserver receives per-call and per-save measurements.
type ReconcileObserver interface {
	ObserveCall(operation string, err error)
	ObserveSave(eventID int64, outcome Outcome, duration time.Duration)
}
