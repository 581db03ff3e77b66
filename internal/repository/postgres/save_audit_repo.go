package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"organizerdashboard/internal/domain"
)

const defaultHistoryLimit = 20

type saveAuditRepository struct {
	DB *sql.DB
}

// NewSaveAuditRepository returns a SaveAuditRepository over the save_attempts table.
func NewSaveAuditRepository(db *sql.DB) domain.SaveAuditRepository {
	return &saveAuditRepository{
		DB: db,
	}
}

func (r *saveAuditRepository) Record(ctx context.Context, a *domain.SaveAttempt) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	sections := make([]string, 0, len(a.FailedSections))
	for _, s := range a.FailedSections {
		sections = append(sections, string(s))
	}
	query := `
		INSERT INTO save_attempts (session_id, event_id, operator_id, outcome, failed_sections, error_count, operation_count, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		a.SessionID, a.EventID, a.OperatorID, string(a.Outcome), pq.Array(sections),
		a.ErrorCount, a.OperationCount, a.DurationMS, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert save attempt: %w", err)
	}
	return nil
}

func (r *saveAuditRepository) ListByEventID(ctx context.Context, eventID int64, limit int) ([]*domain.SaveAttempt, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	query := `
		SELECT id, session_id, event_id, operator_id, outcome, failed_sections, error_count, operation_count, duration_ms, created_at
		FROM save_attempts
		WHERE event_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.SaveAttempt{}
	for rows.Next() {
		a := &domain.SaveAttempt{}
		var outcome string
		var sections []string
		if err := rows.Scan(&a.ID, &a.SessionID, &a.EventID, &a.OperatorID, &outcome, pq.Array(&sections),
			&a.ErrorCount, &a.OperationCount, &a.DurationMS, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Outcome = domain.OutcomeKind(outcome)
		for _, s := range sections {
			a.FailedSections = append(a.FailedSections, domain.Section(s))
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
