package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organizerdashboard/internal/domain"
)

func TestSaveAuditRepository_Record(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr bool
	}{
		{
			name: "inserts and returns id",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO save_attempts`).
					WithArgs("ss-1", int64(7), "op-1", "partial", pq.Array([]string{"coOrganizers"}), 1, 3, int64(120), at).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
			},
			wantID: 42,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO save_attempts`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)

			a := &domain.SaveAttempt{
				SessionID:      "ss-1",
				EventID:        7,
				OperatorID:     "op-1",
				Outcome:        domain.OutcomePartialSuccess,
				FailedSections: []domain.Section{domain.SectionCoOrganizers},
				ErrorCount:     1,
				OperationCount: 3,
				DurationMS:     120,
				CreatedAt:      at,
			}
			err = NewSaveAuditRepository(db).Record(ctx, a)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, a.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSaveAuditRepository_ListByEventID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cols := []string{"id", "session_id", "event_id", "operator_id", "outcome", "failed_sections", "error_count", "operation_count", "duration_ms", "created_at"}
	mock.ExpectQuery(`SELECT (.+) FROM save_attempts WHERE event_id = \$1 ORDER BY created_at DESC, id DESC LIMIT \$2`).
		WithArgs(int64(7), defaultHistoryLimit).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(2), "ss-1", int64(7), "op-1", "success", "{}", 0, 1, int64(40), at).
			AddRow(int64(1), "ss-1", int64(7), "op-1", "partial", "{coOrganizers,attributes}", 2, 4, int64(90), at.Add(-time.Minute)))

	got, err := NewSaveAuditRepository(db).ListByEventID(context.Background(), 7, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.OutcomeSuccess, got[0].Outcome)
	assert.Empty(t, got[0].FailedSections)
	assert.Equal(t, []domain.Section{domain.SectionCoOrganizers, domain.SectionAttributes}, got[1].FailedSections)
	require.NoError(t, mock.ExpectationsWereMet())
}
