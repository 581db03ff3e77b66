package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"organizerdashboard/internal/domain"
	"organizerdashboard/internal/draft"
)

// WizardInput is everything collected by the create-event wizard.
type WizardInput struct {
	Event        *domain.Event
	Photo        *domain.Upload
	CoOrganizers []domain.CoOrganizer
	Attributes   []domain.Attribute
}

// WizardService creates an event with its co-organizers and attributes.
type WizardService struct {
	reconciler *Reconciler
	audit      domain.SaveAuditRepository
	logger     *slog.Logger
}

// NewWizardService returns a WizardService. audit may be nil.
func NewWizardService(reconciler *Reconciler, audit domain.SaveAuditRepository, logger *slog.Logger) *WizardService {
	return &WizardService{reconciler: reconciler, audit: audit, logger: logger}
}

// Create runs the wizard's save: the event first, then every co-organizer
// and attribute as an addition. The event is only reported saved when the
// first step succeeded; collection failures make it a partial success.
func (w *WizardService) Create(ctx context.Context, op *domain.Operator, in WizardInput) (domain.ReconcileResult, error) {
	if in.Event == nil || strings.TrimSpace(in.Event.Name) == "" {
		return domain.ReconcileResult{}, fmt.Errorf("event name is required: %w", domain.ErrInvalidInput)
	}

	seen := make(map[string]bool, len(in.CoOrganizers))
	coOrganizers := make([]domain.CoOrganizer, 0, len(in.CoOrganizers))
	for _, c := range in.CoOrganizers {
		email := domain.NormalizeEmail(c.Email)
		if email == "" || seen[email] {
			return domain.ReconcileResult{}, fmt.Errorf("co-organizer %q is empty or repeated: %w", c.Email, domain.ErrInvalidInput)
		}
		seen[email] = true
		c = c.Clone()
		c.ID, c.Email = nil, email
		coOrganizers = append(coOrganizers, c)
	}

	var ids draft.Allocator
	attributes := make([]domain.Attribute, 0, len(in.Attributes))
	for i, a := range in.Attributes {
		if !a.Type.Valid() {
			return domain.ReconcileResult{}, fmt.Errorf("attribute type %q: %w", a.Type, domain.ErrInvalidInput)
		}
		a = a.Clone()
		a.ID = ids.Allocate()
		a.Order = i
		attributes = append(attributes, a)
	}

	ctx = context.WithoutCancel(ctx)
	ev := in.Event.Clone()
	ev.ID = 0
	res := w.reconciler.CreateAndPopulate(ctx, domain.EventUpdate{Event: ev, Photo: in.Photo}, coOrganizers, attributes)

	if w.audit != nil {
		attempt := &domain.SaveAttempt{
			SessionID:      "wizard",
			OperatorID:     op.ID,
			Outcome:        res.Outcome.Kind(),
			FailedSections: res.Outcome.FailedSections(),
			ErrorCount:     len(res.Outcome.Errors),
			OperationCount: 1 + len(coOrganizers) + len(attributes),
		}
		if res.Event != nil {
			attempt.EventID = res.Event.ID
		}
		if err := w.audit.Record(ctx, attempt); err != nil {
			w.logger.ErrorContext(ctx, "record wizard attempt", "err", err)
		}
	}
	return res, nil
}
