package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"organizerdashboard/internal/domain"
	"organizerdashboard/internal/draft"
	"organizerdashboard/internal/idgen"
)

// SettingsService owns the open settings sessions and drives their saves.
type SettingsService struct {
	api        domain.EventAPI
	reconciler *Reconciler
	audit      domain.SaveAuditRepository
	email      domain.EmailService
	logger     *slog.Logger
	idleTTL    time.Duration
	now        func() time.Time
	newID      func() (string, error)

	mu       sync.Mutex
	sessions map[string]*draft.Session
}

// SettingsOption configures a SettingsService.
type SettingsOption func(*SettingsService)

// WithSettingsClock overrides the clock used for sessions and eviction.
func WithSettingsClock(now func() time.Time) SettingsOption {
	return func(s *SettingsService) { s.now = now }
}

// WithSessionIDs overrides session handle generation.
func WithSessionIDs(gen func() (string, error)) SettingsOption {
	return func(s *SettingsService) { s.newID = gen }
}

// NewSettingsService returns a SettingsService. audit and email may be nil.
func NewSettingsService(api domain.EventAPI,
	reconciler *Reconciler,
	audit domain.SaveAuditRepository,
	email domain.EmailService,
	logger *slog.Logger,
	idleTTL time.Duration,
	opts ...SettingsOption,
) *SettingsService {
	s := &SettingsService{
		api:        api,
		reconciler: reconciler,
		audit:      audit,
		email:      email,
		logger:     logger,
		idleTTL:    idleTTL,
		now:        time.Now,
		newID:      func() (string, error) { return idgen.GenerateWithPrefix("ss-") },
		sessions:   make(map[string]*draft.Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the durable state of eventID and starts a session for op.
func (s *SettingsService) Open(ctx context.Context, op *domain.Operator, eventID int64) (draft.View, error) {
	snap, err := s.load(ctx, eventID)
	if err != nil {
		return draft.View{}, err
	}
	id, err := s.newID()
	if err != nil {
		return draft.View{}, fmt.Errorf("generate session id: %w", err)
	}
	sess := draft.NewSession(id, op.ID, snap, draft.WithClock(s.now))
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	s.logger.InfoContext(ctx, "settings session opened", "session_id", id, "event_id", eventID, "operator_id", op.ID)
	return sess.View(), nil
}

// load reads the event and both owned collections.
func (s *SettingsService) load(ctx context.Context, eventID int64) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := s.reconciler.call(ctx, opLoadEvent, func(ctx context.Context) error {
		var err error
		snap.Event, err = s.api.GetEvent(ctx, eventID)
		return err
	})
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("get event: %w", mapRemote(err))
	}
	err = s.reconciler.call(ctx, opLoadOrganizers, func(ctx context.Context) error {
		var err error
		snap.CoOrganizers, err = s.api.ListOrganizers(ctx, eventID)
		return err
	})
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("list co-organizers: %w", mapRemote(err))
	}
	err = s.reconciler.call(ctx, opLoadAttributes, func(ctx context.Context) error {
		var err error
		snap.Attributes, err = s.api.ListAttributes(ctx, eventID)
		return err
	})
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("list attributes: %w", mapRemote(err))
	}
	return snap, nil
}

// mapRemote translates upstream 404/403 answers into domain sentinels while
// keeping the original error in the chain.
func mapRemote(err error) error {
	var re *domain.RemoteError
	if !errors.As(err, &re) {
		return err
	}
	switch re.StatusCode {
	case http.StatusNotFound:
		return errors.Join(domain.ErrNotFound, err)
	case http.StatusForbidden, http.StatusUnauthorized:
		return errors.Join(domain.ErrForbidden, err)
	}
	return err
}

func (s *SettingsService) session(op *domain.Operator, id string) (*draft.Session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if sess.OperatorID != op.ID {
		return nil, domain.ErrForbidden
	}
	return sess, nil
}

// Get returns the current state of a session.
func (s *SettingsService) Get(op *domain.Operator, id string) (draft.View, error) {
	sess, err := s.session(op, id)
	if err != nil {
		return draft.View{}, err
	}
	return sess.View(), nil
}

// Edit applies fn to the session and returns its new state.
func (s *SettingsService) Edit(op *domain.Operator, id string, fn func(*draft.Session) error) (draft.View, error) {
	sess, err := s.session(op, id)
	if err != nil {
		return draft.View{}, err
	}
	if err := fn(sess); err != nil {
		return draft.View{}, err
	}
	return sess.View(), nil
}

// SaveResult is what a save reports to the screen.
type SaveResult struct {
	Outcome domain.Outcome `json:"outcome"`
	Message string         `json:"message"`
	Session draft.View     `json:"session"`
}

// Save commits the session's edits. The save is detached from ctx
// cancellation: once started it runs to completion even if the caller goes
// away, and the session refuses navigation until it has.
func (s *SettingsService) Save(ctx context.Context, op *domain.Operator, id string) (SaveResult, error) {
	sess, err := s.session(op, id)
	if err != nil {
		return SaveResult{}, err
	}
	in, err := sess.BeginSave()
	if err != nil {
		return SaveResult{}, err
	}
	ctx = context.WithoutCancel(ctx)
	start := s.now()

	res := s.reconciler.Reconcile(ctx, in)

	var fresh *domain.Snapshot
	if res.Outcome.Kind() != domain.OutcomeFailure {
		snap, err := s.load(ctx, in.EventID)
		if err != nil {
			s.logger.WarnContext(ctx, "refresh after save failed, rebasing locally", "session_id", id, "err", err)
		} else {
			fresh = &snap
		}
	}
	sess.Finish(res, fresh)

	s.record(ctx, &domain.SaveAttempt{
		SessionID:      id,
		EventID:        in.EventID,
		OperatorID:     op.ID,
		Outcome:        res.Outcome.Kind(),
		FailedSections: res.Outcome.FailedSections(),
		ErrorCount:     len(res.Outcome.Errors),
		OperationCount: in.Operations(),
		DurationMS:     s.now().Sub(start).Milliseconds(),
		CreatedAt:      s.now(),
	})
	if res.Outcome.Kind() == domain.OutcomePartialSuccess {
		s.report(ctx, op, in.Draft, res.Outcome)
	}
	return SaveResult{Outcome: res.Outcome, Message: res.Outcome.Message(), Session: sess.View()}, nil
}

func (s *SettingsService) record(ctx context.Context, attempt *domain.SaveAttempt) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, attempt); err != nil {
		s.logger.ErrorContext(ctx, "record save attempt", "event_id", attempt.EventID, "err", err)
	}
}

func (s *SettingsService) report(ctx context.Context, op *domain.Operator, ev *domain.Event, outcome domain.Outcome) {
	if s.email == nil || op.Email == "" || ev == nil {
		return
	}
	var sections []string
	for _, sec := range outcome.FailedSections() {
		sections = append(sections, sec.Label())
	}
	err := s.email.SendSaveReport(ctx, &domain.SaveReportEmailData{
		Email:     op.Email,
		EventName: ev.Name,
		EventID:   ev.ID,
		Sections:  sections,
		Errors:    outcome.Errors,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "send save report", "event_id", ev.ID, "err", err)
	}
}

// Discard closes a session. Unless confirmed, a dirty session is kept and
// domain.ErrUnsavedChanges returned; a session with a save in flight is
// always kept.
func (s *SettingsService) Discard(op *domain.Operator, id string, confirmed bool) error {
	sess, err := s.session(op, id)
	if err != nil {
		return err
	}
	if err := sess.Discard(confirmed); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// History lists recent save attempts of an event, newest first. The
// operator must be able to read the event upstream.
func (s *SettingsService) History(ctx context.Context, op *domain.Operator, eventID int64, limit int) ([]*domain.SaveAttempt, error) {
	err := s.reconciler.call(ctx, opLoadEvent, func(ctx context.Context) error {
		_, err := s.api.GetEvent(ctx, eventID)
		return err
	})
	if err != nil {
		s.logger.WarnContext(ctx, "save history access denied", "event_id", eventID, "operator_id", op.ID, "err", err)
		return nil, fmt.Errorf("get event: %w", mapRemote(err))
	}
	if s.audit == nil {
		return []*domain.SaveAttempt{}, nil
	}
	attempts, err := s.audit.ListByEventID(ctx, eventID, limit)
	if err != nil {
		return nil, fmt.Errorf("list save attempts: %w", err)
	}
	return attempts, nil
}

// EvictIdle drops sessions untouched for longer than the idle TTL. Sessions
// with a save in flight are kept. It returns the number evicted.
func (s *SettingsService) EvictIdle() int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTTL)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if sess.LastActive().After(cutoff) || sess.Saving() {
			continue
		}
		delete(s.sessions, id)
		n++
	}
	return n
}

// RunEviction calls EvictIdle every interval until ctx is done.
func (s *SettingsService) RunEviction(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.EvictIdle(); n > 0 {
				s.logger.Info("evicted idle settings sessions", "count", n)
			}
		}
	}
}
