package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"organizerdashboard/internal/domain"
)

// fakeEventAPI is an in-memory EventAPI. errs injects a failure for an
// operation ("update_event", "delete_organizer:100", "create_attribute:Dieta").
type fakeEventAPI struct {
	mu           sync.Mutex
	event        *domain.Event
	coOrganizers []domain.CoOrganizer
	attributes   []domain.Attribute
	nextID       int64
	errs         map[string]error
	calls        []string
	tokens       []string
	// blankCreates makes CreateAttribute answer with an empty record.
	blankCreates bool
}

func newFakeEventAPI() *fakeEventAPI {
	id100 := int64(100)
	return &fakeEventAPI{
		event: &domain.Event{ID: 7, Name: "Konferencja", Slug: "konf"},
		coOrganizers: []domain.CoOrganizer{
			{ID: &id100, Email: "ala@example.com", Permissions: []domain.Permission{{ID: 1}}},
		},
		attributes: []domain.Attribute{
			{ID: 1, Name: "Wiek", Type: domain.AttributeNumber, Order: 0},
			{ID: 2, Name: "Miasto", Type: domain.AttributeText, Order: 1},
		},
		nextID: 500,
		errs:   map[string]error{},
	}
}

func (f *fakeEventAPI) record(ctx context.Context, name string, keys ...string) error {
	f.calls = append(f.calls, name)
	if op, ok := domain.OperatorFromContext(ctx); ok {
		f.tokens = append(f.tokens, op.Token)
	}
	if err := f.errs[name]; err != nil {
		return err
	}
	for _, k := range keys {
		if err := f.errs[name+":"+k]; err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeEventAPI) callsTo(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeEventAPI) GetEvent(ctx context.Context, eventID int64) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx, opLoadEvent); err != nil {
		return nil, err
	}
	if f.event == nil || f.event.ID != eventID {
		return nil, &domain.RemoteError{StatusCode: 404, Messages: []string{"Event not found"}}
	}
	return f.event.Clone(), nil
}

func (f *fakeEventAPI) CreateEvent(ctx context.Context, update domain.EventUpdate) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx, opCreateEvent); err != nil {
		return nil, err
	}
	ev := update.Event.Clone()
	ev.ID = 8
	f.event = ev
	f.coOrganizers, f.attributes = nil, nil
	return ev.Clone(), nil
}

func (f *fakeEventAPI) UpdateEvent(ctx context.Context, eventID int64, update domain.EventUpdate) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx, opUpdateEvent); err != nil {
		return nil, err
	}
	ev := update.Event.Clone()
	ev.ID = eventID
	if update.Photo != nil {
		ev.PhotoURL = "https://cdn.example.com/" + update.Photo.Filename
	}
	f.event = ev
	return ev.Clone(), nil
}

func (f *fakeEventAPI) ListOrganizers(ctx context.Context, eventID int64) ([]domain.CoOrganizer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx, opLoadOrganizers); err != nil {
		return nil, err
	}
	out := make([]domain.CoOrganizer, 0, len(f.coOrganizers))
	for _, c := range f.coOrganizers {
		out = append(out, c.Clone())
	}
	return out, nil
}

func (f *fakeEventAPI) CreateOrganizer(ctx context.Context, eventID int64, email string, permissionIDs []int64) (*domain.CoOrganizer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx, opCreateOrganizer, email); err != nil {
		return nil, err
	}
	id := f.nextID
	f.nextID++
	c := domain.CoOrganizer{ID: &id, Email: email}
	for _, p := range permissionIDs {
		c.Permissions = append(c.Permissions, domain.Permission{ID: p})
	}
	f.coOrganizers = append(f.coOrganizers, c)
	out := c.Clone()
	return &out, nil
}

func (f *fakeEventAPI) ReplaceOrganizerPermissions(ctx context.Context, eventID, organizerID int64, permissionIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx, opUpdateOrganizer, fmt.Sprint(organizerID)); err != nil {
		return err
	}
	for i, c := range f.coOrganizers {
		if c.ID != nil && *c.ID == organizerID {
			f.coOrganizers[i].Permissions = nil
			for _, p := range permissionIDs {
				f.coOrganizers[i].Permissions = append(f.coOrganizers[i].Permissions, domain.Permission{ID: p})
			}
			return nil
		}
	}
	return &domain.RemoteError{StatusCode: 404}
}

func (f *fakeEventAPI) DeleteOrganizer(ctx context.Context, eventID, organizerID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx, opDeleteOrganizer, fmt.Sprint(organizerID)); err != nil {
		return err
	}
	f.coOrganizers = slices.DeleteFunc(f.coOrganizers, func(c domain.CoOrganizer) bool {
		return c.ID != nil && *c.ID == organizerID
	})
	return nil
}

func (f *fakeEventAPI) ListAttributes(ctx context.Context, eventID int64) ([]domain.Attribute, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx, opLoadAttributes); err != nil {
		return nil, err
	}
	out := make([]domain.Attribute, 0, len(f.attributes))
	for _, a := range f.attributes {
		out = append(out, a.Clone())
	}
	return out, nil
}

func (f *fakeEventAPI) CreateAttribute(ctx context.Context, eventID int64, attr domain.Attribute) (*domain.Attribute, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx, opCreateAttribute, attr.Name); err != nil {
		return nil, err
	}
	if f.blankCreates {
		return &domain.Attribute{}, nil
	}
	a := attr.Clone()
	a.ID = f.nextID
	f.nextID++
	f.attributes = append(f.attributes, a)
	out := a.Clone()
	return &out, nil
}

func (f *fakeEventAPI) UpdateAttribute(ctx context.Context, eventID int64, attr domain.Attribute) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx, opUpdateAttribute, fmt.Sprint(attr.ID)); err != nil {
		return err
	}
	for i, a := range f.attributes {
		if a.ID == attr.ID {
			f.attributes[i] = attr.Clone()
			return nil
		}
	}
	return &domain.RemoteError{StatusCode: 404}
}

func (f *fakeEventAPI) DeleteAttribute(ctx context.Context, eventID, attributeID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx, opDeleteAttribute, fmt.Sprint(attributeID)); err != nil {
		return err
	}
	f.attributes = slices.DeleteFunc(f.attributes, func(a domain.Attribute) bool { return a.ID == attributeID })
	return nil
}

// recordingObserver captures what the reconciler reports.
type recordingObserver struct {
	mu       sync.Mutex
	calls    map[string]int
	failures map[string]int
	outcomes []domain.OutcomeKind
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{calls: map[string]int{}, failures: map[string]int{}}
}

func (o *recordingObserver) ObserveCall(operation string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls[operation]++
	if err != nil {
		o.failures[operation]++
	}
}

func (o *recordingObserver) ObserveSave(_ int64, outcome domain.Outcome, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome.Kind())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
