package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"organizerdashboard/internal/domain"
	"organizerdashboard/internal/draft"
)

// Remote operation names reported to the observer.
const (
	opCreateEvent     = "create_event"
	opUpdateEvent     = "update_event"
	opCreateOrganizer = "create_organizer"
	opUpdateOrganizer = "update_organizer"
	opDeleteOrganizer = "delete_organizer"
	opCreateAttribute = "create_attribute"
	opUpdateAttribute = "update_attribute"
	opDeleteAttribute = "delete_attribute"
	opLoadEvent       = "get_event"
	opLoadOrganizers  = "list_organizers"
	opLoadAttributes  = "list_attributes"
)

const defaultCallTimeout = 30 * time.Second

// Reconciler commits a collapsed draft to the upstream API. The event update
// runs first and gates everything else; co-organizer and attribute operations
// then run one at a time, each failure recorded without stopping its
// siblings.
type Reconciler struct {
	api            domain.EventAPI
	observer       domain.ReconcileObserver
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewReconciler returns a Reconciler. timeout bounds each remote call; zero
// uses 30s. A nil observer disables measurements.
func NewReconciler(api domain.EventAPI, observer domain.ReconcileObserver, logger *slog.Logger, timeout time.Duration) *Reconciler {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	if observer == nil {
		observer = noopObserver{}
	}
	return &Reconciler{api: api, observer: observer, logger: logger, contextTimeout: timeout}
}

// Reconcile saves in against the upstream API and classifies the result.
func (r *Reconciler) Reconcile(ctx context.Context, in domain.ReconcileInput) domain.ReconcileResult {
	start := time.Now()
	var ev *domain.Event
	err := r.call(ctx, opUpdateEvent, func(ctx context.Context) error {
		var err error
		ev, err = r.api.UpdateEvent(ctx, in.EventID, domain.EventUpdate{Event: in.Draft, Photo: in.Photo})
		return err
	})
	res := r.afterEventStep(ctx, in.EventID, ev, err, in.CoOrganizers, in.Attributes)
	r.finish(in.EventID, res, start)
	return res
}

// CreateAndPopulate creates a new event and then every co-organizer and
// attribute of the create-event wizard, with the same gating as Reconcile.
func (r *Reconciler) CreateAndPopulate(ctx context.Context, update domain.EventUpdate, coOrganizers []domain.CoOrganizer, attributes []domain.Attribute) domain.ReconcileResult {
	start := time.Now()
	var ev *domain.Event
	err := r.call(ctx, opCreateEvent, func(ctx context.Context) error {
		var err error
		ev, err = r.api.CreateEvent(ctx, update)
		return err
	})
	var eventID int64
	if err == nil {
		if ev == nil {
			err = errors.New("create event returned no record")
		} else {
			eventID = ev.ID
		}
	}
	res := r.afterEventStep(ctx, eventID, ev, err,
		domain.ChangeSet[domain.CoOrganizer]{ToAdd: coOrganizers},
		domain.ChangeSet[domain.Attribute]{ToAdd: attributes})
	r.finish(eventID, res, start)
	return res
}

func (r *Reconciler) afterEventStep(ctx context.Context, eventID int64, ev *domain.Event, err error,
	coOps domain.ChangeSet[domain.CoOrganizer], attrOps domain.ChangeSet[domain.Attribute]) domain.ReconcileResult {
	if err != nil {
		r.logger.WarnContext(ctx, "event update rejected, skipping owned collections", "event_id", eventID, "err", err)
		return domain.ReconcileResult{
			Outcome:      Classify(eventStepErrors(err)),
			CoOrganizers: domain.CollectionResult[domain.CoOrganizer]{Pending: coOps},
			Attributes:   domain.CollectionResult[domain.Attribute]{Pending: attrOps},
		}
	}
	res := domain.ReconcileResult{Event: ev, Remap: map[int64]int64{}}
	var errs []domain.SectionError
	errs = append(errs, r.reconcileCoOrganizers(ctx, eventID, coOps, &res.CoOrganizers)...)
	remap := draft.IDRemap(res.Remap)
	errs = append(errs, r.reconcileAttributes(ctx, eventID, attrOps, &res.Attributes, remap)...)
	res.Outcome = Classify(errs)
	return res
}

func (r *Reconciler) finish(eventID int64, res domain.ReconcileResult, start time.Time) {
	d := time.Since(start)
	r.observer.ObserveSave(eventID, res.Outcome, d)
	r.logger.Info("event settings reconciled",
		"event_id", eventID,
		"outcome", res.Outcome.Kind(),
		"failed_sections", res.Outcome.FailedSections(),
		"duration_ms", d.Milliseconds(),
	)
}

func (r *Reconciler) reconcileCoOrganizers(ctx context.Context, eventID int64, ops domain.ChangeSet[domain.CoOrganizer], out *domain.CollectionResult[domain.CoOrganizer]) []domain.SectionError {
	var errs []domain.SectionError
	fail := func(c domain.CoOrganizer, verb string, err error) {
		r.logger.WarnContext(ctx, "co-organizer operation failed", "event_id", eventID, "email", c.Email, "op", verb, "err", err)
		errs = append(errs, collectionError(domain.SectionCoOrganizers, fmt.Sprintf("could not %s co-organizer %s", verb, c.Email), err))
	}

	for _, c := range ops.ToAdd {
		var created *domain.CoOrganizer
		err := r.call(ctx, opCreateOrganizer, func(ctx context.Context) error {
			var err error
			created, err = r.api.CreateOrganizer(ctx, eventID, c.Email, c.PermissionIDs())
			return err
		})
		if err != nil {
			fail(c, "add", err)
			out.Pending.ToAdd = append(out.Pending.ToAdd, c)
			continue
		}
		applied := c.Clone()
		if created != nil && created.ID != nil {
			id := *created.ID
			applied.ID = &id
		}
		out.Applied.ToAdd = append(out.Applied.ToAdd, applied)
	}

	resolve := r.organizerResolver(ctx, eventID)

	for _, c := range ops.ToUpdate {
		id, err := resolve(c)
		if err == nil {
			err = r.call(ctx, opUpdateOrganizer, func(ctx context.Context) error {
				return r.api.ReplaceOrganizerPermissions(ctx, eventID, id, c.PermissionIDs())
			})
		}
		if err != nil {
			fail(c, "update", err)
			out.Pending.ToUpdate = append(out.Pending.ToUpdate, c)
			continue
		}
		out.Applied.ToUpdate = append(out.Applied.ToUpdate, c)
	}

	for _, c := range ops.ToDelete {
		id, err := resolve(c)
		if errors.Is(err, errOrganizerNotFound) {
			r.logger.DebugContext(ctx, "co-organizer already absent upstream", "event_id", eventID, "email", c.Email)
			out.Applied.ToDelete = append(out.Applied.ToDelete, c)
			continue
		}
		if err == nil {
			err = r.call(ctx, opDeleteOrganizer, func(ctx context.Context) error {
				return r.api.DeleteOrganizer(ctx, eventID, id)
			})
		}
		if err != nil {
			fail(c, "remove", err)
			out.Pending.ToDelete = append(out.Pending.ToDelete, c)
			continue
		}
		out.Applied.ToDelete = append(out.Applied.ToDelete, c)
	}
	return errs
}

var errOrganizerNotFound = errors.New("co-organizer not found upstream")

// organizerResolver returns a lookup of a co-organizer's durable id. Entries
// without one are matched by email against the upstream list, fetched once.
func (r *Reconciler) organizerResolver(ctx context.Context, eventID int64) func(domain.CoOrganizer) (int64, error) {
	var byEmail map[string]int64
	return func(c domain.CoOrganizer) (int64, error) {
		if c.ID != nil {
			return *c.ID, nil
		}
		if byEmail == nil {
			var list []domain.CoOrganizer
			err := r.call(ctx, opLoadOrganizers, func(ctx context.Context) error {
				var err error
				list, err = r.api.ListOrganizers(ctx, eventID)
				return err
			})
			if err != nil {
				return 0, fmt.Errorf("resolve co-organizer id: %w", err)
			}
			byEmail = make(map[string]int64, len(list))
			for _, u := range list {
				if u.ID != nil {
					byEmail[domain.NormalizeEmail(u.Email)] = *u.ID
				}
			}
		}
		id, ok := byEmail[domain.NormalizeEmail(c.Email)]
		if !ok {
			return 0, errOrganizerNotFound
		}
		return id, nil
	}
}

func (r *Reconciler) reconcileAttributes(ctx context.Context, eventID int64, ops domain.ChangeSet[domain.Attribute], out *domain.CollectionResult[domain.Attribute], remap draft.IDRemap) []domain.SectionError {
	var errs []domain.SectionError
	fail := func(a domain.Attribute, verb string, err error) {
		r.logger.WarnContext(ctx, "attribute operation failed", "event_id", eventID, "attribute_id", a.ID, "op", verb, "err", err)
		errs = append(errs, collectionError(domain.SectionAttributes, fmt.Sprintf("could not %s attribute %q", verb, a.Name), err))
	}

	for _, a := range ops.ToAdd {
		var created *domain.Attribute
		err := r.call(ctx, opCreateAttribute, func(ctx context.Context) error {
			var err error
			created, err = r.api.CreateAttribute(ctx, eventID, a)
			return err
		})
		if err == nil && (created == nil || created.ID <= 0) {
			err = errors.New("created attribute has no durable id")
		}
		if err != nil {
			fail(a, "add", err)
			out.Pending.ToAdd = append(out.Pending.ToAdd, a)
			continue
		}
		if draft.IsTemporary(a.ID) {
			if err := remap.Bind(a.ID, created.ID); err != nil {
				r.logger.WarnContext(ctx, "attribute id remap", "err", err)
			}
		}
		applied := a.Clone()
		applied.ID = created.ID
		if created.Slug != "" {
			applied.Slug = created.Slug
		}
		out.Applied.ToAdd = append(out.Applied.ToAdd, applied)
	}

	// Follow-up operations must target the durable id of anything just created.
	toUpdate := rewriteIDs(ops.ToUpdate, remap)
	toDelete := rewriteIDs(ops.ToDelete, remap)

	for _, a := range toUpdate {
		if draft.IsTemporary(a.ID) {
			// Its creation failed and was already reported.
			continue
		}
		err := r.call(ctx, opUpdateAttribute, func(ctx context.Context) error {
			return r.api.UpdateAttribute(ctx, eventID, a)
		})
		if err != nil {
			fail(a, "update", err)
			out.Pending.ToUpdate = append(out.Pending.ToUpdate, a)
			continue
		}
		out.Applied.ToUpdate = append(out.Applied.ToUpdate, a)
	}

	for _, a := range toDelete {
		if draft.IsTemporary(a.ID) {
			continue
		}
		err := r.call(ctx, opDeleteAttribute, func(ctx context.Context) error {
			return r.api.DeleteAttribute(ctx, eventID, a.ID)
		})
		if err != nil {
			fail(a, "remove", err)
			out.Pending.ToDelete = append(out.Pending.ToDelete, a)
			continue
		}
		out.Applied.ToDelete = append(out.Applied.ToDelete, a)
	}
	return errs
}

func rewriteIDs(attrs []domain.Attribute, remap draft.IDRemap) []domain.Attribute {
	out := slices.Clone(attrs)
	for i := range out {
		out[i].ID = remap.Resolve(out[i].ID)
	}
	return out
}

// call runs fn with the per-call timeout and reports it to the observer.
func (r *Reconciler) call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, r.contextTimeout)
	defer cancel()
	err := fn(ctx)
	r.observer.ObserveCall(op, err)
	return err
}

type noopObserver struct{}

func (noopObserver) ObserveCall(string, error) {}

func (noopObserver) ObserveSave(int64, domain.Outcome, time.Duration) {}
