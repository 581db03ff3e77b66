package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organizerdashboard/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func newTestReconciler(api domain.EventAPI, obs domain.ReconcileObserver) *Reconciler {
	return NewReconciler(api, obs, discardLogger(), time.Second)
}

func baseInput(api *fakeEventAPI) domain.ReconcileInput {
	draft := api.event.Clone()
	draft.Location = "Kraków"
	return domain.ReconcileInput{EventID: 7, Original: api.event.Clone(), Draft: draft}
}

func TestReconcile_EventFailureSkipsCollections(t *testing.T) {
	api := newFakeEventAPI()
	api.errs[opUpdateEvent] = &domain.RemoteError{StatusCode: 422, Messages: []string{"slug is taken", "name too long"}}
	in := baseInput(api)
	in.CoOrganizers = domain.ChangeSet[domain.CoOrganizer]{ToAdd: []domain.CoOrganizer{{Email: "ola@example.com"}}}
	in.Attributes = domain.ChangeSet[domain.Attribute]{ToDelete: []domain.Attribute{{ID: 1, Name: "Wiek"}}}

	res := newTestReconciler(api, nil).Reconcile(context.Background(), in)

	assert.Equal(t, domain.OutcomeFailure, res.Outcome.Kind())
	require.Len(t, res.Outcome.Errors, 2)
	assert.Equal(t, domain.SectionError{Section: domain.SectionEvent, Message: "slug is taken"}, res.Outcome.Errors[0])
	assert.Equal(t, []string{opUpdateEvent}, api.calls, "no collection calls after a rejected event update")
	assert.Nil(t, res.Event)
	assert.Equal(t, in.CoOrganizers, res.CoOrganizers.Pending)
	assert.Equal(t, in.Attributes, res.Attributes.Pending)
	assert.Equal(t, "Event settings could not be saved: slug is taken", res.Outcome.Message())
}

func TestReconcile_TransportFailureIsOther(t *testing.T) {
	api := newFakeEventAPI()
	api.errs[opUpdateEvent] = errors.New("dial tcp: connection refused")

	res := newTestReconciler(api, nil).Reconcile(context.Background(), baseInput(api))

	assert.Equal(t, domain.OutcomeFailure, res.Outcome.Kind())
	assert.Equal(t, []domain.Section{domain.SectionOther}, res.Outcome.FailedSections())
}

func TestReconcile_CollectionFailureIsPartial(t *testing.T) {
	api := newFakeEventAPI()
	api.errs[opDeleteOrganizer+":100"] = &domain.RemoteError{StatusCode: 500}
	in := baseInput(api)
	in.CoOrganizers = domain.ChangeSet[domain.CoOrganizer]{
		ToAdd:    []domain.CoOrganizer{{Email: "ola@example.com", Permissions: []domain.Permission{{ID: 2}}}},
		ToDelete: []domain.CoOrganizer{api.coOrganizers[0].Clone()},
	}
	in.Attributes = domain.ChangeSet[domain.Attribute]{
		ToUpdate: []domain.Attribute{{ID: 2, Name: "Miasto rodzinne", Type: domain.AttributeText, Order: 1}},
	}

	res := newTestReconciler(api, nil).Reconcile(context.Background(), in)

	assert.Equal(t, domain.OutcomePartialSuccess, res.Outcome.Kind())
	assert.Equal(t, []domain.Section{domain.SectionCoOrganizers}, res.Outcome.FailedSections())
	require.Len(t, res.Outcome.Errors, 1)
	assert.Equal(t, "could not remove co-organizer ala@example.com: Internal Server Error", res.Outcome.Errors[0].Message)

	require.NotNil(t, res.Event)
	assert.Equal(t, "Kraków", res.Event.Location)
	require.Len(t, res.CoOrganizers.Applied.ToAdd, 1)
	assert.Equal(t, int64(500), *res.CoOrganizers.Applied.ToAdd[0].ID)
	assert.Len(t, res.CoOrganizers.Pending.ToDelete, 1)
	assert.Len(t, res.Attributes.Applied.ToUpdate, 1, "attribute section still ran")
	assert.Equal(t, "Miasto rodzinne", api.attributes[1].Name)
	assert.Equal(t, "Event saved, but changes to co-organizers could not be saved. Please review and save them again.", res.Outcome.Message())
}

func TestReconcile_RewritesTemporaryIDsBeforeFollowUps(t *testing.T) {
	api := newFakeEventAPI()
	in := baseInput(api)
	in.Attributes = domain.ChangeSet[domain.Attribute]{
		ToAdd:    []domain.Attribute{{ID: -1, Name: "Dieta", Type: domain.AttributeSelect, Options: []string{"wege"}, Order: 2}},
		ToUpdate: []domain.Attribute{{ID: -1, Name: "Dieta", Type: domain.AttributeSelect, Options: []string{"wege", "mięsna"}, Order: 2}},
	}

	res := newTestReconciler(api, nil).Reconcile(context.Background(), in)

	require.True(t, res.Outcome.Success, res.Outcome.Errors)
	assert.Equal(t, map[int64]int64{-1: 500}, res.Remap)
	require.Len(t, res.Attributes.Applied.ToUpdate, 1)
	assert.Equal(t, int64(500), res.Attributes.Applied.ToUpdate[0].ID)
	assert.Equal(t, []string{"wege", "mięsna"}, api.attributes[2].Options)
}

func TestReconcile_FailedCreateHasNoFollowUp(t *testing.T) {
	api := newFakeEventAPI()
	api.errs[opCreateAttribute+":Dieta"] = &domain.RemoteError{StatusCode: 400, Messages: []string{"options required"}}
	in := baseInput(api)
	dieta := domain.Attribute{ID: -1, Name: "Dieta", Type: domain.AttributeSelect}
	in.Attributes = domain.ChangeSet[domain.Attribute]{
		ToAdd:    []domain.Attribute{dieta},
		ToUpdate: []domain.Attribute{dieta},
		ToDelete: []domain.Attribute{dieta},
	}

	res := newTestReconciler(api, nil).Reconcile(context.Background(), in)

	require.Len(t, res.Outcome.Errors, 1)
	assert.Equal(t, domain.SectionAttributes, res.Outcome.Errors[0].Section)
	assert.Equal(t, `could not add attribute "Dieta": options required`, res.Outcome.Errors[0].Message)
	assert.Equal(t, 0, api.callsTo(opUpdateAttribute))
	assert.Equal(t, 0, api.callsTo(opDeleteAttribute))
	assert.Equal(t, []domain.Attribute{dieta}, res.Attributes.Pending.ToAdd)
}

func TestReconcile_ResolvesMissingOrganizerIDsByEmail(t *testing.T) {
	api := newFakeEventAPI()
	in := baseInput(api)
	in.CoOrganizers = domain.ChangeSet[domain.CoOrganizer]{
		ToUpdate: []domain.CoOrganizer{{Email: "ALA@example.com", Permissions: []domain.Permission{{ID: 2}}}},
	}

	res := newTestReconciler(api, nil).Reconcile(context.Background(), in)

	require.True(t, res.Outcome.Success, res.Outcome.Errors)
	assert.Equal(t, []string{opUpdateEvent, opLoadOrganizers, opUpdateOrganizer}, api.calls)
	assert.Equal(t, []int64{2}, api.coOrganizers[0].PermissionIDs())
	assert.Len(t, res.CoOrganizers.Applied.ToUpdate, 1)
}

func TestReconcile_UnresolvableOrganizerIsReported(t *testing.T) {
	api := newFakeEventAPI()
	in := baseInput(api)
	in.CoOrganizers = domain.ChangeSet[domain.CoOrganizer]{
		ToUpdate: []domain.CoOrganizer{{Email: "ghost@example.com"}},
		ToDelete: []domain.CoOrganizer{{Email: "gone@example.com"}},
	}

	res := newTestReconciler(api, nil).Reconcile(context.Background(), in)

	assert.Equal(t, domain.OutcomePartialSuccess, res.Outcome.Kind())
	require.Len(t, res.Outcome.Errors, 1)
	assert.Equal(t, "could not update co-organizer ghost@example.com: co-organizer not found upstream", res.Outcome.Errors[0].Message)
	assert.Len(t, res.CoOrganizers.Pending.ToUpdate, 1)
	assert.Len(t, res.CoOrganizers.Applied.ToDelete, 1, "removing an absent co-organizer is already done")
	assert.Equal(t, 1, api.callsTo(opLoadOrganizers), "upstream list is fetched once")
	assert.Equal(t, 0, api.callsTo(opDeleteOrganizer))
}

func TestReconcile_OrganizerLookupFailureIsReported(t *testing.T) {
	api := newFakeEventAPI()
	api.errs[opLoadOrganizers] = &domain.RemoteError{StatusCode: 503}
	in := baseInput(api)
	in.CoOrganizers = domain.ChangeSet[domain.CoOrganizer]{
		ToDelete: []domain.CoOrganizer{{Email: "ala@example.com"}},
	}

	res := newTestReconciler(api, nil).Reconcile(context.Background(), in)

	require.Len(t, res.Outcome.Errors, 1)
	assert.Equal(t, domain.SectionCoOrganizers, res.Outcome.Errors[0].Section)
	assert.Len(t, res.CoOrganizers.Pending.ToDelete, 1)
}

func TestReconcile_CreatedAttributeWithoutIDIsFailure(t *testing.T) {
	api := newFakeEventAPI()
	api.blankCreates = true
	in := baseInput(api)
	dieta := domain.Attribute{ID: -1, Name: "Dieta", Type: domain.AttributeSelect}
	in.Attributes = domain.ChangeSet[domain.Attribute]{ToAdd: []domain.Attribute{dieta}, ToUpdate: []domain.Attribute{dieta}}

	res := newTestReconciler(api, nil).Reconcile(context.Background(), in)

	require.Len(t, res.Outcome.Errors, 1)
	assert.Equal(t, `could not add attribute "Dieta": created attribute has no durable id`, res.Outcome.Errors[0].Message)
	assert.Empty(t, res.Remap)
	assert.Equal(t, 0, api.callsTo(opUpdateAttribute))
	assert.Equal(t, []domain.Attribute{dieta}, res.Attributes.Pending.ToAdd)
}

func TestReconcile_ReportsCallsToObserver(t *testing.T) {
	api := newFakeEventAPI()
	api.errs[opCreateOrganizer] = &domain.RemoteError{StatusCode: 409, Messages: []string{"already invited"}}
	obs := newRecordingObserver()
	in := baseInput(api)
	in.CoOrganizers = domain.ChangeSet[domain.CoOrganizer]{ToAdd: []domain.CoOrganizer{{Email: "a@example.com"}, {Email: "b@example.com"}}}

	res := newTestReconciler(api, obs).Reconcile(context.Background(), in)

	assert.Len(t, res.Outcome.Errors, 2, "one failed sibling does not stop the next")
	assert.Equal(t, 1, obs.calls[opUpdateEvent])
	assert.Equal(t, 2, obs.calls[opCreateOrganizer])
	assert.Equal(t, 2, obs.failures[opCreateOrganizer])
	assert.Equal(t, []domain.OutcomeKind{domain.OutcomePartialSuccess}, obs.outcomes)
}

func TestReconcile_ForwardsOperatorToken(t *testing.T) {
	api := newFakeEventAPI()
	ctx := domain.WithOperator(context.Background(), &domain.Operator{ID: "op-1", Token: "tok"})

	newTestReconciler(api, nil).Reconcile(ctx, baseInput(api))

	assert.Equal(t, []string{"tok"}, api.tokens)
}

func TestCreateAndPopulate(t *testing.T) {
	api := newFakeEventAPI()
	res := newTestReconciler(api, nil).CreateAndPopulate(context.Background(),
		domain.EventUpdate{Event: &domain.Event{Name: "Hackathon"}},
		[]domain.CoOrganizer{{Email: "ola@example.com"}},
		[]domain.Attribute{{ID: -1, Name: "Koszulka", Type: domain.AttributeSelect, Options: []string{"M"}}},
	)

	require.True(t, res.Outcome.Success, res.Outcome.Errors)
	assert.Equal(t, int64(8), res.Event.ID)
	assert.Len(t, api.coOrganizers, 1)
	require.Len(t, api.attributes, 1)
	assert.Equal(t, map[int64]int64{-1: api.attributes[0].ID}, res.Remap)
}

func TestCreateAndPopulate_EventFailure(t *testing.T) {
	api := newFakeEventAPI()
	api.errs[opCreateEvent] = &domain.RemoteError{StatusCode: 400, Messages: []string{"name is required"}}

	res := newTestReconciler(api, nil).CreateAndPopulate(context.Background(),
		domain.EventUpdate{Event: &domain.Event{}},
		[]domain.CoOrganizer{{Email: "ola@example.com"}}, nil)

	assert.Equal(t, domain.OutcomeFailure, res.Outcome.Kind())
	assert.Equal(t, []string{opCreateEvent}, api.calls)
	assert.Len(t, res.CoOrganizers.Pending.ToAdd, 1)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, domain.Outcome{Success: true}, Classify(nil))

	partial := Classify([]domain.SectionError{{Section: domain.SectionAttributes, Message: "x"}, {Section: domain.SectionCoOrganizers, Message: "y"}})
	assert.False(t, partial.Success)
	assert.Equal(t, domain.OutcomePartialSuccess, partial.Kind())
	assert.Equal(t, "Event saved, but changes to attributes and co-organizers could not be saved. Please review and save them again.", partial.Message())

	mixed := Classify([]domain.SectionError{{Section: domain.SectionAttributes, Message: "x"}, {Section: domain.SectionOther, Message: "timeout"}})
	assert.Equal(t, domain.OutcomeFailure, mixed.Kind())
}

func TestEventStepErrors_EmptyMessagesUseStatusText(t *testing.T) {
	errs := eventStepErrors(&domain.RemoteError{StatusCode: 503})
	assert.Equal(t, []domain.SectionError{{Section: domain.SectionEvent, Message: "Service Unavailable"}}, errs)
}
