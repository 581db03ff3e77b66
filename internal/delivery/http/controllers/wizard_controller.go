package controllers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"organizerdashboard/internal/delivery/http/helpers"
	"organizerdashboard/internal/domain"
	"organizerdashboard/internal/services"
)

// WizardService creates events from the create-event wizard.
type WizardService interface {
	Create(ctx context.Context, op *domain.Operator, in services.WizardInput) (domain.ReconcileResult, error)
}

// PhotoPayload is an image embedded in a JSON body; data is base64.
type PhotoPayload struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

// CreateEventWizardRequest is the body of POST /wizard/events.
type CreateEventWizardRequest struct {
	Event        domain.Event         `json:"event"`
	Photo        *PhotoPayload        `json:"photo"`
	CoOrganizers []CoOrganizerRequest `json:"coOrganizers"`
	Attributes   []AttributeRequest   `json:"attributes"`
}

// Validate implements Validator.
func (c CreateEventWizardRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Event.Name) == "" {
		errs = append(errs, "event.name is required")
	}
	if !c.Event.StartDate.IsZero() && !c.Event.EndDate.IsZero() && c.Event.EndDate.Before(c.Event.StartDate) {
		errs = append(errs, "event.endDate must not be before event.startDate")
	}
	if p := c.Photo; p != nil {
		if len(p.Data) == 0 || len(p.Data) > maxPhotoBytes {
			errs = append(errs, fmt.Sprintf("photo must be between 1 and %d bytes", maxPhotoBytes))
		}
		if !strings.HasPrefix(p.ContentType, "image/") {
			errs = append(errs, "photo must be an image")
		}
	}
	for i, co := range c.CoOrganizers {
		for _, e := range co.Validate() {
			errs = append(errs, fmt.Sprintf("coOrganizers[%d]: %s", i, e))
		}
	}
	for i, a := range c.Attributes {
		for _, e := range a.Validate() {
			errs = append(errs, fmt.Sprintf("attributes[%d]: %s", i, e))
		}
	}
	return errs
}

// CreateEventWizardResponse is the result of the wizard save.
type CreateEventWizardResponse struct {
	Outcome domain.Outcome  `json:"outcome"`
	Message string          `json:"message"`
	Event   *domain.Event   `json:"event,omitempty"`
	Remap   map[int64]int64 `json:"attributeIds,omitempty"`
}

// CreateEventWizardSuccessResponse is the envelope of POST /wizard/events.
type CreateEventWizardSuccessResponse struct {
	Data  CreateEventWizardResponse `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

type WizardController struct {
	Logger  *slog.Logger
	Service WizardService
}

func NewWizardController(logger *slog.Logger, svc WizardService) *WizardController {
	return &WizardController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create an event with the wizard
// @Description Creates the event, then invites every co-organizer and creates every attribute. 201 when everything landed, 207 when the event exists but some co-organizers or attributes could not be created.
// @Tags wizard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param wizard body controllers.CreateEventWizardRequest true "Wizard input"
// @Success 201 {object} controllers.CreateEventWizardSuccessResponse
// @Success 207 {object} controllers.CreateEventWizardSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 422 {object} controllers.CreateEventWizardSuccessResponse
// @Failure 502 {object} controllers.CreateEventWizardSuccessResponse
// @Router /wizard/events [post]
func (c *WizardController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventWizardRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	op, ok := operatorFrom(w, r)
	if !ok {
		return
	}
	in := services.WizardInput{Event: &req.Event}
	if p := req.Photo; p != nil {
		in.Photo = &domain.Upload{Filename: p.Filename, ContentType: p.ContentType, Data: p.Data}
	}
	for _, co := range req.CoOrganizers {
		in.CoOrganizers = append(in.CoOrganizers, domain.CoOrganizer{Email: co.Email, Permissions: co.Permissions})
	}
	for _, a := range req.Attributes {
		in.Attributes = append(in.Attributes, a.attribute(0))
	}

	res, err := c.Service.Create(r.Context(), op, in)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	status := outcomeStatus(res.Outcome)
	if status == http.StatusOK {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, CreateEventWizardResponse{
		Outcome: res.Outcome,
		Message: res.Outcome.Message(),
		Event:   res.Event,
		Remap:   res.Remap,
	})
}
