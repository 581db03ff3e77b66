package controllers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"organizerdashboard/internal/delivery/http/helpers"
	"organizerdashboard/internal/domain"
	"organizerdashboard/internal/draft"
	"organizerdashboard/internal/services"
)

// maxPhotoBytes caps a staged event photo.
const maxPhotoBytes = 5 << 20

var colorRegexp = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// SettingsService is the part of services.SettingsService the controller uses.
type SettingsService interface {
	Open(ctx context.Context, op *domain.Operator, eventID int64) (draft.View, error)
	Get(op *domain.Operator, id string) (draft.View, error)
	Edit(op *domain.Operator, id string, fn func(*draft.Session) error) (draft.View, error)
	Save(ctx context.Context, op *domain.Operator, id string) (services.SaveResult, error)
	Discard(op *domain.Operator, id string, confirmed bool) error
	History(ctx context.Context, op *domain.Operator, eventID int64, limit int) ([]*domain.SaveAttempt, error)
}

// SessionSuccessResponse is the success envelope of every endpoint returning a session.
type SessionSuccessResponse struct {
	Data  draft.View        `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SaveSuccessResponse is the envelope of POST /settings/sessions/{sessionID}/save.
type SaveSuccessResponse struct {
	Data  services.SaveResult `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// HistorySuccessResponse is the envelope of GET /settings/events/{eventID}/history.
type HistorySuccessResponse struct {
	Data  []*domain.SaveAttempt `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// UpdateEventFieldsRequest is the body of PATCH /settings/sessions/{sessionID}/event.
// Omitted fields are unchanged.
type UpdateEventFieldsRequest domain.EventFieldPatch

// Validate implements Validator.
func (u UpdateEventFieldsRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name must not be empty")
	}
	if u.StartDate != nil && u.EndDate != nil && u.EndDate.Before(*u.StartDate) {
		errs = append(errs, "endDate must not be before startDate")
	}
	if u.ContactEmail != nil && *u.ContactEmail != "" && !emailRegexp.MatchString(*u.ContactEmail) {
		errs = append(errs, "invalid contactEmail format")
	}
	if u.ParticipantsLimit != nil && *u.ParticipantsLimit < 1 {
		errs = append(errs, "participantsLimit must be at least 1")
	}
	if u.ParticipantsLimit != nil && u.ClearLimit {
		errs = append(errs, "participantsLimit and clearParticipantsLimit are mutually exclusive")
	}
	if u.PrimaryColor != nil && *u.PrimaryColor != "" && !colorRegexp.MatchString(*u.PrimaryColor) {
		errs = append(errs, "primaryColor must be a #rrggbb hex color")
	}
	for _, link := range u.SocialLinks {
		if !strings.HasPrefix(link, "https://") && !strings.HasPrefix(link, "http://") {
			errs = append(errs, fmt.Sprintf("social link %q must be an http(s) URL", link))
		}
	}
	return errs
}

// CoOrganizerRequest is the body of POST /settings/sessions/{sessionID}/coorganizers.
type CoOrganizerRequest struct {
	Email       string              `json:"email"`
	Permissions []domain.Permission `json:"permissions"`
}

// Validate implements Validator.
func (c CoOrganizerRequest) Validate() []string {
	email := domain.NormalizeEmail(c.Email)
	if email == "" {
		return []string{"email is required"}
	}
	if !emailRegexp.MatchString(email) {
		return []string{"invalid email format"}
	}
	return nil
}

// PermissionsRequest is the body of PUT /settings/sessions/{sessionID}/coorganizers/{email}.
type PermissionsRequest struct {
	Permissions []domain.Permission `json:"permissions"`
}

// AttributeRequest is the body of attribute create and update requests.
type AttributeRequest struct {
	Name            string               `json:"name"`
	Slug            string               `json:"slug"`
	Type            domain.AttributeType `json:"type"`
	Options         []string             `json:"options"`
	ShowInList      bool                 `json:"showInList"`
	IsSensitiveData bool                 `json:"isSensitiveData"`
	Reason          string               `json:"reason"`
}

// Validate implements Validator.
func (a AttributeRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, "name is required")
	}
	if a.Type == "" {
		errs = append(errs, "type is required")
	}
	if a.Type.HasOptions() && len(a.Options) == 0 {
		errs = append(errs, fmt.Sprintf("type %s needs at least one option", a.Type))
	}
	if a.IsSensitiveData && strings.TrimSpace(a.Reason) == "" {
		errs = append(errs, "reason is required for sensitive data")
	}
	return errs
}

func (a AttributeRequest) attribute(id int64) domain.Attribute {
	return domain.Attribute{
		ID:              id,
		Name:            strings.TrimSpace(a.Name),
		Slug:            a.Slug,
		Type:            a.Type,
		Options:         a.Options,
		ShowInList:      a.ShowInList,
		IsSensitiveData: a.IsSensitiveData,
		Reason:          a.Reason,
	}
}

// AttributeCreatedResponse carries the new attribute with its temporary id.
type AttributeCreatedResponse struct {
	Attribute domain.Attribute `json:"attribute"`
	Session   draft.View       `json:"session"`
}

// MoveAttributeRequest is the body of POST .../attributes/{attributeID}/move.
type MoveAttributeRequest struct {
	Index *int `json:"index"`
}

// Validate implements Validator.
func (m MoveAttributeRequest) Validate() []string {
	if m.Index == nil {
		return []string{"index is required"}
	}
	if *m.Index < 0 {
		return []string{"index must not be negative"}
	}
	return nil
}

type SettingsController struct {
	Logger  *slog.Logger
	Service SettingsService
}

func NewSettingsController(logger *slog.Logger, svc SettingsService) *SettingsController {
	return &SettingsController{
		Logger:  logger,
		Service: svc,
	}
}

// OpenSession godoc
// @Summary Open an event settings session
// @Description Loads the event, its co-organizers and attributes from the event API and starts a draft session for the caller.
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 201 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /settings/events/{eventID}/sessions [post]
func (c *SettingsController) OpenSession(w http.ResponseWriter, r *http.Request) {
	op, ok := operatorFrom(w, r)
	if !ok {
		return
	}
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	view, err := c.Service.Open(r.Context(), op, eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, view)
}

// GetSession godoc
// @Summary Get a settings session
// @Description Returns the draft, the last saved state and whether there are unsaved changes.
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /settings/sessions/{sessionID} [get]
func (c *SettingsController) GetSession(w http.ResponseWriter, r *http.Request) {
	op, ok := operatorFrom(w, r)
	if !ok {
		return
	}
	view, err := c.Service.Get(op, r.PathValue("sessionID"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// edit runs fn against the session named in the path and writes the new state.
func (c *SettingsController) edit(w http.ResponseWriter, r *http.Request, status int, fn func(*draft.Session) error) {
	op, ok := operatorFrom(w, r)
	if !ok {
		return
	}
	view, err := c.Service.Edit(op, r.PathValue("sessionID"), fn)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, status, view)
}

// UpdateEventFields godoc
// @Summary Edit event fields
// @Description Applies the given fields to the draft event. Nothing is sent to the event API until save.
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Param fields body controllers.UpdateEventFieldsRequest true "Changed fields"
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (save in progress)"
// @Router /settings/sessions/{sessionID}/event [patch]
func (c *SettingsController) UpdateEventFields(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventFieldsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	c.edit(w, r, http.StatusOK, func(s *draft.Session) error {
		return s.EditEvent(domain.EventFieldPatch(req))
	})
}

// StagePhoto godoc
// @Summary Stage an event photo
// @Description The raw request body is the image. It is uploaded with the next event update.
// @Tags settings
// @Accept image/png,image/jpeg,image/webp
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Param filename query string false "File name sent to the event API"
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /settings/sessions/{sessionID}/event/photo [put]
func (c *SettingsController) StagePhoto(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "photo must be an image")
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPhotoBytes))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, fmt.Sprintf("photo larger than %d bytes", maxPhotoBytes))
		return
	}
	if len(data) == 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "photo is empty")
		return
	}
	name := r.URL.Query().Get("filename")
	if name == "" {
		name = "photo"
	}
	upload := &domain.Upload{Filename: name, ContentType: contentType, Data: data}
	c.edit(w, r, http.StatusOK, func(s *draft.Session) error { return s.SetPhoto(upload) })
}

// ClearPhoto godoc
// @Summary Unstage the event photo
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Success 200 {object} controllers.SessionSuccessResponse
// @Router /settings/sessions/{sessionID}/event/photo [delete]
func (c *SettingsController) ClearPhoto(w http.ResponseWriter, r *http.Request) {
	c.edit(w, r, http.StatusOK, func(s *draft.Session) error { return s.SetPhoto(nil) })
}

// AddCoOrganizer godoc
// @Summary Invite a co-organizer
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Param coOrganizer body controllers.CoOrganizerRequest true "Co-organizer"
// @Success 201 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid or repeated email)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /settings/sessions/{sessionID}/coorganizers [post]
func (c *SettingsController) AddCoOrganizer(w http.ResponseWriter, r *http.Request) {
	var req CoOrganizerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	c.edit(w, r, http.StatusCreated, func(s *draft.Session) error {
		return s.AddCoOrganizer(req.Email, req.Permissions)
	})
}

// UpdateCoOrganizer godoc
// @Summary Replace a co-organizer's permissions
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Param email path string true "Co-organizer email"
// @Param permissions body controllers.PermissionsRequest true "Permissions"
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (removed in this session)"
// @Router /settings/sessions/{sessionID}/coorganizers/{email} [put]
func (c *SettingsController) UpdateCoOrganizer(w http.ResponseWriter, r *http.Request) {
	var req PermissionsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	email := r.PathValue("email")
	c.edit(w, r, http.StatusOK, func(s *draft.Session) error {
		return s.UpdateCoOrganizer(email, req.Permissions)
	})
}

// RemoveCoOrganizer godoc
// @Summary Remove a co-organizer
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Param email path string true "Co-organizer email"
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /settings/sessions/{sessionID}/coorganizers/{email} [delete]
func (c *SettingsController) RemoveCoOrganizer(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	c.edit(w, r, http.StatusOK, func(s *draft.Session) error { return s.RemoveCoOrganizer(email) })
}

// AddAttribute godoc
// @Summary Add a participant attribute
// @Description The attribute gets a temporary negative id until it is saved.
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Param attribute body controllers.AttributeRequest true "Attribute"
// @Success 201 {object} controllers.AttributeCreatedResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /settings/sessions/{sessionID}/attributes [post]
func (c *SettingsController) AddAttribute(w http.ResponseWriter, r *http.Request) {
	var req AttributeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	op, ok := operatorFrom(w, r)
	if !ok {
		return
	}
	var created domain.Attribute
	view, err := c.Service.Edit(op, r.PathValue("sessionID"), func(s *draft.Session) error {
		var err error
		created, err = s.AddAttribute(req.attribute(0))
		return err
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, AttributeCreatedResponse{Attribute: created, Session: view})
}

// UpdateAttribute godoc
// @Summary Edit a participant attribute
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Param attributeID path int true "Attribute ID (negative for unsaved attributes)"
// @Param attribute body controllers.AttributeRequest true "Attribute"
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (removed in this session)"
// @Router /settings/sessions/{sessionID}/attributes/{attributeID} [put]
func (c *SettingsController) UpdateAttribute(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "attributeID")
	if !ok {
		return
	}
	var req AttributeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	c.edit(w, r, http.StatusOK, func(s *draft.Session) error {
		return s.UpdateAttribute(req.attribute(id))
	})
}

// RemoveAttribute godoc
// @Summary Remove a participant attribute
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Param attributeID path int true "Attribute ID"
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /settings/sessions/{sessionID}/attributes/{attributeID} [delete]
func (c *SettingsController) RemoveAttribute(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "attributeID")
	if !ok {
		return
	}
	c.edit(w, r, http.StatusOK, func(s *draft.Session) error { return s.RemoveAttribute(id) })
}

// MoveAttribute godoc
// @Summary Reorder a participant attribute
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Param attributeID path int true "Attribute ID"
// @Param move body controllers.MoveAttributeRequest true "Target index"
// @Success 200 {object} controllers.SessionSuccessResponse
// @Router /settings/sessions/{sessionID}/attributes/{attributeID}/move [post]
func (c *SettingsController) MoveAttribute(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "attributeID")
	if !ok {
		return
	}
	var req MoveAttributeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	c.edit(w, r, http.StatusOK, func(s *draft.Session) error { return s.MoveAttribute(id, *req.Index) })
}

// Save godoc
// @Summary Save the session
// @Description Sends the event update, then the co-organizer and attribute changes. The outcome is 200 when everything landed, 207 when the event was saved but some collection changes were not, 422 when the event API rejected the event and 502 when it could not be reached.
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Success 200 {object} controllers.SaveSuccessResponse
// @Success 207 {object} controllers.SaveSuccessResponse
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (save in progress)"
// @Failure 422 {object} controllers.SaveSuccessResponse
// @Failure 502 {object} controllers.SaveSuccessResponse
// @Router /settings/sessions/{sessionID}/save [post]
func (c *SettingsController) Save(w http.ResponseWriter, r *http.Request) {
	op, ok := operatorFrom(w, r)
	if !ok {
		return
	}
	res, err := c.Service.Save(r.Context(), op, r.PathValue("sessionID"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, outcomeStatus(res.Outcome), res)
}

// CloseSession godoc
// @Summary Leave the settings screen
// @Description Discards the session. Without confirm=true a session with unsaved changes is kept and 409 returned.
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Param confirm query bool false "Discard unsaved changes"
// @Success 204
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /settings/sessions/{sessionID} [delete]
func (c *SettingsController) CloseSession(w http.ResponseWriter, r *http.Request) {
	op, ok := operatorFrom(w, r)
	if !ok {
		return
	}
	confirmed := r.URL.Query().Get("confirm") == "true"
	if err := c.Service.Discard(op, r.PathValue("sessionID"), confirmed); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// History godoc
// @Summary List recent saves of an event
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param limit query int false "Maximum entries (default 20, max 100)"
// @Success 200 {object} controllers.HistorySuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /settings/events/{eventID}/history [get]
func (c *SettingsController) History(w http.ResponseWriter, r *http.Request) {
	op, ok := operatorFrom(w, r)
	if !ok {
		return
	}
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	attempts, err := c.Service.History(r.Context(), op, eventID, helpers.QueryInt(r, "limit", 20, 100))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attempts)
}
