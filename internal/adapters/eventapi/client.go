package eventapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"organizerdashboard/internal/domain"
)

// maxErrorBody caps how much of a failed response is read for messages.
const maxErrorBody = 64 << 10

type httpClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient returns an EventAPI talking to the REST API at baseURL. The
// operator's bearer token is taken from the request context.
func NewHTTPClient(baseURL string, client *http.Client) domain.EventAPI {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpClient{baseURL: strings.TrimSuffix(baseURL, "/"), client: client}
}

func (c *httpClient) GetEvent(ctx context.Context, eventID int64) (*domain.Event, error) {
	var ev domain.Event
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/events/%d", eventID), nil, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (c *httpClient) CreateEvent(ctx context.Context, update domain.EventUpdate) (*domain.Event, error) {
	return c.sendEvent(ctx, http.MethodPost, "/events", update)
}

func (c *httpClient) UpdateEvent(ctx context.Context, eventID int64, update domain.EventUpdate) (*domain.Event, error) {
	return c.sendEvent(ctx, http.MethodPut, fmt.Sprintf("/events/%d", eventID), update)
}

func (c *httpClient) sendEvent(ctx context.Context, method, path string, update domain.EventUpdate) (*domain.Event, error) {
	if update.Event == nil {
		return nil, fmt.Errorf("event update has no event")
	}
	body, contentType, err := eventForm(update)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event form: %w", err)
	}
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	var ev domain.Event
	if err := c.do(req, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// eventForm encodes the scalar fields of an event and the optional photo as
// multipart/form-data.
func eventForm(update domain.EventUpdate) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	e := update.Event
	fields := [][2]string{
		{"name", e.Name},
		{"location", e.Location},
		{"description", e.Description},
		{"slug", e.Slug},
		{"contactEmail", e.ContactEmail},
		{"primaryColor", e.PrimaryColor},
	}
	if !e.StartDate.IsZero() {
		fields = append(fields, [2]string{"startDate", e.StartDate.Format(time.RFC3339)})
	}
	if !e.EndDate.IsZero() {
		fields = append(fields, [2]string{"endDate", e.EndDate.Format(time.RFC3339)})
	}
	// Cleared values are sent empty so the update removes them.
	limit := ""
	if e.ParticipantsLimit != nil {
		limit = strconv.Itoa(*e.ParticipantsLimit)
	}
	fields = append(fields, [2]string{"participantsLimit", limit})
	if len(e.SocialLinks) == 0 {
		fields = append(fields, [2]string{"socialLinks", ""})
	}
	for _, link := range e.SocialLinks {
		fields = append(fields, [2]string{"socialLinks", link})
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}
	if p := update.Photo; p != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename=%q`, p.Filename))
		ct := p.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(p.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

type organizerBody struct {
	Email          string  `json:"email,omitempty"`
	PermissionsIDs []int64 `json:"permissionsIds"`
}

func (c *httpClient) ListOrganizers(ctx context.Context, eventID int64) ([]domain.CoOrganizer, error) {
	var out []domain.CoOrganizer
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/events/%d/organizers", eventID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) CreateOrganizer(ctx context.Context, eventID int64, email string, permissionIDs []int64) (*domain.CoOrganizer, error) {
	body := organizerBody{Email: email, PermissionsIDs: nonNil(permissionIDs)}
	var created domain.CoOrganizer
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/events/%d/organizers", eventID), body, &created); err != nil {
		return nil, err
	}
	if created.Email == "" {
		created.Email = email
	}
	return &created, nil
}

func (c *httpClient) ReplaceOrganizerPermissions(ctx context.Context, eventID, organizerID int64, permissionIDs []int64) error {
	body := organizerBody{PermissionsIDs: nonNil(permissionIDs)}
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/events/%d/organizers/%d", eventID, organizerID), body, nil)
}

func (c *httpClient) DeleteOrganizer(ctx context.Context, eventID, organizerID int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/events/%d/organizers/%d", eventID, organizerID), nil, nil)
}

type attributeBody struct {
	Name            string               `json:"name"`
	Type            domain.AttributeType `json:"type"`
	Slug            string               `json:"slug,omitempty"`
	ShowInList      bool                 `json:"showInList"`
	Options         []string             `json:"options,omitempty"`
	Order           int                  `json:"order"`
	IsSensitiveData bool                 `json:"isSensitiveData"`
	Reason          string               `json:"reason,omitempty"`
}

func newAttributeBody(a domain.Attribute) attributeBody {
	b := attributeBody{
		Name:            a.Name,
		Type:            a.Type,
		Slug:            a.Slug,
		ShowInList:      a.ShowInList,
		Order:           a.Order,
		IsSensitiveData: a.IsSensitiveData,
		Reason:          a.Reason,
	}
	if a.Type.HasOptions() {
		b.Options = a.Options
	}
	return b
}

func (c *httpClient) ListAttributes(ctx context.Context, eventID int64) ([]domain.Attribute, error) {
	var out []domain.Attribute
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/events/%d/attributes", eventID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) CreateAttribute(ctx context.Context, eventID int64, attr domain.Attribute) (*domain.Attribute, error) {
	var created domain.Attribute
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/events/%d/attributes", eventID), newAttributeBody(attr), &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *httpClient) UpdateAttribute(ctx context.Context, eventID int64, attr domain.Attribute) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/events/%d/attributes/%d", eventID, attr.ID), newAttributeBody(attr), nil)
}

func (c *httpClient) DeleteAttribute(ctx context.Context, eventID, attributeID int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/events/%d/attributes/%d", eventID, attributeID), nil, nil)
}

func (c *httpClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *httpClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if op, ok := domain.OperatorFromContext(ctx); ok && op.Token != "" {
		req.Header.Set("Authorization", "Bearer "+op.Token)
	}
	return req, nil
}

func (c *httpClient) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &domain.RemoteError{StatusCode: resp.StatusCode, Messages: errorMessages(raw)}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("failed to decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// errorMessages extracts the human-readable messages of an error body. The
// API answers with {"errors":[{"message":...}]}, {"message":...} or
// {"error":...}; anything else yields no messages.
func errorMessages(raw []byte) []string {
	var body struct {
		Errors  []json.RawMessage `json:"errors"`
		Message string            `json:"message"`
		Error   string            `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}
	var out []string
	for _, e := range body.Errors {
		var item struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(e, &item) == nil && item.Message != "" {
			out = append(out, item.Message)
			continue
		}
		var s string
		if json.Unmarshal(e, &s) == nil && s != "" {
			out = append(out, s)
		}
	}
	if len(out) > 0 {
		return out
	}
	if body.Message != "" {
		return []string{body.Message}
	}
	if body.Error != "" {
		return []string{body.Error}
	}
	return nil
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
