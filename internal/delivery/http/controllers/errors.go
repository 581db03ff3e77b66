package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"organizerdashboard/internal/delivery/http/helpers"
	"organizerdashboard/internal/domain"
)

// emailRegexp matches a simple email format (local@domain with at least one dot in domain).
var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// writeServiceError maps domain errors to status codes and envelope codes.
// Unknown errors are logged and answered with 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var re *domain.RemoteError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "settings session not found")
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrSaveInProgress):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "a save is in progress")
	case errors.Is(err, domain.ErrUnsavedChanges):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "there are unsaved changes; confirm to discard them")
	case errors.Is(err, domain.ErrStaleEntity):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	case errors.As(err, &re):
		logger.WarnContext(r.Context(), "upstream request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusBadGateway, helpers.ErrCodeBadGateway, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// outcomeStatus is the HTTP status of a save: 200 for success, 207 when only
// collections failed, 422 when the API rejected the event and 502 when it
// could not be reached.
func outcomeStatus(o domain.Outcome) int {
	switch o.Kind() {
	case domain.OutcomeSuccess:
		return http.StatusOK
	case domain.OutcomePartialSuccess:
		return http.StatusMultiStatus
	}
	for _, e := range o.Errors {
		if e.Section == domain.SectionEvent {
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusBadGateway
}

func operatorFrom(w http.ResponseWriter, r *http.Request) (*domain.Operator, bool) {
	op, ok := domain.OperatorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
	}
	return op, ok
}
