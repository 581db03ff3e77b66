package services

import (
	"errors"
	"net/http"

	"organizerdashboard/internal/domain"
)

// Classify is the error aggregator of a save: no errors is a full success,
// any event-level or transport error is a full failure, and collection errors
// alone are a partial success.
func Classify(errs []domain.SectionError) domain.Outcome {
	if len(errs) == 0 {
		return domain.Outcome{Success: true}
	}
	return domain.Outcome{Errors: errs}
}

// eventStepErrors turns a failed event update into section errors. A
// rejection by the API is attributed to the event; anything else is a
// transport failure.
func eventStepErrors(err error) []domain.SectionError {
	var re *domain.RemoteError
	if !errors.As(err, &re) {
		return []domain.SectionError{{Section: domain.SectionOther, Message: err.Error()}}
	}
	if len(re.Messages) == 0 {
		return []domain.SectionError{{Section: domain.SectionEvent, Message: statusMessage(re.StatusCode)}}
	}
	out := make([]domain.SectionError, 0, len(re.Messages))
	for _, m := range re.Messages {
		out = append(out, domain.SectionError{Section: domain.SectionEvent, Message: m})
	}
	return out
}

// collectionError describes one failed co-organizer or attribute operation.
func collectionError(section domain.Section, what string, err error) domain.SectionError {
	reason := err.Error()
	var re *domain.RemoteError
	if errors.As(err, &re) {
		reason = statusMessage(re.StatusCode)
		if len(re.Messages) > 0 {
			reason = re.Messages[0]
		}
	}
	return domain.SectionError{Section: section, Message: what + ": " + reason}
}

func statusMessage(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "request failed"
}
