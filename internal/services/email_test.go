package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organizerdashboard/internal/domain"
)

type fakeMailer struct {
	to, subject, html, text string
	err                     error
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	m.to, m.subject, m.html, m.text = to, subject, html, text
	return m.err
}

type fakeRenderer struct {
	name string
	err  error
}

func (r *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	r.name = name
	if r.err != nil {
		return "", "", "", r.err
	}
	d := data.(*domain.SaveReportEmailData)
	return "Unsaved changes in " + d.EventName, "<p>html</p>", "text", nil
}

func TestEmailService_SendSaveReport(t *testing.T) {
	m := &fakeMailer{}
	r := &fakeRenderer{}
	svc := NewEmailService(m, r, discardLogger())

	err := svc.SendSaveReport(context.Background(), &domain.SaveReportEmailData{Email: "owner@example.com", EventName: "Konferencja"})
	require.NoError(t, err)
	assert.Equal(t, "save_report", r.name)
	assert.Equal(t, "owner@example.com", m.to)
	assert.Equal(t, "Unsaved changes in Konferencja", m.subject)
}

func TestEmailService_SendSaveReportErrors(t *testing.T) {
	svc := NewEmailService(&fakeMailer{}, &fakeRenderer{err: errors.New("missing template")}, discardLogger())
	require.ErrorContains(t, svc.SendSaveReport(context.Background(), &domain.SaveReportEmailData{}), "render")

	svc = NewEmailService(&fakeMailer{err: errors.New("throttled")}, &fakeRenderer{}, discardLogger())
	require.ErrorContains(t, svc.SendSaveReport(context.Background(), &domain.SaveReportEmailData{}), "throttled")

	require.Error(t, svc.SendSaveReport(context.Background(), nil))
}
