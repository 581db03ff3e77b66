package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// SaveReportEmailData holds data for the partial-save report email.
type SaveReportEmailData struct {
	Email     string
	EventName string
	EventID   int64
	Sections  []string
	Errors    []SectionError
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendSaveReport(ctx context.Context, data *SaveReportEmailData) error
}
