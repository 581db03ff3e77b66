package services

import (
	"context"
	"fmt"
	"log/slog"

	"organizerdashboard/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendSaveReport mails the operator which sections of a save still need attention.
func (s *emailService) SendSaveReport(ctx context.Context, data *domain.SaveReportEmailData) error {
	if data == nil {
		return fmt.Errorf("save report data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("save_report", data)
	if err != nil {
		return fmt.Errorf("failed to render save_report template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send save report email: %w", err)
	}
	s.logger.InfoContext(ctx, "save report sent", "to", data.Email, "event_id", data.EventID)
	return nil
}
