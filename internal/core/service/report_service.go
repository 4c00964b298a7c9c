package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/corpspend/expense-api/internal/api/metrics"
	"github.com/corpspend/expense-api/internal/core/domain"
	"github.com/corpspend/expense-api/internal/core/ports"
	"github.com/corpspend/expense-api/internal/report"
)

// recipientPattern is the basic local@domain.tld shape check applied before
// any delivery attempt.
var recipientPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ReportService renders the viewer's visible expense set into CSV and HTML
// summaries and hands the HTML variant to the mail channel.
type ReportService struct {
	expenses ports.ExpenseService
	mailer   ports.Mailer
	now      func() time.Time
	log      zerolog.Logger
}

func NewReportService(expenses ports.ExpenseService, mailer ports.Mailer, log zerolog.Logger) *ReportService {
	return &ReportService{expenses: expenses, mailer: mailer, now: time.Now, log: log}
}

// ExportCsv renders the viewer's visible expenses as a CSV attachment.
func (s *ReportService) ExportCsv(ctx context.Context, viewer ports.Viewer) (*ports.CsvExport, error) {
	records, err := s.expenses.ListVisible(ctx, viewer)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	return &ports.CsvExport{
		Filename: report.CsvFilename(now),
		Content:  report.RenderCsv(records, viewer.Role.Privileged()),
	}, nil
}

// SendReport emails the HTML summary of the viewer's visible expenses to
// recipient. In test mode the channel captures the message and the outcome
// carries a preview reference instead of a delivery confirmation.
func (s *ReportService) SendReport(ctx context.Context, viewer ports.Viewer, recipient string) (*ports.SendOutcome, error) {
	if !recipientPattern.MatchString(recipient) {
		return nil, domain.ErrInvalidRecipient
	}

	records, err := s.expenses.ListVisible(ctx, viewer)
	if err != nil {
		return nil, err
	}

	now := s.now()
	html, err := report.RenderHtml(records, viewer.Role.Privileged(), now)
	if err != nil {
		return nil, err
	}

	delivery, err := s.mailer.Send(ctx, ports.MailMessage{
		To:      recipient,
		Subject: "CorpSpend Expense Report – " + report.HeaderDate(now),
		HTML:    html,
	})
	if err != nil {
		metrics.ReportsSentTotal.WithLabelValues("smtp", "error").Inc()
		s.log.Error().Err(err).Str("recipient", recipient).Msg("report delivery failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	if delivery.PreviewURL != "" {
		metrics.ReportsSentTotal.WithLabelValues("preview", "ok").Inc()
		s.log.Info().Str("preview_url", delivery.PreviewURL).Msg("report captured in preview mode")
		return &ports.SendOutcome{
			Message:    "Demo mode: Email generated successfully!",
			PreviewURL: delivery.PreviewURL,
		}, nil
	}

	metrics.ReportsSentTotal.WithLabelValues("smtp", "ok").Inc()
	s.log.Info().Str("recipient", recipient).Int("entries", len(records)).Msg("report sent")
	return &ports.SendOutcome{Message: "Report sent to " + recipient}, nil
}
