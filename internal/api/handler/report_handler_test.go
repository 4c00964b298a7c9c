package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/corpspend/expense-api/internal/core/domain"
	"github.com/corpspend/expense-api/internal/core/ports"
)

type stubReportService struct {
	export    *ports.CsvExport
	outcome   *ports.SendOutcome
	err       error
	recipient string
	viewer    ports.Viewer
}

func (s *stubReportService) ExportCsv(_ context.Context, viewer ports.Viewer) (*ports.CsvExport, error) {
	s.viewer = viewer
	return s.export, s.err
}

func (s *stubReportService) SendReport(_ context.Context, viewer ports.Viewer, recipient string) (*ports.SendOutcome, error) {
	s.viewer = viewer
	s.recipient = recipient
	return s.outcome, s.err
}

func TestReportHandler_ExportCsv(t *testing.T) {
	svc := &stubReportService{export: &ports.CsvExport{
		Filename: "expense-report-2026-04-20.csv",
		Content:  []byte("Description,Category\r\n"),
	}}
	h := NewReportHandler(svc)

	c, rec := authedContext(t, http.MethodGet, "/api/expenses/export/csv", "", "u1", domain.RoleEmployee)
	if err := h.ExportCsv(c); err != nil {
		t.Fatalf("ExportCsv failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="expense-report-2026-04-20.csv"` {
		t.Fatalf("unexpected disposition: %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv; charset=utf-8" {
		t.Fatalf("unexpected content type: %q", got)
	}
	if rec.Body.String() != "Description,Category\r\n" {
		t.Fatalf("body altered: %q", rec.Body.String())
	}
}

func TestReportHandler_SendReport(t *testing.T) {
	svc := &stubReportService{outcome: &ports.SendOutcome{Message: "Report sent to boss@co.com"}}
	h := NewReportHandler(svc)

	c, rec := authedContext(t, http.MethodPost, "/api/expenses/send-report", `{"email":"boss@co.com"}`, "u1", domain.RoleEmployee)
	if err := h.SendReport(c); err != nil {
		t.Fatalf("SendReport failed: %v", err)
	}
	if svc.recipient != "boss@co.com" {
		t.Fatalf("recipient not forwarded: %q", svc.recipient)
	}

	var resp sendReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Msg != "Report sent to boss@co.com" || resp.PreviewURL != "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestReportHandler_SendReport_PreviewURL(t *testing.T) {
	svc := &stubReportService{outcome: &ports.SendOutcome{
		Message:    "Demo mode: Email generated successfully!",
		PreviewURL: "/debug/outbox/0",
	}}
	h := NewReportHandler(svc)

	c, rec := authedContext(t, http.MethodPost, "/api/expenses/send-report", `{"email":"boss@co.com"}`, "u1", domain.RoleEmployee)
	if err := h.SendReport(c); err != nil {
		t.Fatalf("SendReport failed: %v", err)
	}

	var resp sendReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.PreviewURL != "/debug/outbox/0" {
		t.Fatalf("preview URL missing: %+v", resp)
	}
}

func TestReportHandler_SendReport_MissingEmail(t *testing.T) {
	h := NewReportHandler(&stubReportService{})

	c, _ := authedContext(t, http.MethodPost, "/api/expenses/send-report", `{}`, "u1", domain.RoleEmployee)
	err := h.SendReport(c)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestReportHandler_SendReport_ServiceError(t *testing.T) {
	h := NewReportHandler(&stubReportService{err: domain.ErrInvalidRecipient})

	c, _ := authedContext(t, http.MethodPost, "/api/expenses/send-report", `{"email":"bad"}`, "u1", domain.RoleEmployee)
	if err := h.SendReport(c); !errors.Is(err, domain.ErrInvalidRecipient) {
		t.Fatalf("expected ErrInvalidRecipient passthrough, got %v", err)
	}
}
