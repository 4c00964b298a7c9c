package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/corpspend/expense-api/internal/core/domain"
	"github.com/corpspend/expense-api/internal/core/ports"
)

type stubExpenseService struct {
	created      ports.CreateExpenseInput
	transitioned ports.TransitionInput
	listedAs     ports.Viewer
	record       *ports.ExpenseRecord
	records      []ports.ExpenseRecord
	err          error
}

func (s *stubExpenseService) Create(_ context.Context, input ports.CreateExpenseInput) (*ports.ExpenseRecord, error) {
	s.created = input
	return s.record, s.err
}

func (s *stubExpenseService) ListVisible(_ context.Context, viewer ports.Viewer) ([]ports.ExpenseRecord, error) {
	s.listedAs = viewer
	return s.records, s.err
}

func (s *stubExpenseService) Transition(_ context.Context, input ports.TransitionInput) (*ports.ExpenseRecord, error) {
	s.transitioned = input
	return s.record, s.err
}

func sampleRecord() *ports.ExpenseRecord {
	return &ports.ExpenseRecord{
		Expense: domain.Expense{
			ID: "exp-1", Title: "Taxi", Amount: 450, Category: domain.CategoryTravel,
			Date: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), RequestedBy: "u1",
			Status: domain.StatusPending,
		},
		Requester: &ports.RequesterInfo{ID: "u1", Username: "alice", Department: "Sales"},
	}
}

func TestExpenseHandler_Create(t *testing.T) {
	svc := &stubExpenseService{record: sampleRecord()}
	h := NewExpenseHandler(svc)

	body := `{"title":"Taxi","amount":450,"category":"Travel"}`
	c, rec := authedContext(t, http.MethodPost, "/api/expenses", body, "u1", domain.RoleEmployee)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.created.Requester.UserID != "u1" {
		t.Fatalf("requester not taken from token claims: %+v", svc.created.Requester)
	}

	var resp expenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "exp-1" || resp.RequestedBy == nil || resp.RequestedBy.Username != "alice" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestExpenseHandler_Create_Validation(t *testing.T) {
	h := NewExpenseHandler(&stubExpenseService{})

	cases := []string{
		`{"amount":450,"category":"Travel"}`,
		`{"title":"Taxi","amount":0,"category":"Travel"}`,
		`{"title":"Taxi","amount":-5,"category":"Travel"}`,
		`{"title":"Taxi","amount":450,"category":"Groceries"}`,
	}
	for _, body := range cases {
		c, _ := authedContext(t, http.MethodPost, "/api/expenses", body, "u1", domain.RoleEmployee)
		err := h.Create(c)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("body %s: expected ValidationError, got %v", body, err)
		}
	}
}

func TestExpenseHandler_Create_RequiresClaims(t *testing.T) {
	h := NewExpenseHandler(&stubExpenseService{})

	c, _ := newTestContext(t, http.MethodPost, "/api/expenses", `{"title":"Taxi","amount":450,"category":"Travel"}`)
	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %v", err)
	}
}

func TestExpenseHandler_List(t *testing.T) {
	svc := &stubExpenseService{records: []ports.ExpenseRecord{*sampleRecord()}}
	h := NewExpenseHandler(svc)

	c, rec := authedContext(t, http.MethodGet, "/api/expenses", "", "u9", domain.RoleManager)
	if err := h.List(c); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if svc.listedAs.UserID != "u9" || svc.listedAs.Role != domain.RoleManager {
		t.Fatalf("viewer not forwarded: %+v", svc.listedAs)
	}

	var resp []expenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].Title != "Taxi" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestExpenseHandler_List_EmptyIsArray(t *testing.T) {
	h := NewExpenseHandler(&stubExpenseService{})

	c, rec := authedContext(t, http.MethodGet, "/api/expenses", "", "u1", domain.RoleEmployee)
	if err := h.List(c); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("empty listing must serialize as [], got %q", body)
	}
}

func TestExpenseHandler_Transition(t *testing.T) {
	updated := sampleRecord()
	updated.Status = domain.StatusRejected
	updated.RejectionReason = "missing invoice"
	svc := &stubExpenseService{record: updated}
	h := NewExpenseHandler(svc)

	body := `{"status":"Rejected","rejection_reason":"missing invoice"}`
	c, rec := authedContext(t, http.MethodPut, "/api/expenses/approve/exp-1", body, "mgr", domain.RoleManager)
	c.SetParamNames("id")
	c.SetParamValues("exp-1")

	if err := h.Transition(c); err != nil {
		t.Fatalf("Transition failed: %v", err)
	}
	if svc.transitioned.ExpenseID != "exp-1" || svc.transitioned.Status != "Rejected" {
		t.Fatalf("input not forwarded: %+v", svc.transitioned)
	}
	if svc.transitioned.Actor.UserID != "mgr" {
		t.Fatalf("actor not taken from claims: %+v", svc.transitioned.Actor)
	}

	var resp expenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "Rejected" || resp.RejectionReason != "missing invoice" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestExpenseHandler_Transition_InvalidStatus(t *testing.T) {
	h := NewExpenseHandler(&stubExpenseService{})

	c, _ := authedContext(t, http.MethodPut, "/api/expenses/approve/exp-1", `{"status":"Pending"}`, "mgr", domain.RoleManager)
	c.SetParamNames("id")
	c.SetParamValues("exp-1")

	err := h.Transition(c)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for Pending, got %v", err)
	}
}

func TestExpenseHandler_Transition_NotFound(t *testing.T) {
	h := NewExpenseHandler(&stubExpenseService{err: domain.ErrExpenseNotFound})

	c, _ := authedContext(t, http.MethodPut, "/api/expenses/approve/nope", `{"status":"Approved"}`, "mgr", domain.RoleManager)
	c.SetParamNames("id")
	c.SetParamValues("nope")

	if err := h.Transition(c); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound passthrough, got %v", err)
	}
}
