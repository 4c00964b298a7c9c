package ports

import (
	"context"
	"time"

	"github.com/corpspend/expense-api/internal/core/domain"
)

// Viewer identifies the authenticated caller of an operation. Role decides
// visibility scope: manager/admin see every expense, everyone else sees only
// their own.
type Viewer struct {
	UserID string
	Role   domain.Role
	Name   string
}

// CreateExpenseInput carries the data for a new expense request.
type CreateExpenseInput struct {
	Title    string
	Amount   float64
	Category string
	// Date is optional; zero means "now".
	Date      time.Time
	Requester Viewer
}

// TransitionInput carries an approve/reject decision.
type TransitionInput struct {
	ExpenseID string
	Status    string
	// Reason is persisted only when Status is Rejected.
	Reason string
	Actor  Viewer
}

// RequesterInfo is the identity of the user who created an expense, joined
// into listings and reports.
type RequesterInfo struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// ExpenseRecord is an expense with its requester identity joined in.
// Requester is nil when the referenced user no longer resolves.
type ExpenseRecord struct {
	domain.Expense
	Requester *RequesterInfo
}

// ExpenseService defines the expense workflow use cases.
type ExpenseService interface {
	Create(ctx context.Context, input CreateExpenseInput) (*ExpenseRecord, error)
	// ListVisible applies the visibility rule for viewer and joins requester
	// identities into the result.
	ListVisible(ctx context.Context, viewer Viewer) ([]ExpenseRecord, error)
	// Transition approves or rejects an expense. Callers without a privileged
	// role fail with domain.ErrForbidden before any mutation.
	Transition(ctx context.Context, input TransitionInput) (*ExpenseRecord, error)
}
