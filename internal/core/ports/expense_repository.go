package ports

import (
	"context"

	"github.com/corpspend/expense-api/internal/core/domain"
)

// ListExpensesFilter narrows an expense listing.
// An empty RequesterID means no filter (privileged view).
type ListExpensesFilter struct {
	RequesterID string
}

// ExpenseRepository defines persistence operations for expense requests.
type ExpenseRepository interface {
	Insert(ctx context.Context, e *domain.Expense) (*domain.Expense, error)
	FindByID(ctx context.Context, id string) (*domain.Expense, error)
	List(ctx context.Context, filter ListExpensesFilter) ([]*domain.Expense, error)
	// UpdateStatus sets status, rejection reason, and acting user on a single
	// expense document and returns the updated record. The write is a single
	// atomic document update; concurrent decisions resolve last-write-wins.
	UpdateStatus(ctx context.Context, id string, status domain.ExpenseStatus, reason, actorID string) (*domain.Expense, error)
}
