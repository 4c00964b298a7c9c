package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/corpspend/expense-api/internal/api/metrics"
	"github.com/corpspend/expense-api/internal/core/domain"
	"github.com/corpspend/expense-api/internal/core/ports"
)

// CreationNotifier receives newly created expenses for asynchronous
// notification delivery. Implementations must not block.
type CreationNotifier interface {
	ExpenseCreated(record ports.ExpenseRecord)
}

// NopNotifier discards creation notifications.
type NopNotifier struct{}

func (NopNotifier) ExpenseCreated(ports.ExpenseRecord) {}

// ExpenseService implements the expense workflow: create, role-scoped
// listing, and approve/reject transitions.
type ExpenseService struct {
	expenses ports.ExpenseRepository
	users    ports.UserRepository
	notifier CreationNotifier
	log      zerolog.Logger
}

func NewExpenseService(expenses ports.ExpenseRepository, users ports.UserRepository, notifier CreationNotifier, log zerolog.Logger) *ExpenseService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ExpenseService{expenses: expenses, users: users, notifier: notifier, log: log}
}

// Create records a new expense request in Pending state, owned by the caller
// regardless of role. An omitted date defaults to the creation time.
func (s *ExpenseService) Create(ctx context.Context, input ports.CreateExpenseInput) (*ports.ExpenseRecord, error) {
	category := domain.Category(input.Category)
	if !category.Valid() {
		return nil, domain.ErrInvalidCategory
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	expense := &domain.Expense{
		Title:       input.Title,
		Amount:      input.Amount,
		Category:    category,
		Date:        date,
		RequestedBy: input.Requester.UserID,
		Status:      domain.StatusPending,
	}

	created, err := s.expenses.Insert(ctx, expense)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create expense")
		return nil, err
	}

	metrics.ExpensesCreatedTotal.WithLabelValues(string(category)).Inc()
	s.log.Info().
		Str("expense_id", created.ID).
		Str("requested_by", created.RequestedBy).
		Str("category", string(category)).
		Msg("expense created")

	record, err := s.joinOne(ctx, created)
	if err != nil {
		return nil, err
	}
	s.notifier.ExpenseCreated(*record)
	return record, nil
}

// ListVisible returns the viewer's visibility scope: every expense for
// manager/admin, own expenses only for everyone else. Requester identities
// are joined in.
func (s *ExpenseService) ListVisible(ctx context.Context, viewer ports.Viewer) ([]ports.ExpenseRecord, error) {
	filter := ports.ListExpensesFilter{}
	if !viewer.Role.Privileged() {
		filter.RequesterID = viewer.UserID
	}

	expenses, err := s.expenses.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, expenses)
}

// Transition applies an approve/reject decision. The actor is recorded on the
// expense; a rejection reason is persisted only for Rejected. There is no
// terminal-state guard: a later decision overwrites an earlier one.
func (s *ExpenseService) Transition(ctx context.Context, input ports.TransitionInput) (*ports.ExpenseRecord, error) {
	if !input.Actor.Role.Privileged() {
		return nil, domain.ErrForbidden
	}

	status := domain.ExpenseStatus(input.Status)
	if status != domain.StatusApproved && status != domain.StatusRejected {
		return nil, domain.ErrInvalidStatus
	}

	if _, err := s.expenses.FindByID(ctx, input.ExpenseID); err != nil {
		return nil, err
	}

	reason := ""
	if status == domain.StatusRejected {
		reason = input.Reason
	}

	updated, err := s.expenses.UpdateStatus(ctx, input.ExpenseID, status, reason, input.Actor.UserID)
	if err != nil {
		s.log.Error().Err(err).Str("expense_id", input.ExpenseID).Msg("failed to update expense status")
		return nil, err
	}

	metrics.ExpenseTransitionsTotal.WithLabelValues(string(status)).Inc()
	s.log.Info().
		Str("expense_id", updated.ID).
		Str("status", string(status)).
		Str("actor", input.Actor.UserID).
		Msg("expense transitioned")

	return s.joinOne(ctx, updated)
}

func (s *ExpenseService) join(ctx context.Context, expenses []*domain.Expense) ([]ports.ExpenseRecord, error) {
	ids := make([]string, 0, len(expenses))
	seen := make(map[string]struct{}, len(expenses))
	for _, e := range expenses {
		if _, ok := seen[e.RequestedBy]; !ok {
			seen[e.RequestedBy] = struct{}{}
			ids = append(ids, e.RequestedBy)
		}
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	records := make([]ports.ExpenseRecord, 0, len(expenses))
	for _, e := range expenses {
		records = append(records, ports.ExpenseRecord{
			Expense:   *e,
			Requester: requesterInfo(users[e.RequestedBy]),
		})
	}
	return records, nil
}

func (s *ExpenseService) joinOne(ctx context.Context, e *domain.Expense) (*ports.ExpenseRecord, error) {
	records, err := s.join(ctx, []*domain.Expense{e})
	if err != nil {
		return nil, err
	}
	return &records[0], nil
}

func requesterInfo(u *domain.User) *ports.RequesterInfo {
	if u == nil {
		return nil
	}
	return &ports.RequesterInfo{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Department: u.Department,
	}
}
