package domain

import (
	"errors"
	"time"
)

// ExpenseStatus represents the lifecycle state of an expense request.
type ExpenseStatus string

const (
	StatusPending  ExpenseStatus = "Pending"
	StatusApproved ExpenseStatus = "Approved"
	StatusRejected ExpenseStatus = "Rejected"
)

// Valid reports whether s is one of the three known statuses.
func (s ExpenseStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s is an end state. No guard prevents a further
// transition on a terminal expense: a second approve/reject overwrites the
// previous decision (last write wins).
func (s ExpenseStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Category is the closed set of expense categories.
type Category string

const (
	CategoryTravel    Category = "Travel"
	CategoryFood      Category = "Food"
	CategorySoftware  Category = "Software"
	CategoryEquipment Category = "Equipment"
	CategoryMarketing Category = "Marketing"
	CategoryOther     Category = "Other"
)

// Valid reports whether c is one of the six known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTravel, CategoryFood, CategorySoftware,
		CategoryEquipment, CategoryMarketing, CategoryOther:
		return true
	}
	return false
}

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("username, email and password are required")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCategory    = errors.New("invalid expense category")
	ErrInvalidStatus      = errors.New("invalid expense status")
	ErrInvalidRecipient   = errors.New("invalid recipient address")
	ErrDeliveryFailed     = errors.New("report delivery failed")
)

// Expense is the core aggregate: a reimbursement request owned by its
// requester and mutated once by a manager/admin decision.
type Expense struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Amount          float64       `json:"amount"`
	Category        Category      `json:"category"`
	Date            time.Time     `json:"date"`
	RequestedBy     string        `json:"requested_by"`
	Status          ExpenseStatus `json:"status"`
	RejectionReason string        `json:"rejection_reason"`
	ActionTakenBy   string        `json:"action_taken_by,omitempty"`
}
