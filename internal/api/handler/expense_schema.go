package handler

import "time"

type createExpenseRequest struct {
	Title    string  `json:"title"    validate:"required"`
	Amount   float64 `json:"amount"   validate:"required,gt=0"`
	Category string  `json:"category" validate:"required,oneof=Travel Food Software Equipment Marketing Other"`
	// Date is optional; omitted means "now".
	Date time.Time `json:"date"`
}

type transitionRequest struct {
	Status          string `json:"status" validate:"required,oneof=Approved Rejected"`
	RejectionReason string `json:"rejection_reason"`
}

type sendReportRequest struct {
	Email string `json:"email" validate:"required"`
}

// requesterResponse is the joined requester identity on a listed expense.
type requesterResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type expenseResponse struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Amount          float64            `json:"amount"`
	Category        string             `json:"category"`
	Date            time.Time          `json:"date"`
	Status          string             `json:"status"`
	RejectionReason string             `json:"rejection_reason"`
	RequestedBy     *requesterResponse `json:"requested_by"`
	ActionTakenBy   string             `json:"action_taken_by,omitempty"`
}

type sendReportResponse struct {
	Msg        string `json:"msg"`
	PreviewURL string `json:"preview_url,omitempty"`
}
