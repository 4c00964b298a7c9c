package handler

import (
	"github.com/corpspend/expense-api/internal/core/ports"
)

// toExpenseResponse maps a service record to the transport representation.
func toExpenseResponse(r ports.ExpenseRecord) expenseResponse {
	resp := expenseResponse{
		ID:              r.ID,
		Title:           r.Title,
		Amount:          r.Amount,
		Category:        string(r.Category),
		Date:            r.Date,
		Status:          string(r.Status),
		RejectionReason: r.RejectionReason,
		ActionTakenBy:   r.ActionTakenBy,
	}
	if r.Requester != nil {
		resp.RequestedBy = &requesterResponse{
			ID:         r.Requester.ID,
			Username:   r.Requester.Username,
			Email:      r.Requester.Email,
			Department: r.Requester.Department,
		}
	}
	return resp
}

func toExpenseResponses(records []ports.ExpenseRecord) []expenseResponse {
	out := make([]expenseResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toExpenseResponse(r))
	}
	return out
}
