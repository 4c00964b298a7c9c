package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/corpspend/expense-api/internal/core/ports"
)

// ExpenseHandler handles HTTP requests for the expense workflow.
type ExpenseHandler struct {
	service ports.ExpenseService
}

func NewExpenseHandler(service ports.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// List returns the caller's visible expense set: everything for
// manager/admin, own records only for employees.
//
// @Summary      List visible expenses
// @Tags         expenses
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   expenseResponse
// @Failure      401  {object}  errorSchema
// @Router       /expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	viewer, err := ctxViewer(c)
	if err != nil {
		return err
	}

	records, err := h.service.ListVisible(c.Request().Context(), viewer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toExpenseResponses(records))
}

// Create submits a new expense request. The record always starts Pending and
// is owned by the caller regardless of role.
//
// @Summary      Create an expense request
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      createExpenseRequest  true  "Expense details"
// @Success      201   {object}  expenseResponse
// @Failure      400   {object}  errorSchema
// @Failure      401   {object}  errorSchema
// @Router       /expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	viewer, err := ctxViewer(c)
	if err != nil {
		return err
	}

	var req createExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	record, err := h.service.Create(c.Request().Context(), ports.CreateExpenseInput{
		Title:     req.Title,
		Amount:    req.Amount,
		Category:  req.Category,
		Date:      req.Date,
		Requester: viewer,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toExpenseResponse(*record))
}

// Transition approves or rejects a pending expense. Restricted to
// manager/admin by the RBAC middleware; the service enforces the same rule
// again before any mutation.
//
// @Summary      Approve or reject an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string             true  "Expense id"
// @Param        body  body      transitionRequest  true  "Decision"
// @Success      200   {object}  expenseResponse
// @Failure      400   {object}  errorSchema
// @Failure      403   {object}  errorSchema
// @Failure      404   {object}  errorSchema
// @Router       /expenses/approve/{id} [put]
func (h *ExpenseHandler) Transition(c echo.Context) error {
	viewer, err := ctxViewer(c)
	if err != nil {
		return err
	}

	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	record, err := h.service.Transition(c.Request().Context(), ports.TransitionInput{
		ExpenseID: c.Param("id"),
		Status:    req.Status,
		Reason:    req.RejectionReason,
		Actor:     viewer,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toExpenseResponse(*record))
}
