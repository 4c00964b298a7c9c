package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/corpspend/expense-api/internal/infrastructure/mail"
)

// OutboxHandler serves captured test-mode emails so the preview references
// returned by send-report resolve to something viewable. Only registered
// when the application runs without real SMTP credentials.
type OutboxHandler struct {
	outbox *mail.Outbox
}

func NewOutboxHandler(outbox *mail.Outbox) *OutboxHandler {
	return &OutboxHandler{outbox: outbox}
}

// Get renders the captured message at the given index.
func (h *OutboxHandler) Get(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "message not found")
	}

	msg, ok := h.outbox.Get(index)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "message not found")
	}
	return c.HTML(http.StatusOK, msg.HTML)
}
