package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/corpspend/expense-api/internal/core/ports"
)

// ReportHandler handles CSV export and emailed report delivery.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// SendReport emails the caller's visible expense summary.
//
// @Summary      Email an expense report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      sendReportRequest  true  "Recipient address"
// @Success      200   {object}  sendReportResponse
// @Failure      400   {object}  errorSchema
// @Failure      401   {object}  errorSchema
// @Failure      500   {object}  errorSchema
// @Router       /expenses/send-report [post]
func (h *ReportHandler) SendReport(c echo.Context) error {
	viewer, err := ctxViewer(c)
	if err != nil {
		return err
	}

	var req sendReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	outcome, err := h.service.SendReport(c.Request().Context(), viewer, req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sendReportResponse{
		Msg:        outcome.Message,
		PreviewURL: outcome.PreviewURL,
	})
}

// ExportCsv streams the caller's visible expense set as a CSV attachment.
//
// @Summary      Export expenses as CSV
// @Tags         reports
// @Produce      text/csv
// @Security     TokenAuth
// @Success      200  {string}  string  "CSV file"
// @Failure      401  {object}  errorSchema
// @Router       /expenses/export/csv [get]
func (h *ReportHandler) ExportCsv(c echo.Context) error {
	viewer, err := ctxViewer(c)
	if err != nil {
		return err
	}

	export, err := h.service.ExportCsv(c.Request().Context(), viewer)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", export.Filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", export.Content)
}
