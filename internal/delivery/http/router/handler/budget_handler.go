package handler

import (
	"log/slog"
	"net/http"

	"htga/internal/delivery/http/response"
	"htga/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BudgetHandler holds dependencies for budget projection handlers.
type BudgetHandler struct {
	uc     usecase.BudgetUsecase
	logger *slog.Logger
}

// NewBudgetHandler is the constructor for BudgetHandler, injected by Fx.
func NewBudgetHandler(uc usecase.BudgetUsecase, logger *slog.Logger) *BudgetHandler {
	return &BudgetHandler{uc: uc, logger: logger}
}

// Rows returns the budget projection as JSON.
func (h *BudgetHandler) Rows(c echo.Context) error {
	rows, err := h.uc.Rows(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rows, "Budget rows retrieved successfully")
}

// Export streams the budget projection as an xlsx workbook.
func (h *BudgetHandler) Export(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="budget.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)

	return errors.WithStack(h.uc.Export(c.Request().Context(), c.Response()))
}
