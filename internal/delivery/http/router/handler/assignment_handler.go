package handler

import (
	"log/slog"
	"net/http"

	"htga/internal/delivery/http/middleware"
	"htga/internal/delivery/http/response"
	"htga/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AssignmentHandler holds dependencies for assignment handlers, both the
// evaluator-facing and the admin-facing routes.
type AssignmentHandler struct {
	uc     usecase.AssignmentUsecase
	logger *slog.Logger
}

// NewAssignmentHandler is the constructor for AssignmentHandler, injected by Fx.
func NewAssignmentHandler(uc usecase.AssignmentUsecase, logger *slog.Logger) *AssignmentHandler {
	return &AssignmentHandler{uc: uc, logger: logger}
}

// ListMine returns the signed-in evaluator's assignments.
func (h *AssignmentHandler) ListMine(c echo.Context) error {
	views, err := h.uc.ListForEvaluator(c.Request().Context(), middleware.Subject(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, views, "Assignments retrieved successfully")
}

type submitClaimRequest struct {
	ReceiptURL  string  `json:"receiptUrl" validate:"required,url"`
	AmountSpent float64 `json:"amountSpent" validate:"gte=0"`
}

// SubmitClaim records the signed-in evaluator's claim on an assignment.
func (h *AssignmentHandler) SubmitClaim(c echo.Context) error {
	var req submitClaimRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid claim input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	assignment, err := h.uc.SubmitClaim(c.Request().Context(), &usecase.SubmitClaimInput{
		AssignmentID: c.Param("id"),
		EvaluatorID:  middleware.Subject(c),
		ReceiptURL:   req.ReceiptURL,
		AmountSpent:  req.AmountSpent,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, assignment, "Claim submitted successfully")
}

type reassignRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// RequestReassignment files a reassignment request for the signed-in
// evaluator.
func (h *AssignmentHandler) RequestReassignment(c echo.Context) error {
	var req reassignRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reassignment input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	requestID, err := h.uc.RequestReassignment(c.Request().Context(), c.Param("id"), middleware.Subject(c), req.Reason)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"requestId": requestID}, "Reassignment requested")
}

// List returns every assignment joined with display data.
func (h *AssignmentHandler) List(c echo.Context) error {
	views, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, views, "Assignments retrieved successfully")
}

type createAssignmentRequest struct {
	EstablishmentID string `json:"establishmentId" validate:"required"`
	Evaluator1ID    string `json:"evaluator1Id" validate:"required"`
	Evaluator2ID    string `json:"evaluator2Id" validate:"required"`
}

// Create performs a manual single-pair assignment.
func (h *AssignmentHandler) Create(c echo.Context) error {
	var req createAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid assignment input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	assignment, err := h.uc.Create(c.Request().Context(), req.EstablishmentID, req.Evaluator1ID, req.Evaluator2ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, assignment, "Assignment created successfully")
}

// Candidates returns the per-slot eligible evaluator lists.
func (h *AssignmentHandler) Candidates(c echo.Context) error {
	candidates, err := h.uc.Candidates(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, candidates, "Candidates retrieved successfully")
}

type updateSlotsRequest struct {
	Evaluator1ID string `json:"evaluator1Id"`
	Evaluator2ID string `json:"evaluator2Id"`
}

// UpdateSlots reassigns or clears the two evaluator slots; both empty
// removes the assignment.
func (h *AssignmentHandler) UpdateSlots(c echo.Context) error {
	var req updateSlotsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid slot input")
	}

	assignment, deleted, err := h.uc.UpdateSlots(c.Request().Context(), c.Param("id"), req.Evaluator1ID, req.Evaluator2ID)
	if err != nil {
		return errors.WithStack(err)
	}
	if deleted {
		return response.Success(c, http.StatusOK, map[string]bool{"deleted": true}, "Assignment deleted")
	}

	return response.Success(c, http.StatusOK, assignment, "Assignment updated successfully")
}

// Delete removes an assignment.
func (h *AssignmentHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Assignment deleted successfully")
}

type autoAssignRequest struct {
	ClearExisting bool `json:"clearExisting"`
}

// AutoAssign runs the matching engine. The summary is returned with 200 even
// when every establishment failed to match.
func (h *AssignmentHandler) AutoAssign(c echo.Context) error {
	var req autoAssignRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid auto-assign input")
	}

	summary, err := h.uc.AutoAssign(c.Request().Context(), req.ClearExisting)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary, "Auto-assignment finished")
}

// Validate returns the read-only integrity report.
func (h *AssignmentHandler) Validate(c echo.Context) error {
	report, err := h.uc.Validate(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, report, "Validation report generated")
}
