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

// EvaluatorHandler holds dependencies for evaluator profile and admin
// evaluator-management handlers.
type EvaluatorHandler struct {
	uc     usecase.EvaluatorUsecase
	logger *slog.Logger
}

// NewEvaluatorHandler is the constructor for EvaluatorHandler, injected by Fx.
func NewEvaluatorHandler(uc usecase.EvaluatorUsecase, logger *slog.Logger) *EvaluatorHandler {
	return &EvaluatorHandler{uc: uc, logger: logger}
}

// GetProfile returns the signed-in evaluator's profile.
func (h *EvaluatorHandler) GetProfile(c echo.Context) error {
	evaluator, err := h.uc.GetProfile(c.Request().Context(), middleware.Subject(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, evaluator, "Profile retrieved successfully")
}

type updateProfileRequest struct {
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	Specialties []string `json:"specialties"`
}

// UpdateProfile applies a partial profile update for the signed-in evaluator.
func (h *EvaluatorHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	evaluator, err := h.uc.UpdateProfile(c.Request().Context(), middleware.Subject(c), &usecase.UpdateProfileInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Company:     req.Company,
		Position:    req.Position,
		Specialties: req.Specialties,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, evaluator, "Profile updated successfully")
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// ChangePassword verifies the current password and stores a new one.
func (h *EvaluatorHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.ChangePassword(c.Request().Context(), middleware.Subject(c), req.CurrentPassword, req.NewPassword); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

type fcmTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// RegisterFCMToken adds a push token to the signed-in evaluator's token set.
func (h *EvaluatorHandler) RegisterFCMToken(c echo.Context) error {
	var req fcmTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid token input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.RegisterFCMToken(c.Request().Context(), middleware.Subject(c), req.Token); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Push token registered")
}

// List returns every evaluator for the admin console.
func (h *EvaluatorHandler) List(c echo.Context) error {
	evaluators, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, evaluators, "Evaluators retrieved successfully")
}

// Get returns one evaluator by portal ID.
func (h *EvaluatorHandler) Get(c echo.Context) error {
	evaluator, err := h.uc.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, evaluator, "Evaluator retrieved successfully")
}

// Update applies an admin-side profile update to an evaluator.
func (h *EvaluatorHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	evaluator, err := h.uc.UpdateProfile(c.Request().Context(), c.Param("id"), &usecase.UpdateProfileInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Company:     req.Company,
		Position:    req.Position,
		Specialties: req.Specialties,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, evaluator, "Evaluator updated successfully")
}

// Delete removes an evaluator and its identity account.
func (h *EvaluatorHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Evaluator deleted successfully")
}
