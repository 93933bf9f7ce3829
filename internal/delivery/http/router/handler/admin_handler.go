package handler

import (
	"log/slog"
	"net/http"

	"htga/internal/delivery/http/response"
	"htga/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for superadmin account management.
type AdminHandler struct {
	uc     usecase.AdminUsecase
	logger *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{uc: uc, logger: logger}
}

type createAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
}

// Create provisions a new admin identity account.
func (h *AdminHandler) Create(c echo.Context) error {
	var req createAdminRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid admin input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	admin, err := h.uc.CreateAdmin(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, admin, "Admin created successfully")
}

// List returns every admin account.
func (h *AdminHandler) List(c echo.Context) error {
	admins, err := h.uc.ListAdmins(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, admins, "Admins retrieved successfully")
}

type setDisabledRequest struct {
	Disabled bool `json:"disabled"`
}

// SetDisabled enables or disables an admin account.
func (h *AdminHandler) SetDisabled(c echo.Context) error {
	var req setDisabledRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}

	if err := h.uc.SetAdminDisabled(c.Request().Context(), c.Param("uid"), req.Disabled); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Admin updated successfully")
}

// Delete removes an admin account.
func (h *AdminHandler) Delete(c echo.Context) error {
	if err := h.uc.DeleteAdmin(c.Request().Context(), c.Param("uid")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Admin deleted successfully")
}
