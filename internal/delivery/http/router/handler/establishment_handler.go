package handler

import (
	"log/slog"
	"net/http"

	"htga/internal/delivery/http/response"
	"htga/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// EstablishmentHandler holds dependencies for establishment admin handlers.
type EstablishmentHandler struct {
	uc     usecase.EstablishmentUsecase
	logger *slog.Logger
}

// NewEstablishmentHandler is the constructor for EstablishmentHandler, injected by Fx.
func NewEstablishmentHandler(uc usecase.EstablishmentUsecase, logger *slog.Logger) *EstablishmentHandler {
	return &EstablishmentHandler{uc: uc, logger: logger}
}

type establishmentRequest struct {
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Address     string `json:"address"`
	ContactInfo string `json:"contactInfo"`
	Rating      string `json:"rating"`
	Budget      string `json:"budget"`
	Currency    string `json:"currency"`
	HalalStatus string `json:"halalStatus"`
	Remarks     string `json:"remarks"`
}

func (r *establishmentRequest) toInput() *usecase.EstablishmentInput {
	return &usecase.EstablishmentInput{
		Name:        r.Name,
		Category:    r.Category,
		Address:     r.Address,
		ContactInfo: r.ContactInfo,
		Rating:      r.Rating,
		Budget:      r.Budget,
		Currency:    r.Currency,
		HalalStatus: r.HalalStatus,
		Remarks:     r.Remarks,
	}
}

// Create persists a new establishment.
func (h *EstablishmentHandler) Create(c echo.Context) error {
	var req establishmentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid establishment input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	establishment, err := h.uc.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, establishment, "Establishment created successfully")
}

// Get returns one establishment.
func (h *EstablishmentHandler) Get(c echo.Context) error {
	establishment, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, establishment, "Establishment retrieved successfully")
}

// List returns every establishment.
func (h *EstablishmentHandler) List(c echo.Context) error {
	establishments, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, establishments, "Establishments retrieved successfully")
}

// Update overwrites an establishment's writable fields.
func (h *EstablishmentHandler) Update(c echo.Context) error {
	var req establishmentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid establishment input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	establishment, err := h.uc.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, establishment, "Establishment updated successfully")
}

// Delete removes an establishment unless assignments still reference it.
func (h *EstablishmentHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Establishment deleted successfully")
}
