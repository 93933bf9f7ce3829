package handler

import (
	"log/slog"
	"net/http"

	"htga/internal/delivery/http/response"
	"htga/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// NotificationHandler holds dependencies for push broadcast handlers.
type NotificationHandler struct {
	uc     usecase.NotificationUsecase
	logger *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler, injected by Fx.
func NewNotificationHandler(uc usecase.NotificationUsecase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{uc: uc, logger: logger}
}

type broadcastRequest struct {
	EvaluatorIDs []string          `json:"evaluatorIds"`
	Title        string            `json:"title" validate:"required"`
	Body         string            `json:"body" validate:"required"`
	Data         map[string]string `json:"data"`
}

// Broadcast sends a push notification to the selected evaluators. An empty
// recipient list targets everyone.
func (h *NotificationHandler) Broadcast(c echo.Context) error {
	var req broadcastRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid broadcast input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	summary, err := h.uc.Broadcast(c.Request().Context(), &usecase.BroadcastInput{
		EvaluatorIDs: req.EvaluatorIDs,
		Title:        req.Title,
		Body:         req.Body,
		Data:         req.Data,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary, "Broadcast finished")
}
