package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"htga/internal/delivery/http/middleware"
	"htga/internal/delivery/http/response"
	domainerrors "htga/internal/domain/errors"
	"htga/internal/domain/service"
	"htga/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SignatureHeader carries the HMAC signature on webhook callbacks.
const SignatureHeader = "X-Signature"

// NDAHandler holds dependencies for NDA e-signature handlers, including the
// provider webhook.
type NDAHandler struct {
	uc           usecase.NDAUsecase
	signatureSvc service.SignatureService
	logger       *slog.Logger
}

// NewNDAHandler is the constructor for NDAHandler, injected by Fx.
func NewNDAHandler(uc usecase.NDAUsecase, signatureSvc service.SignatureService, logger *slog.Logger) *NDAHandler {
	return &NDAHandler{uc: uc, signatureSvc: signatureSvc, logger: logger}
}

// Status returns the signed-in evaluator's NDA state.
func (h *NDAHandler) Status(c echo.Context) error {
	nda, err := h.uc.Status(c.Request().Context(), middleware.Subject(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nda, "NDA status retrieved successfully")
}

type sendNDARequest struct {
	DocumentBase64 string `json:"documentBase64" validate:"required,base64"`
}

// Send creates an e-signature envelope for an evaluator.
func (h *NDAHandler) Send(c echo.Context) error {
	var req sendNDARequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid NDA input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	nda, err := h.uc.Send(c.Request().Context(), c.Param("evaluatorID"), req.DocumentBase64)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nda, "NDA envelope sent")
}

type webhookPayload struct {
	EnvelopeID string `json:"envelopeId"`
	Status     string `json:"status"`
}

// Webhook applies a provider status callback. The raw body is verified
// against the signature header before anything is parsed or written.
func (h *NDAHandler) Webhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Failed to read webhook body")
	}

	if !h.signatureSvc.VerifyWebhookSignature(body, c.Request().Header.Get(SignatureHeader)) {
		h.logger.Warn("Webhook signature verification failed")

		return errors.WithStack(domainerrors.ErrWebhookSignatureInvalid)
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid webhook payload")
	}
	if payload.EnvelopeID == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Envelope ID is required")
	}

	if err := h.uc.HandleWebhook(c.Request().Context(), payload.EnvelopeID, payload.Status); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Webhook processed")
}
