package handler

import (
	"log/slog"
	"net/http"
	"path"

	"htga/internal/delivery/http/middleware"
	"htga/internal/delivery/http/response"
	"htga/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ReceiptHandler stores uploaded receipt documents for claim submission.
type ReceiptHandler struct {
	storage service.ReceiptStorage
	logger  *slog.Logger
}

// NewReceiptHandler is the constructor for ReceiptHandler, injected by Fx.
func NewReceiptHandler(storage service.ReceiptStorage, logger *slog.Logger) *ReceiptHandler {
	return &ReceiptHandler{storage: storage, logger: logger}
}

// Upload accepts a multipart receipt file and returns its stored URL. The
// blob key is namespaced by evaluator so uploads never collide.
func (h *ReceiptHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Receipt file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded receipt")
	}
	defer file.Close()

	key := path.Join("receipts", middleware.Subject(c), uuid.NewString()+path.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	url, err := h.storage.Save(c.Request().Context(), key, contentType, file)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{"url": url}, "Receipt uploaded")
}
