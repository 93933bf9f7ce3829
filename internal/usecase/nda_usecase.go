package usecase

import (
	"context"

	"htga/internal/domain/entity"
)

// NDAUsecase defines the NDA e-signature flow.
type NDAUsecase interface {
	// Send creates an envelope for the evaluator against the base64-encoded
	// NDA document and records it on the evaluator.
	Send(ctx context.Context, evaluatorID, documentBase64 string) (*entity.NDA, error)

	// Status returns the evaluator's NDA state, polling the provider for a
	// fresh status while the envelope is still open.
	Status(ctx context.Context, evaluatorID string) (*entity.NDA, error)

	// HandleWebhook applies a provider-reported status transition to the
	// evaluator owning the envelope.
	HandleWebhook(ctx context.Context, envelopeID, providerStatus string) error
}
