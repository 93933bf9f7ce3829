package service

import "context"

// SignatureService abstracts the e-signature envelope provider used for NDA
// signing. Status transitions also arrive through webhook callbacks, which
// are verified with VerifyWebhookSignature before any write.
type SignatureService interface {
	// CreateEnvelope creates an envelope for one recipient against a
	// base64-encoded document and returns the provider envelope ID.
	CreateEnvelope(ctx context.Context, recipientName, recipientEmail, documentBase64 string) (string, error)

	// EnvelopeStatus polls the provider for the envelope's current status.
	EnvelopeStatus(ctx context.Context, envelopeID string) (string, error)

	// VerifyWebhookSignature checks the HMAC signature on a webhook payload.
	VerifyWebhookSignature(payload []byte, signature string) bool
}
