package service

import "context"

// MailService defines the interface for outbound transactional email.
// Used for credential delivery, password-reset links, and admin digests.
type MailService interface {
	// Send delivers an HTML+text message to a single address.
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}
