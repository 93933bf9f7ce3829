package entity

import "time"

// NDAStatus is the portal-side state of an evaluator's NDA envelope.
type NDAStatus string

const (
	NDAStatusSent      NDAStatus = "sent"
	NDAStatusDelivered NDAStatus = "delivered"
	NDAStatusSigned    NDAStatus = "signed"
	NDAStatusDeclined  NDAStatus = "declined"
	NDAStatusVoided    NDAStatus = "voided"
)

// NDA tracks the e-signature envelope sent to an evaluator.
type NDA struct {
	EnvelopeID     string     `json:"envelopeId"`
	Status         NDAStatus  `json:"status"`
	SentAt         time.Time  `json:"sentAt"`
	LastUpdated    time.Time  `json:"lastUpdated"`
	ProviderStatus string     `json:"providerStatus,omitempty"` // Raw status string as reported by the e-signature provider.
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}

// NDAStatusFromProvider maps a provider envelope status to the portal status.
// The boolean is false for statuses the portal does not track.
func NDAStatusFromProvider(providerStatus string) (NDAStatus, bool) {
	switch providerStatus {
	case "sent":
		return NDAStatusSent, true
	case "delivered":
		return NDAStatusDelivered, true
	case "completed", "signed":
		return NDAStatusSigned, true
	case "declined":
		return NDAStatusDeclined, true
	case "voided":
		return NDAStatusVoided, true
	}

	return "", false
}
