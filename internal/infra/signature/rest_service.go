// Package signature implements the SignatureService interface against a
// DocuSign-style envelope REST API.
package signature

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"htga/config"
	"htga/internal/domain/service"
)

type restService struct {
	httpClient     *http.Client
	baseURL        string
	accountID      string
	integrationKey string
	webhookSecret  []byte
}

// New creates the e-signature service from config.
func New(cfg *config.Config) (service.SignatureService, error) {
	if cfg.Signature == nil {
		return nil, errors.New("signature configuration is missing")
	}

	return &restService{
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		baseURL:        cfg.Signature.BaseURL,
		accountID:      cfg.Signature.AccountID,
		integrationKey: cfg.Signature.IntegrationKey,
		webhookSecret:  []byte(cfg.Signature.WebhookSecret),
	}, nil
}

type envelopeRequest struct {
	EmailSubject string     `json:"emailSubject"`
	Status       string     `json:"status"`
	Documents    []document `json:"documents"`
	Recipients   recipients `json:"recipients"`
}

type document struct {
	DocumentBase64 string `json:"documentBase64"`
	Name           string `json:"name"`
	FileExtension  string `json:"fileExtension"`
	DocumentID     string `json:"documentId"`
}

type recipients struct {
	Signers []signer `json:"signers"`
}

type signer struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	RecipientID string `json:"recipientId"`
}

type envelopeResponse struct {
	EnvelopeID string `json:"envelopeId"`
	Status     string `json:"status"`
}

// CreateEnvelope creates a one-recipient envelope against the base64-encoded
// NDA document and returns the provider envelope ID.
func (s *restService) CreateEnvelope(ctx context.Context, recipientName, recipientEmail, documentBase64 string) (string, error) {
	payload := envelopeRequest{
		EmailSubject: "HTGA Evaluator Non-Disclosure Agreement",
		Status:       "sent",
		Documents: []document{{
			DocumentBase64: documentBase64,
			Name:           "NDA",
			FileExtension:  "pdf",
			DocumentID:     "1",
		}},
		Recipients: recipients{
			Signers: []signer{{
				Email:       recipientEmail,
				Name:        recipientName,
				RecipientID: "1",
			}},
		},
	}

	var result envelopeResponse
	url := fmt.Sprintf("%s/accounts/%s/envelopes", s.baseURL, s.accountID)
	if err := s.do(ctx, http.MethodPost, url, payload, &result); err != nil {
		return "", err
	}
	if result.EnvelopeID == "" {
		return "", errors.New("provider returned no envelope id")
	}

	return result.EnvelopeID, nil
}

// EnvelopeStatus polls the provider for the envelope's current status.
func (s *restService) EnvelopeStatus(ctx context.Context, envelopeID string) (string, error) {
	var result envelopeResponse
	url := fmt.Sprintf("%s/accounts/%s/envelopes/%s", s.baseURL, s.accountID, envelopeID)
	if err := s.do(ctx, http.MethodGet, url, nil, &result); err != nil {
		return "", err
	}

	return result.Status, nil
}

// VerifyWebhookSignature checks the base64-encoded HMAC-SHA256 signature the
// provider attaches to webhook deliveries.
func (s *restService) VerifyWebhookSignature(payload []byte, signature string) bool {
	mac := hmac.New(sha256.New, s.webhookSecret)
	mac.Write(payload)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

func (s *restService) do(ctx context.Context, method, url string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "failed to encode request")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Authorization", "Bearer "+s.integrationKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "signature provider request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return errors.Errorf("signature provider returned %d: %s", resp.StatusCode, raw)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return errors.Wrap(err, "failed to decode provider response")
		}
	}

	return nil
}
