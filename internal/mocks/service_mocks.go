package mocks

import (
	"context"
	"io"
	"time"

	"htga/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// IdentityService is a mock of service.IdentityService.
type IdentityService struct {
	mock.Mock
}

func (m *IdentityService) CreateUser(ctx context.Context, email, password, name, role string) (string, error) {
	args := m.Called(ctx, email, password, name, role)

	return args.String(0), args.Error(1)
}

func (m *IdentityService) UpdatePassword(ctx context.Context, uid, password string) error {
	args := m.Called(ctx, uid, password)

	return args.Error(0)
}

func (m *IdentityService) GetUserByEmail(ctx context.Context, email string) (*service.IdentityUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.IdentityUser), args.Error(1)
}

func (m *IdentityService) ListUsersByRole(ctx context.Context, role string) ([]*service.IdentityUser, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*service.IdentityUser), args.Error(1)
}

func (m *IdentityService) SetDisabled(ctx context.Context, uid string, disabled bool) error {
	args := m.Called(ctx, uid, disabled)

	return args.Error(0)
}

func (m *IdentityService) DeleteUser(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)

	return args.Error(0)
}

func (m *IdentityService) VerifyIDToken(ctx context.Context, idToken string) (*service.IdentityUser, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.IdentityUser), args.Error(1)
}

// MailService is a mock of service.MailService.
type MailService struct {
	mock.Mock
}

func (m *MailService) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	args := m.Called(ctx, to, subject, htmlBody, textBody)

	return args.Error(0)
}

// NotificationService is a mock of service.NotificationService.
type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) SendBatchNotification(ctx context.Context, tokens []string, title, body string, data map[string]string) (int, int, []string, error) {
	args := m.Called(ctx, tokens, title, body, data)

	var invalidTokens []string
	if args.Get(2) != nil {
		invalidTokens = args.Get(2).([]string)
	}

	return args.Int(0), args.Int(1), invalidTokens, args.Error(3)
}

// SignatureService is a mock of service.SignatureService.
type SignatureService struct {
	mock.Mock
}

func (m *SignatureService) CreateEnvelope(ctx context.Context, recipientName, recipientEmail, documentBase64 string) (string, error) {
	args := m.Called(ctx, recipientName, recipientEmail, documentBase64)

	return args.String(0), args.Error(1)
}

func (m *SignatureService) EnvelopeStatus(ctx context.Context, envelopeID string) (string, error) {
	args := m.Called(ctx, envelopeID)

	return args.String(0), args.Error(1)
}

func (m *SignatureService) VerifyWebhookSignature(payload []byte, signature string) bool {
	args := m.Called(payload, signature)

	return args.Bool(0)
}

// ReceiptStorage is a mock of service.ReceiptStorage.
type ReceiptStorage struct {
	mock.Mock
}

func (m *ReceiptStorage) Save(ctx context.Context, key, contentType string, content io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, content)

	return args.String(0), args.Error(1)
}

// PasswordHasher is a mock of service.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Check(password, stored string) bool {
	args := m.Called(password, stored)

	return args.Bool(0)
}

func (m *PasswordHasher) IsHashed(stored string) bool {
	args := m.Called(stored)

	return args.Bool(0)
}

// TokenService is a mock of service.TokenService.
type TokenService struct {
	mock.Mock
}

func (m *TokenService) GenerateTokens(subject string, roles []string) (string, string, error) {
	args := m.Called(subject, roles)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *TokenService) ValidateAccessToken(tokenString string) (string, []string, error) {
	args := m.Called(tokenString)

	var roles []string
	if args.Get(1) != nil {
		roles = args.Get(1).([]string)
	}

	return args.String(0), roles, args.Error(2)
}

func (m *TokenService) ValidateRefreshToken(tokenString string) (string, error) {
	args := m.Called(tokenString)

	return args.String(0), args.Error(1)
}

func (m *TokenService) GetRefreshTokenDuration() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}
