// Package usecase defines the application's use case interfaces and their
// input/output types.
package usecase

import (
	"context"
	"time"

	"htga/internal/domain/entity"
)

// RegisterEvaluatorInput carries the fields of a self-registration request.
type RegisterEvaluatorInput struct {
	Name           string
	Email          string
	Phone          string
	Company        string
	Position       string
	Specialties    []string
	Password       string
	MaxAssignments int
}

// LoginInput carries portal sign-in credentials.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput carries the signed-in evaluator and its session tokens.
type LoginOutput struct {
	Evaluator        *entity.Evaluator
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// UpdateProfileInput carries a partial profile update. Empty string fields
// are left unchanged; a non-nil Specialties slice replaces the stored set.
type UpdateProfileInput struct {
	Name        string
	Phone       string
	Company     string
	Position    string
	Specialties []string
}

// EvaluatorUsecase defines evaluator account and profile operations.
type EvaluatorUsecase interface {
	// Register creates an evaluator record, its identity-provider account,
	// and emails the credentials. The portal ID is allocated atomically.
	Register(ctx context.Context, input *RegisterEvaluatorInput) (*entity.Evaluator, error)

	// Login verifies credentials (legacy plaintext records included) and
	// issues session tokens. Legacy credentials are upgraded to hashed form
	// on success.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Refresh exchanges a valid refresh token for a new token pair. The
	// evaluator must still exist; a deleted account cannot refresh.
	Refresh(ctx context.Context, refreshToken string) (*LoginOutput, error)

	// ForgotPassword issues a reset token valid for one hour and emails the
	// reset link. Unknown emails are ignored without error.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword consumes a reset token and stores the new password.
	ResetPassword(ctx context.Context, token, newPassword string) error

	// ChangePassword verifies the current password and stores the new one.
	ChangePassword(ctx context.Context, evaluatorID, currentPassword, newPassword string) error

	// GetProfile returns the evaluator without credential fields.
	GetProfile(ctx context.Context, evaluatorID string) (*entity.Evaluator, error)

	// UpdateProfile applies a partial profile update.
	UpdateProfile(ctx context.Context, evaluatorID string, input *UpdateProfileInput) (*entity.Evaluator, error)

	// RegisterFCMToken adds a push token to the evaluator's token set.
	RegisterFCMToken(ctx context.Context, evaluatorID, token string) error

	// List returns every evaluator, credentials stripped.
	List(ctx context.Context) ([]*entity.Evaluator, error)

	// Delete removes an evaluator and its identity account. Deletion is
	// blocked while any assignment references the evaluator.
	Delete(ctx context.Context, evaluatorID string) error
}
