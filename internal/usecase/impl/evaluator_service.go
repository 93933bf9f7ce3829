// Package impl provides the implementations for the usecase interfaces.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"htga/internal/domain/entity"
	domainerrors "htga/internal/domain/errors"
	"htga/internal/domain/identifier"
	"htga/internal/domain/repository"
	"htga/internal/domain/service"
	"htga/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const resetTokenTTL = time.Hour

// evaluatorService implements the EvaluatorUsecase interface.
type evaluatorService struct {
	evaluatorRepo  repository.EvaluatorRepository
	assignmentRepo repository.AssignmentRepository
	counterRepo    repository.CounterRepository
	identitySvc    service.IdentityService
	mailSvc        service.MailService
	hasher         service.PasswordHasher
	tokenSvc       service.TokenService
	logger         *slog.Logger
}

// EvaluatorServiceParams holds dependencies for evaluatorService, injected by Fx.
type EvaluatorServiceParams struct {
	fx.In

	EvaluatorRepo  repository.EvaluatorRepository
	AssignmentRepo repository.AssignmentRepository
	CounterRepo    repository.CounterRepository
	IdentitySvc    service.IdentityService
	MailSvc        service.MailService
	Hasher         service.PasswordHasher
	TokenSvc       service.TokenService
	Logger         *slog.Logger
}

// NewEvaluatorService is the constructor for evaluatorService.
func NewEvaluatorService(params EvaluatorServiceParams) usecase.EvaluatorUsecase {
	return &evaluatorService{
		evaluatorRepo:  params.EvaluatorRepo,
		assignmentRepo: params.AssignmentRepo,
		counterRepo:    params.CounterRepo,
		identitySvc:    params.IdentitySvc,
		mailSvc:        params.MailSvc,
		hasher:         params.Hasher,
		tokenSvc:       params.TokenSvc,
		logger:         params.Logger,
	}
}

// Register creates the evaluator record, its identity-provider account, and
// mails the credentials. The email must be unused by both evaluator records
// and provider accounts of any role.
func (srv *evaluatorService) Register(ctx context.Context, input *usecase.RegisterEvaluatorInput) (*entity.Evaluator, error) {
	if _, err := srv.evaluatorRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, repository.ErrEvaluatorNotFound) {
		return nil, errors.Wrap(err, "failed to check email uniqueness")
	}
	existing, err := srv.identitySvc.GetUserByEmail(ctx, input.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check identity accounts")
	}
	if existing != nil {
		return nil, domainerrors.ErrEmailAlreadyRegistered
	}

	seq, err := srv.counterRepo.Next(ctx, repository.CounterEvaluators)
	if err != nil {
		return nil, errors.Wrap(err, "failed to allocate evaluator id")
	}
	portalID := identifier.FormatEvaluatorID(int(seq))

	hashed, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	uid, err := srv.identitySvc.CreateUser(ctx, input.Email, input.Password, input.Name, service.RoleEvaluator)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create identity account")
	}

	now := time.Now().UTC()
	evaluator := &entity.Evaluator{
		ID:             portalID,
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Company:        input.Company,
		Position:       input.Position,
		Specialties:    input.Specialties,
		MaxAssignments: input.MaxAssignments,
		Password:       hashed,
		FirebaseUID:    uid,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	evaluator.NormalizeSpecialties()

	if err := srv.evaluatorRepo.Create(ctx, evaluator); err != nil {
		// Roll back the provider account so the email stays claimable.
		if delErr := srv.identitySvc.DeleteUser(ctx, uid); delErr != nil {
			srv.logger.Error("Failed to roll back identity account",
				slog.String("uid", uid), slog.Any("error", delErr))
		}

		return nil, errors.Wrap(err, "failed to create evaluator")
	}

	srv.sendCredentialsMail(ctx, evaluator, input.Password)
	srv.logger.Info("Evaluator registered", slog.String("evaluatorID", portalID))

	result := *evaluator
	stripCredentials(&result)

	return &result, nil
}

// Login verifies the stored credential and issues session tokens. A record
// still holding a legacy plaintext credential is upgraded to hashed form on
// the first successful sign-in.
func (srv *evaluatorService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	evaluator, err := srv.evaluatorRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrEvaluatorNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to look up evaluator")
	}

	if !srv.hasher.Check(input.Password, evaluator.Password) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !srv.hasher.IsHashed(evaluator.Password) {
		if err := srv.storePassword(ctx, evaluator, input.Password); err != nil {
			srv.logger.Warn("Failed to upgrade legacy credential",
				slog.String("evaluatorID", evaluator.ID), slog.Any("error", err))
		}
	}

	accessToken, refreshToken, err := srv.tokenSvc.GenerateTokens(evaluator.ID, []string{service.RoleEvaluator})
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	result := *evaluator
	stripCredentials(&result)

	return &usecase.LoginOutput{
		Evaluator:        &result,
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: time.Now().UTC().Add(srv.tokenSvc.GetRefreshTokenDuration()),
	}, nil
}

// Refresh exchanges a refresh token for a new token pair. The token's
// subject must still resolve to an evaluator record, so deleting an account
// also cuts off its outstanding refresh tokens.
func (srv *evaluatorService) Refresh(ctx context.Context, refreshToken string) (*usecase.LoginOutput, error) {
	evaluatorID, err := srv.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	evaluator, err := srv.loadEvaluator(ctx, evaluatorID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrEvaluatorNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, err
	}

	accessToken, newRefreshToken, err := srv.tokenSvc.GenerateTokens(evaluator.ID, []string{service.RoleEvaluator})
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	result := *evaluator
	stripCredentials(&result)

	return &usecase.LoginOutput{
		Evaluator:        &result,
		AccessToken:      accessToken,
		RefreshToken:     newRefreshToken,
		RefreshExpiresAt: time.Now().UTC().Add(srv.tokenSvc.GetRefreshTokenDuration()),
	}, nil
}

// ForgotPassword issues a one-hour reset token. An unknown email returns
// success without side effects, so the endpoint does not leak which
// addresses hold accounts.
func (srv *evaluatorService) ForgotPassword(ctx context.Context, email string) error {
	evaluator, err := srv.evaluatorRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrEvaluatorNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to look up evaluator")
	}

	expiry := time.Now().UTC().Add(resetTokenTTL)
	evaluator.ResetToken = uuid.NewString()
	evaluator.ResetTokenExpiry = &expiry
	evaluator.UpdatedAt = time.Now().UTC()

	if err := srv.evaluatorRepo.Update(ctx, evaluator); err != nil {
		return errors.Wrap(err, "failed to store reset token")
	}

	srv.sendResetMail(ctx, evaluator)

	return nil
}

// ResetPassword consumes a reset token. Expired or unknown tokens fail with
// the same error.
func (srv *evaluatorService) ResetPassword(ctx context.Context, token, newPassword string) error {
	evaluator, err := srv.evaluatorRepo.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrEvaluatorNotFound) {
			return domainerrors.ErrResetTokenInvalid
		}

		return errors.Wrap(err, "failed to look up reset token")
	}
	if evaluator.ResetTokenExpiry == nil || time.Now().UTC().After(*evaluator.ResetTokenExpiry) {
		return domainerrors.ErrResetTokenInvalid
	}

	evaluator.ClearResetToken()

	return srv.storePassword(ctx, evaluator, newPassword)
}

func (srv *evaluatorService) ChangePassword(ctx context.Context, evaluatorID, currentPassword, newPassword string) error {
	evaluator, err := srv.loadEvaluator(ctx, evaluatorID)
	if err != nil {
		return err
	}
	if !srv.hasher.Check(currentPassword, evaluator.Password) {
		return domainerrors.ErrInvalidCredentials
	}

	return srv.storePassword(ctx, evaluator, newPassword)
}

func (srv *evaluatorService) GetProfile(ctx context.Context, evaluatorID string) (*entity.Evaluator, error) {
	evaluator, err := srv.loadEvaluator(ctx, evaluatorID)
	if err != nil {
		return nil, err
	}

	result := *evaluator
	stripCredentials(&result)

	return &result, nil
}

// UpdateProfile applies a partial update. Email, portal ID, and credential
// fields are never touched here.
func (srv *evaluatorService) UpdateProfile(ctx context.Context, evaluatorID string, input *usecase.UpdateProfileInput) (*entity.Evaluator, error) {
	evaluator, err := srv.loadEvaluator(ctx, evaluatorID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		evaluator.Name = input.Name
	}
	if input.Phone != "" {
		evaluator.Phone = input.Phone
	}
	if input.Company != "" {
		evaluator.Company = input.Company
	}
	if input.Position != "" {
		evaluator.Position = input.Position
	}
	if input.Specialties != nil {
		evaluator.Specialties = input.Specialties
		evaluator.NormalizeSpecialties()
	}
	evaluator.UpdatedAt = time.Now().UTC()

	if err := srv.evaluatorRepo.Update(ctx, evaluator); err != nil {
		return nil, errors.Wrap(err, "failed to update evaluator")
	}

	result := *evaluator
	stripCredentials(&result)

	return &result, nil
}

func (srv *evaluatorService) RegisterFCMToken(ctx context.Context, evaluatorID, token string) error {
	evaluator, err := srv.loadEvaluator(ctx, evaluatorID)
	if err != nil {
		return err
	}

	before := len(evaluator.FCMTokens)
	evaluator.AddFCMToken(token)
	if len(evaluator.FCMTokens) == before {
		return nil
	}
	evaluator.UpdatedAt = time.Now().UTC()

	return errors.Wrap(srv.evaluatorRepo.Update(ctx, evaluator), "failed to store fcm token")
}

func (srv *evaluatorService) List(ctx context.Context) ([]*entity.Evaluator, error) {
	evaluators, err := srv.evaluatorRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list evaluators")
	}

	results := make([]*entity.Evaluator, 0, len(evaluators))
	for _, evaluator := range evaluators {
		result := *evaluator
		stripCredentials(&result)
		results = append(results, &result)
	}

	return results, nil
}

// Delete removes the evaluator and its provider account. Deletion is
// refused while any assignment slot still references the evaluator.
func (srv *evaluatorService) Delete(ctx context.Context, evaluatorID string) error {
	evaluator, err := srv.loadEvaluator(ctx, evaluatorID)
	if err != nil {
		return err
	}

	assignments, err := srv.assignmentRepo.FindAll(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check assignment references")
	}
	for _, assignment := range assignments {
		if assignment.HasEvaluator(evaluatorID) {
			return domainerrors.ErrEvaluatorReferenced.WithDetails(assignment.ID)
		}
	}

	if err := srv.evaluatorRepo.Delete(ctx, evaluatorID); err != nil {
		return errors.Wrap(err, "failed to delete evaluator")
	}

	if evaluator.FirebaseUID != "" {
		if err := srv.identitySvc.DeleteUser(ctx, evaluator.FirebaseUID); err != nil {
			srv.logger.Warn("Failed to delete identity account",
				slog.String("uid", evaluator.FirebaseUID), slog.Any("error", err))
		}
	}

	srv.logger.Info("Evaluator deleted", slog.String("evaluatorID", evaluatorID))

	return nil
}

func (srv *evaluatorService) loadEvaluator(ctx context.Context, evaluatorID string) (*entity.Evaluator, error) {
	evaluator, err := srv.evaluatorRepo.FindByID(ctx, evaluatorID)
	if err != nil {
		if errors.Is(err, repository.ErrEvaluatorNotFound) {
			return nil, domainerrors.ErrEvaluatorNotFound
		}

		return nil, errors.Wrap(err, "failed to load evaluator")
	}

	return evaluator, nil
}

// storePassword hashes and persists a new credential, keeping the provider
// account's password in sync.
func (srv *evaluatorService) storePassword(ctx context.Context, evaluator *entity.Evaluator, password string) error {
	hashed, err := srv.hasher.Hash(password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	evaluator.Password = hashed
	evaluator.UpdatedAt = time.Now().UTC()
	if err := srv.evaluatorRepo.Update(ctx, evaluator); err != nil {
		return errors.Wrap(err, "failed to store password")
	}

	if evaluator.FirebaseUID != "" {
		if err := srv.identitySvc.UpdatePassword(ctx, evaluator.FirebaseUID, password); err != nil {
			srv.logger.Warn("Failed to sync identity password",
				slog.String("uid", evaluator.FirebaseUID), slog.Any("error", err))
		}
	}

	return nil
}

func (srv *evaluatorService) sendCredentialsMail(ctx context.Context, evaluator *entity.Evaluator, password string) {
	subject := "Your evaluator portal account"
	textBody := fmt.Sprintf(
		"Welcome %s,\n\nYour evaluator account is ready.\nEvaluator ID: %s\nEmail: %s\nPassword: %s\n",
		evaluator.Name, evaluator.ID, evaluator.Email, password)
	htmlBody := fmt.Sprintf(
		"<p>Welcome %s,</p><p>Your evaluator account is ready.</p><ul><li>Evaluator ID: <b>%s</b></li><li>Email: %s</li><li>Password: %s</li></ul>",
		evaluator.Name, evaluator.ID, evaluator.Email, password)

	if err := srv.mailSvc.Send(ctx, evaluator.Email, subject, htmlBody, textBody); err != nil {
		srv.logger.Warn("Failed to send credentials email",
			slog.String("evaluatorID", evaluator.ID), slog.Any("error", err))
	}
}

func (srv *evaluatorService) sendResetMail(ctx context.Context, evaluator *entity.Evaluator) {
	subject := "Password reset"
	textBody := fmt.Sprintf(
		"Hello %s,\n\nUse this token to reset your password within one hour: %s\n",
		evaluator.Name, evaluator.ResetToken)
	htmlBody := fmt.Sprintf(
		"<p>Hello %s,</p><p>Use this token to reset your password within one hour: <b>%s</b></p>",
		evaluator.Name, evaluator.ResetToken)

	if err := srv.mailSvc.Send(ctx, evaluator.Email, subject, htmlBody, textBody); err != nil {
		srv.logger.Warn("Failed to send reset email",
			slog.String("evaluatorID", evaluator.ID), slog.Any("error", err))
	}
}

// stripCredentials blanks the fields that must never leave the service
// layer.
func stripCredentials(e *entity.Evaluator) {
	e.Password = ""
	e.ResetToken = ""
	e.ResetTokenExpiry = nil
}
