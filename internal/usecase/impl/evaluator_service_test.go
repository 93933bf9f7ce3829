package impl

import (
	"context"
	"testing"
	"time"

	"htga/internal/domain/entity"
	domainerrors "htga/internal/domain/errors"
	"htga/internal/domain/repository"
	"htga/internal/domain/service"
	"htga/internal/mocks"
	"htga/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type evaluatorServiceMocks struct {
	evaluatorRepo  *mocks.EvaluatorRepository
	assignmentRepo *mocks.AssignmentRepository
	counterRepo    *mocks.CounterRepository
	identitySvc    *mocks.IdentityService
	mailSvc        *mocks.MailService
	hasher         *mocks.PasswordHasher
	tokenSvc       *mocks.TokenService
}

func newEvaluatorService(t *testing.T) (usecase.EvaluatorUsecase, *evaluatorServiceMocks) {
	t.Helper()
	m := &evaluatorServiceMocks{
		evaluatorRepo:  new(mocks.EvaluatorRepository),
		assignmentRepo: new(mocks.AssignmentRepository),
		counterRepo:    new(mocks.CounterRepository),
		identitySvc:    new(mocks.IdentityService),
		mailSvc:        new(mocks.MailService),
		hasher:         new(mocks.PasswordHasher),
		tokenSvc:       new(mocks.TokenService),
	}
	svc := NewEvaluatorService(EvaluatorServiceParams{
		EvaluatorRepo:  m.evaluatorRepo,
		AssignmentRepo: m.assignmentRepo,
		CounterRepo:    m.counterRepo,
		IdentitySvc:    m.identitySvc,
		MailSvc:        m.mailSvc,
		Hasher:         m.hasher,
		TokenSvc:       m.tokenSvc,
		Logger:         discardLogger(),
	})

	return svc, m
}

func TestRegisterAllocatesPortalIDAndMailsCredentials(t *testing.T) {
	svc, m := newEvaluatorService(t)
	ctx := context.Background()

	m.evaluatorRepo.On("FindByEmail", mock.Anything, "amira@example.com").
		Return(nil, repository.ErrEvaluatorNotFound)
	m.identitySvc.On("GetUserByEmail", mock.Anything, "amira@example.com").
		Return(nil, nil)
	m.counterRepo.On("Next", mock.Anything, "evaluators").Return(int64(7), nil)
	m.hasher.On("Hash", "secret123").Return("$2a$10$hash", nil)
	m.identitySvc.On("CreateUser", mock.Anything, "amira@example.com", "secret123", "Amira", service.RoleEvaluator).
		Return("uid-1", nil)
	m.evaluatorRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *entity.Evaluator) bool {
		return e.ID == "JEVA07" && e.Password == "$2a$10$hash" && e.FirebaseUID == "uid-1"
	})).Return(nil)
	m.mailSvc.On("Send", mock.Anything, "amira@example.com", mock.Anything, mock.Anything, mock.Anything).
		Return(nil)

	evaluator, err := svc.Register(ctx, &usecase.RegisterEvaluatorInput{
		Name:     "Amira",
		Email:    "amira@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "JEVA07", evaluator.ID)
	assert.Empty(t, evaluator.Password)
}

func TestRegisterRejectsDuplicateEvaluatorEmail(t *testing.T) {
	svc, m := newEvaluatorService(t)

	m.evaluatorRepo.On("FindByEmail", mock.Anything, "amira@example.com").
		Return(&entity.Evaluator{ID: "JEVA01"}, nil)

	_, err := svc.Register(context.Background(), &usecase.RegisterEvaluatorInput{
		Email: "amira@example.com",
	})

	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyRegistered)
	m.counterRepo.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
}

func TestRegisterRejectsEmailHeldByIdentityAccount(t *testing.T) {
	svc, m := newEvaluatorService(t)

	m.evaluatorRepo.On("FindByEmail", mock.Anything, "admin@example.com").
		Return(nil, repository.ErrEvaluatorNotFound)
	m.identitySvc.On("GetUserByEmail", mock.Anything, "admin@example.com").
		Return(&service.IdentityUser{UID: "admin1", Role: service.RoleAdmin}, nil)

	_, err := svc.Register(context.Background(), &usecase.RegisterEvaluatorInput{
		Email: "admin@example.com",
	})

	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyRegistered)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	svc, m := newEvaluatorService(t)

	m.evaluatorRepo.On("FindByEmail", mock.Anything, "amira@example.com").
		Return(&entity.Evaluator{ID: "JEVA01", Password: "$2a$10$hash"}, nil)
	m.hasher.On("Check", "wrong", "$2a$10$hash").Return(false)

	_, err := svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "amira@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestLoginUpgradesLegacyPlaintextCredential(t *testing.T) {
	svc, m := newEvaluatorService(t)

	m.evaluatorRepo.On("FindByEmail", mock.Anything, "amira@example.com").
		Return(&entity.Evaluator{ID: "JEVA01", Email: "amira@example.com", Password: "legacy-pass"}, nil)
	m.hasher.On("Check", "legacy-pass", "legacy-pass").Return(true)
	m.hasher.On("IsHashed", "legacy-pass").Return(false)
	m.hasher.On("Hash", "legacy-pass").Return("$2a$10$upgraded", nil)
	m.evaluatorRepo.On("Update", mock.Anything, mock.MatchedBy(func(e *entity.Evaluator) bool {
		return e.Password == "$2a$10$upgraded"
	})).Return(nil)
	m.tokenSvc.On("GenerateTokens", "JEVA01", []string{service.RoleEvaluator}).
		Return("access", "refresh", nil)
	m.tokenSvc.On("GetRefreshTokenDuration").Return(7 * 24 * time.Hour)

	out, err := svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "amira@example.com",
		Password: "legacy-pass",
	})

	require.NoError(t, err)
	assert.Equal(t, "access", out.AccessToken)
	assert.Empty(t, out.Evaluator.Password)
	assert.False(t, out.RefreshExpiresAt.IsZero())
	m.evaluatorRepo.AssertExpectations(t)
}

func TestRefreshIssuesNewTokenPair(t *testing.T) {
	svc, m := newEvaluatorService(t)

	m.tokenSvc.On("ValidateRefreshToken", "refresh-old").Return("JEVA01", nil)
	m.evaluatorRepo.On("FindByID", mock.Anything, "JEVA01").
		Return(&entity.Evaluator{ID: "JEVA01", Email: "amira@example.com", Password: "$2a$10$hash"}, nil)
	m.tokenSvc.On("GenerateTokens", "JEVA01", []string{service.RoleEvaluator}).
		Return("access-new", "refresh-new", nil)
	m.tokenSvc.On("GetRefreshTokenDuration").Return(7 * 24 * time.Hour)

	out, err := svc.Refresh(context.Background(), "refresh-old")

	require.NoError(t, err)
	assert.Equal(t, "access-new", out.AccessToken)
	assert.Equal(t, "refresh-new", out.RefreshToken)
	assert.Empty(t, out.Evaluator.Password)
}

func TestRefreshRejectsInvalidToken(t *testing.T) {
	svc, m := newEvaluatorService(t)

	m.tokenSvc.On("ValidateRefreshToken", "garbage").Return("", assert.AnError)

	_, err := svc.Refresh(context.Background(), "garbage")

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	m.evaluatorRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestRefreshRejectsDeletedEvaluator(t *testing.T) {
	svc, m := newEvaluatorService(t)

	m.tokenSvc.On("ValidateRefreshToken", "refresh-old").Return("JEVA01", nil)
	m.evaluatorRepo.On("FindByID", mock.Anything, "JEVA01").
		Return(nil, repository.ErrEvaluatorNotFound)

	_, err := svc.Refresh(context.Background(), "refresh-old")

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	m.tokenSvc.AssertNotCalled(t, "GenerateTokens", mock.Anything, mock.Anything)
}

func TestForgotPasswordIgnoresUnknownEmail(t *testing.T) {
	svc, m := newEvaluatorService(t)

	m.evaluatorRepo.On("FindByEmail", mock.Anything, "nobody@example.com").
		Return(nil, repository.ErrEvaluatorNotFound)

	err := svc.ForgotPassword(context.Background(), "nobody@example.com")

	require.NoError(t, err)
	m.evaluatorRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	m.mailSvc.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResetPasswordRejectsExpiredToken(t *testing.T) {
	svc, m := newEvaluatorService(t)

	expired := time.Now().UTC().Add(-time.Minute)
	m.evaluatorRepo.On("FindByResetToken", mock.Anything, "tok").
		Return(&entity.Evaluator{ID: "JEVA01", ResetToken: "tok", ResetTokenExpiry: &expired}, nil)

	err := svc.ResetPassword(context.Background(), "tok", "newpass")

	assert.ErrorIs(t, err, domainerrors.ErrResetTokenInvalid)
}

func TestDeleteBlockedWhileReferencedByAssignment(t *testing.T) {
	svc, m := newEvaluatorService(t)

	m.evaluatorRepo.On("FindByID", mock.Anything, "JEVA01").
		Return(&entity.Evaluator{ID: "JEVA01", FirebaseUID: "uid-1"}, nil)
	m.assignmentRepo.On("FindAll", mock.Anything).Return([]*entity.Assignment{
		pendingAssignment("asg1", "est1", "JEVA01", "JEVA02"),
	}, nil)

	err := svc.Delete(context.Background(), "JEVA01")

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "EVALUATOR_REFERENCED", appErr.ErrorCode())
	m.evaluatorRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRegisterFCMTokenIsIdempotent(t *testing.T) {
	svc, m := newEvaluatorService(t)

	m.evaluatorRepo.On("FindByID", mock.Anything, "JEVA01").
		Return(&entity.Evaluator{ID: "JEVA01", FCMTokens: []string{"tok-1"}}, nil)

	err := svc.RegisterFCMToken(context.Background(), "JEVA01", "tok-1")

	require.NoError(t, err)
	m.evaluatorRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetProfileStripsCredentialFields(t *testing.T) {
	svc, m := newEvaluatorService(t)

	expiry := time.Now().UTC().Add(time.Hour)
	m.evaluatorRepo.On("FindByID", mock.Anything, "JEVA01").
		Return(&entity.Evaluator{
			ID:               "JEVA01",
			Password:         "$2a$10$hash",
			ResetToken:       "tok",
			ResetTokenExpiry: &expiry,
		}, nil)

	evaluator, err := svc.GetProfile(context.Background(), "JEVA01")

	require.NoError(t, err)
	assert.Empty(t, evaluator.Password)
	assert.Empty(t, evaluator.ResetToken)
	assert.Nil(t, evaluator.ResetTokenExpiry)
}
