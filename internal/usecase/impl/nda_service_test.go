package impl

import (
	"context"
	"testing"
	"time"

	"htga/internal/domain/entity"
	domainerrors "htga/internal/domain/errors"
	"htga/internal/domain/repository"
	"htga/internal/mocks"
	"htga/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newNDAService(t *testing.T) (usecase.NDAUsecase, *mocks.EvaluatorRepository, *mocks.SignatureService) {
	t.Helper()
	evaluatorRepo := new(mocks.EvaluatorRepository)
	signatureSvc := new(mocks.SignatureService)
	svc := NewNDAService(NDAServiceParams{
		EvaluatorRepo: evaluatorRepo,
		SignatureSvc:  signatureSvc,
		Logger:        discardLogger(),
	})

	return svc, evaluatorRepo, signatureSvc
}

func TestSendRecordsEnvelopeOnEvaluator(t *testing.T) {
	svc, evaluatorRepo, signatureSvc := newNDAService(t)

	evaluatorRepo.On("FindByID", mock.Anything, "JEVA01").
		Return(&entity.Evaluator{ID: "JEVA01", Name: "Amira", Email: "amira@example.com"}, nil)
	signatureSvc.On("CreateEnvelope", mock.Anything, "Amira", "amira@example.com", "ZG9j").
		Return("env-1", nil)
	evaluatorRepo.On("Update", mock.Anything, mock.MatchedBy(func(e *entity.Evaluator) bool {
		return e.NDA != nil && e.NDA.EnvelopeID == "env-1" && e.NDA.Status == entity.NDAStatusSent
	})).Return(nil)

	nda, err := svc.Send(context.Background(), "JEVA01", "ZG9j")

	require.NoError(t, err)
	assert.Equal(t, "env-1", nda.EnvelopeID)
	assert.Equal(t, entity.NDAStatusSent, nda.Status)
}

func TestHandleWebhookCompletedMapsToSignedWithTimestamp(t *testing.T) {
	svc, evaluatorRepo, _ := newNDAService(t)

	evaluator := &entity.Evaluator{
		ID: "JEVA01",
		NDA: &entity.NDA{
			EnvelopeID: "env-1",
			Status:     entity.NDAStatusDelivered,
			SentAt:     time.Now().UTC().Add(-time.Hour),
		},
	}
	evaluatorRepo.On("FindByEnvelopeID", mock.Anything, "env-1").Return(evaluator, nil)
	evaluatorRepo.On("Update", mock.Anything, evaluator).Return(nil)

	err := svc.HandleWebhook(context.Background(), "env-1", "completed")

	require.NoError(t, err)
	assert.Equal(t, entity.NDAStatusSigned, evaluator.NDA.Status)
	assert.Equal(t, "completed", evaluator.NDA.ProviderStatus)
	require.NotNil(t, evaluator.NDA.CompletedAt)
}

func TestHandleWebhookUnknownStatusRejectedWithoutWrites(t *testing.T) {
	svc, evaluatorRepo, _ := newNDAService(t)

	evaluatorRepo.On("FindByEnvelopeID", mock.Anything, "env-1").
		Return(&entity.Evaluator{ID: "JEVA01", NDA: &entity.NDA{EnvelopeID: "env-1"}}, nil)

	err := svc.HandleWebhook(context.Background(), "env-1", "shredded")

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNKNOWN_ENVELOPE_STATUS", appErr.ErrorCode())
	evaluatorRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestHandleWebhookUnknownEnvelope(t *testing.T) {
	svc, evaluatorRepo, _ := newNDAService(t)

	evaluatorRepo.On("FindByEnvelopeID", mock.Anything, "env-x").
		Return(nil, repository.ErrEvaluatorNotFound)

	err := svc.HandleWebhook(context.Background(), "env-x", "completed")

	assert.ErrorIs(t, err, domainerrors.ErrEnvelopeNotFound)
}

func TestStatusPollsProviderWhileEnvelopeOpen(t *testing.T) {
	svc, evaluatorRepo, signatureSvc := newNDAService(t)

	evaluator := &entity.Evaluator{
		ID: "JEVA01",
		NDA: &entity.NDA{
			EnvelopeID:     "env-1",
			Status:         entity.NDAStatusSent,
			ProviderStatus: "sent",
		},
	}
	evaluatorRepo.On("FindByID", mock.Anything, "JEVA01").Return(evaluator, nil)
	signatureSvc.On("EnvelopeStatus", mock.Anything, "env-1").Return("delivered", nil)
	evaluatorRepo.On("Update", mock.Anything, evaluator).Return(nil)

	nda, err := svc.Status(context.Background(), "JEVA01")

	require.NoError(t, err)
	assert.Equal(t, entity.NDAStatusDelivered, nda.Status)
}

func TestStatusWithoutEnvelope(t *testing.T) {
	svc, evaluatorRepo, _ := newNDAService(t)

	evaluatorRepo.On("FindByID", mock.Anything, "JEVA01").
		Return(&entity.Evaluator{ID: "JEVA01"}, nil)

	_, err := svc.Status(context.Background(), "JEVA01")

	assert.ErrorIs(t, err, domainerrors.ErrEnvelopeNotFound)
}
