package impl

import (
	"context"
	"testing"

	"htga/internal/domain/entity"
	"htga/internal/mocks"
	"htga/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newNotificationService(t *testing.T) (usecase.NotificationUsecase, *mocks.EvaluatorRepository, *mocks.NotificationService) {
	t.Helper()
	evaluatorRepo := new(mocks.EvaluatorRepository)
	pushSvc := new(mocks.NotificationService)
	svc := NewNotificationService(NotificationServiceParams{
		EvaluatorRepo: evaluatorRepo,
		PushSvc:       pushSvc,
		Logger:        discardLogger(),
	})

	return svc, evaluatorRepo, pushSvc
}

func TestBroadcastTargetsAllEvaluatorsWhenListEmpty(t *testing.T) {
	svc, evaluatorRepo, pushSvc := newNotificationService(t)

	evaluatorRepo.On("FindAll", mock.Anything).Return([]*entity.Evaluator{
		{ID: "JEVA01", FCMTokens: []string{"tok-1", "tok-2"}},
		{ID: "JEVA02", FCMTokens: []string{"tok-3"}},
		{ID: "JEVA03"},
	}, nil)
	pushSvc.On("SendBatchNotification", mock.Anything, []string{"tok-1", "tok-2"}, "Title", "Body", mock.Anything).
		Return(2, 0, nil, nil)
	pushSvc.On("SendBatchNotification", mock.Anything, []string{"tok-3"}, "Title", "Body", mock.Anything).
		Return(1, 0, nil, nil)

	summary, err := svc.Broadcast(context.Background(), &usecase.BroadcastInput{
		Title: "Title",
		Body:  "Body",
	})

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Sent)
	assert.Equal(t, 0, summary.Failed)
	pushSvc.AssertNumberOfCalls(t, "SendBatchNotification", 2)
}

func TestBroadcastPrunesInvalidTokens(t *testing.T) {
	svc, evaluatorRepo, pushSvc := newNotificationService(t)

	evaluatorRepo.On("FindByID", mock.Anything, "JEVA01").
		Return(&entity.Evaluator{ID: "JEVA01", FCMTokens: []string{"tok-1", "tok-dead"}}, nil)
	pushSvc.On("SendBatchNotification", mock.Anything, []string{"tok-1", "tok-dead"}, "Title", "Body", mock.Anything).
		Return(1, 1, []string{"tok-dead"}, nil)
	evaluatorRepo.On("Update", mock.Anything, mock.MatchedBy(func(e *entity.Evaluator) bool {
		return len(e.FCMTokens) == 1 && e.FCMTokens[0] == "tok-1"
	})).Return(nil)

	summary, err := svc.Broadcast(context.Background(), &usecase.BroadcastInput{
		EvaluatorIDs: []string{"JEVA01"},
		Title:        "Title",
		Body:         "Body",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Sent)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.InvalidTokensRemoved)
	evaluatorRepo.AssertExpectations(t)
}

func TestBroadcastOneEvaluatorFailureDoesNotAbortBatch(t *testing.T) {
	svc, evaluatorRepo, pushSvc := newNotificationService(t)

	evaluatorRepo.On("FindByID", mock.Anything, "JEVA01").
		Return(&entity.Evaluator{ID: "JEVA01", FCMTokens: []string{"tok-1"}}, nil)
	evaluatorRepo.On("FindByID", mock.Anything, "JEVA02").
		Return(&entity.Evaluator{ID: "JEVA02", FCMTokens: []string{"tok-2"}}, nil)
	pushSvc.On("SendBatchNotification", mock.Anything, []string{"tok-1"}, "Title", "Body", mock.Anything).
		Return(0, 0, nil, assert.AnError)
	pushSvc.On("SendBatchNotification", mock.Anything, []string{"tok-2"}, "Title", "Body", mock.Anything).
		Return(1, 0, nil, nil)

	summary, err := svc.Broadcast(context.Background(), &usecase.BroadcastInput{
		EvaluatorIDs: []string{"JEVA01", "JEVA02"},
		Title:        "Title",
		Body:         "Body",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Sent)
	assert.Equal(t, 1, summary.Failed)
}

func TestBroadcastCountsPartiallyDeliveredBatches(t *testing.T) {
	svc, evaluatorRepo, pushSvc := newNotificationService(t)

	tokens := []string{"tok-1", "tok-2", "tok-3", "tok-4"}
	evaluatorRepo.On("FindByID", mock.Anything, "JEVA01").
		Return(&entity.Evaluator{ID: "JEVA01", FCMTokens: tokens}, nil)
	// Two delivered and one rejected before the send errored out; the last
	// token was never attempted.
	pushSvc.On("SendBatchNotification", mock.Anything, tokens, "Title", "Body", mock.Anything).
		Return(2, 1, nil, assert.AnError)

	summary, err := svc.Broadcast(context.Background(), &usecase.BroadcastInput{
		EvaluatorIDs: []string{"JEVA01"},
		Title:        "Title",
		Body:         "Body",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Sent)
	assert.Equal(t, 2, summary.Failed)
}
