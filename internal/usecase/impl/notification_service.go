package impl

import (
	"context"
	"log/slog"
	"time"

	"htga/internal/domain/entity"
	"htga/internal/domain/repository"
	"htga/internal/domain/service"
	"htga/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	evaluatorRepo repository.EvaluatorRepository
	pushSvc       service.NotificationService
	logger        *slog.Logger
}

// NotificationServiceParams holds dependencies for notificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	EvaluatorRepo repository.EvaluatorRepository
	PushSvc       service.NotificationService
	Logger        *slog.Logger
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		evaluatorRepo: params.EvaluatorRepo,
		pushSvc:       params.PushSvc,
		logger:        params.Logger,
	}
}

// Broadcast sends to each selected evaluator's token set independently, so a
// failing evaluator never aborts the batch. Tokens the push provider reports
// as invalid are pruned from the evaluator's record afterwards.
func (srv *notificationService) Broadcast(ctx context.Context, input *usecase.BroadcastInput) (*usecase.BroadcastSummary, error) {
	recipients, err := srv.resolveRecipients(ctx, input.EvaluatorIDs)
	if err != nil {
		return nil, err
	}

	summary := &usecase.BroadcastSummary{}
	for _, evaluator := range recipients {
		if len(evaluator.FCMTokens) == 0 {
			continue
		}

		sent, failed, invalidTokens, err := srv.pushSvc.SendBatchNotification(
			ctx, evaluator.FCMTokens, input.Title, input.Body, input.Data)
		summary.Sent += sent
		summary.Failed += failed
		if err != nil {
			// The push service reports counts for the chunks it got through;
			// tokens it never attempted count as failed.
			srv.logger.Warn("Push send failed for evaluator",
				slog.String("evaluatorID", evaluator.ID), slog.Any("error", err))
			if remainder := len(evaluator.FCMTokens) - sent - failed; remainder > 0 {
				summary.Failed += remainder
			}
		}

		if len(invalidTokens) > 0 {
			summary.InvalidTokensRemoved += len(invalidTokens)
			srv.pruneTokens(ctx, evaluator, invalidTokens)
		}
	}

	srv.logger.Info("Broadcast finished",
		slog.Int("sent", summary.Sent),
		slog.Int("failed", summary.Failed),
		slog.Int("invalidTokensRemoved", summary.InvalidTokensRemoved),
	)

	return summary, nil
}

// resolveRecipients loads the selected evaluators, or every evaluator when
// the list is empty. Unknown IDs are skipped with a warning.
func (srv *notificationService) resolveRecipients(ctx context.Context, evaluatorIDs []string) ([]*entity.Evaluator, error) {
	if len(evaluatorIDs) == 0 {
		evaluators, err := srv.evaluatorRepo.FindAll(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load evaluators")
		}

		return evaluators, nil
	}

	recipients := make([]*entity.Evaluator, 0, len(evaluatorIDs))
	for _, id := range evaluatorIDs {
		evaluator, err := srv.evaluatorRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrEvaluatorNotFound) {
				srv.logger.Warn("Skipping unknown broadcast recipient", slog.String("evaluatorID", id))

				continue
			}

			return nil, errors.Wrap(err, "failed to load evaluator")
		}
		recipients = append(recipients, evaluator)
	}

	return recipients, nil
}

func (srv *notificationService) pruneTokens(ctx context.Context, evaluator *entity.Evaluator, invalidTokens []string) {
	evaluator.RemoveFCMTokens(invalidTokens)
	evaluator.UpdatedAt = time.Now().UTC()
	if err := srv.evaluatorRepo.Update(ctx, evaluator); err != nil {
		srv.logger.Warn("Failed to prune invalid tokens",
			slog.String("evaluatorID", evaluator.ID), slog.Any("error", err))
	}
}
