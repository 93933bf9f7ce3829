package impl

import (
	"context"
	"log/slog"
	"time"

	"htga/internal/domain/entity"
	domainerrors "htga/internal/domain/errors"
	"htga/internal/domain/repository"
	"htga/internal/domain/service"
	"htga/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ndaService implements the NDAUsecase interface.
type ndaService struct {
	evaluatorRepo repository.EvaluatorRepository
	signatureSvc  service.SignatureService
	logger        *slog.Logger
}

// NDAServiceParams holds dependencies for ndaService, injected by Fx.
type NDAServiceParams struct {
	fx.In

	EvaluatorRepo repository.EvaluatorRepository
	SignatureSvc  service.SignatureService
	Logger        *slog.Logger
}

// NewNDAService is the constructor for ndaService.
func NewNDAService(params NDAServiceParams) usecase.NDAUsecase {
	return &ndaService{
		evaluatorRepo: params.EvaluatorRepo,
		signatureSvc:  params.SignatureSvc,
		logger:        params.Logger,
	}
}

// Send creates a fresh envelope for the evaluator. Re-sending replaces any
// previous envelope record; the provider keeps the old envelope's history.
func (srv *ndaService) Send(ctx context.Context, evaluatorID, documentBase64 string) (*entity.NDA, error) {
	evaluator, err := srv.loadEvaluator(ctx, evaluatorID)
	if err != nil {
		return nil, err
	}

	envelopeID, err := srv.signatureSvc.CreateEnvelope(ctx, evaluator.Name, evaluator.Email, documentBase64)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create envelope")
	}

	now := time.Now().UTC()
	evaluator.NDA = &entity.NDA{
		EnvelopeID:     envelopeID,
		Status:         entity.NDAStatusSent,
		ProviderStatus: "sent",
		SentAt:         now,
		LastUpdated:    now,
	}
	evaluator.UpdatedAt = now

	if err := srv.evaluatorRepo.Update(ctx, evaluator); err != nil {
		return nil, errors.Wrap(err, "failed to record envelope")
	}

	srv.logger.Info("NDA envelope sent",
		slog.String("evaluatorID", evaluatorID), slog.String("envelopeID", envelopeID))

	return evaluator.NDA, nil
}

// Status returns the stored NDA state. While the envelope is still open, the
// provider is polled first so the webhook is not the only refresh path; a
// failed poll falls back to the stored state.
func (srv *ndaService) Status(ctx context.Context, evaluatorID string) (*entity.NDA, error) {
	evaluator, err := srv.loadEvaluator(ctx, evaluatorID)
	if err != nil {
		return nil, err
	}
	if evaluator.NDA == nil {
		return nil, domainerrors.ErrEnvelopeNotFound
	}

	nda := evaluator.NDA
	if nda.Status == entity.NDAStatusSent || nda.Status == entity.NDAStatusDelivered {
		providerStatus, err := srv.signatureSvc.EnvelopeStatus(ctx, nda.EnvelopeID)
		if err != nil {
			srv.logger.Warn("Envelope status poll failed",
				slog.String("envelopeID", nda.EnvelopeID), slog.Any("error", err))

			return nda, nil
		}
		if providerStatus != nda.ProviderStatus {
			if err := srv.applyStatus(ctx, evaluator, providerStatus); err != nil {
				return nil, err
			}
		}
	}

	return evaluator.NDA, nil
}

// HandleWebhook applies a provider-reported transition to whichever
// evaluator owns the envelope. Signature verification happens at the
// delivery layer before the payload is parsed.
func (srv *ndaService) HandleWebhook(ctx context.Context, envelopeID, providerStatus string) error {
	evaluator, err := srv.evaluatorRepo.FindByEnvelopeID(ctx, envelopeID)
	if err != nil {
		if errors.Is(err, repository.ErrEvaluatorNotFound) {
			return domainerrors.ErrEnvelopeNotFound
		}

		return errors.Wrap(err, "failed to look up envelope owner")
	}

	return srv.applyStatus(ctx, evaluator, providerStatus)
}

// applyStatus maps and persists a provider status. Unknown provider statuses
// are rejected without writes.
func (srv *ndaService) applyStatus(ctx context.Context, evaluator *entity.Evaluator, providerStatus string) error {
	status, ok := entity.NDAStatusFromProvider(providerStatus)
	if !ok {
		return domainerrors.ErrUnknownEnvelopeStatus.WithDetails(providerStatus)
	}

	now := time.Now().UTC()
	nda := evaluator.NDA
	nda.Status = status
	nda.ProviderStatus = providerStatus
	nda.LastUpdated = now
	if status == entity.NDAStatusSigned && nda.CompletedAt == nil {
		nda.CompletedAt = &now
	}
	evaluator.UpdatedAt = now

	if err := srv.evaluatorRepo.Update(ctx, evaluator); err != nil {
		return errors.Wrap(err, "failed to record envelope status")
	}

	srv.logger.Info("NDA status updated",
		slog.String("evaluatorID", evaluator.ID),
		slog.String("envelopeID", nda.EnvelopeID),
		slog.String("status", string(status)),
	)

	return nil
}

func (srv *ndaService) loadEvaluator(ctx context.Context, evaluatorID string) (*entity.Evaluator, error) {
	evaluator, err := srv.evaluatorRepo.FindByID(ctx, evaluatorID)
	if err != nil {
		if errors.Is(err, repository.ErrEvaluatorNotFound) {
			return nil, domainerrors.ErrEvaluatorNotFound
		}

		return nil, errors.Wrap(err, "failed to load evaluator")
	}

	return evaluator, nil
}
