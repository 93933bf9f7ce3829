package impl

import (
	"context"
	"log/slog"
	"time"

	"htga/internal/domain/entity"
	domainerrors "htga/internal/domain/errors"
	"htga/internal/domain/repository"
	"htga/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// establishmentService implements the EstablishmentUsecase interface.
type establishmentService struct {
	establishmentRepo repository.EstablishmentRepository
	assignmentRepo    repository.AssignmentRepository
	logger            *slog.Logger
}

// EstablishmentServiceParams holds dependencies for establishmentService, injected by Fx.
type EstablishmentServiceParams struct {
	fx.In

	EstablishmentRepo repository.EstablishmentRepository
	AssignmentRepo    repository.AssignmentRepository
	Logger            *slog.Logger
}

// NewEstablishmentService is the constructor for establishmentService.
func NewEstablishmentService(params EstablishmentServiceParams) usecase.EstablishmentUsecase {
	return &establishmentService{
		establishmentRepo: params.EstablishmentRepo,
		assignmentRepo:    params.AssignmentRepo,
		logger:            params.Logger,
	}
}

func (srv *establishmentService) Create(ctx context.Context, input *usecase.EstablishmentInput) (*entity.Establishment, error) {
	now := time.Now().UTC()
	establishment := &entity.Establishment{
		Name:        input.Name,
		Category:    input.Category,
		Address:     input.Address,
		ContactInfo: input.ContactInfo,
		Rating:      input.Rating,
		Budget:      input.Budget,
		Currency:    input.Currency,
		HalalStatus: input.HalalStatus,
		Remarks:     input.Remarks,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	key, err := srv.establishmentRepo.Create(ctx, establishment)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create establishment")
	}
	establishment.ID = key

	srv.logger.Info("Establishment created",
		slog.String("establishmentID", key), slog.String("category", establishment.Category))

	return establishment, nil
}

func (srv *establishmentService) Get(ctx context.Context, id string) (*entity.Establishment, error) {
	return srv.load(ctx, id)
}

func (srv *establishmentService) List(ctx context.Context) ([]*entity.Establishment, error) {
	establishments, err := srv.establishmentRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list establishments")
	}

	return establishments, nil
}

func (srv *establishmentService) Update(ctx context.Context, id string, input *usecase.EstablishmentInput) (*entity.Establishment, error) {
	establishment, err := srv.load(ctx, id)
	if err != nil {
		return nil, err
	}

	establishment.Name = input.Name
	establishment.Category = input.Category
	establishment.Address = input.Address
	establishment.ContactInfo = input.ContactInfo
	establishment.Rating = input.Rating
	establishment.Budget = input.Budget
	establishment.Currency = input.Currency
	establishment.HalalStatus = input.HalalStatus
	establishment.Remarks = input.Remarks
	establishment.UpdatedAt = time.Now().UTC()

	if err := srv.establishmentRepo.Update(ctx, establishment); err != nil {
		return nil, errors.Wrap(err, "failed to update establishment")
	}

	return establishment, nil
}

// Delete refuses to remove an establishment while assignments still point at
// it, keeping assignment records free of dangling references.
func (srv *establishmentService) Delete(ctx context.Context, id string) error {
	if _, err := srv.load(ctx, id); err != nil {
		return err
	}

	assignments, err := srv.assignmentRepo.FindByEstablishment(ctx, id)
	if err != nil {
		return errors.Wrap(err, "failed to check assignment references")
	}
	if len(assignments) > 0 {
		return domainerrors.ErrEstablishmentReferenced.WithDetails(assignments[0].ID)
	}

	if err := srv.establishmentRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete establishment")
	}

	srv.logger.Info("Establishment deleted", slog.String("establishmentID", id))

	return nil
}

func (srv *establishmentService) load(ctx context.Context, id string) (*entity.Establishment, error) {
	establishment, err := srv.establishmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEstablishmentNotFound) {
			return nil, domainerrors.ErrEstablishmentNotFound
		}

		return nil, errors.Wrap(err, "failed to load establishment")
	}

	return establishment, nil
}
