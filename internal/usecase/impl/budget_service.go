package impl

import (
	"context"
	"io"
	"log/slog"

	"htga/internal/domain/entity"
	"htga/internal/domain/repository"
	"htga/internal/infra/export"
	"htga/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// budgetService implements the BudgetUsecase interface.
type budgetService struct {
	assignmentRepo    repository.AssignmentRepository
	evaluatorRepo     repository.EvaluatorRepository
	establishmentRepo repository.EstablishmentRepository
	logger            *slog.Logger
}

// BudgetServiceParams holds dependencies for budgetService, injected by Fx.
type BudgetServiceParams struct {
	fx.In

	AssignmentRepo    repository.AssignmentRepository
	EvaluatorRepo     repository.EvaluatorRepository
	EstablishmentRepo repository.EstablishmentRepository
	Logger            *slog.Logger
}

// NewBudgetService is the constructor for budgetService.
func NewBudgetService(params BudgetServiceParams) usecase.BudgetUsecase {
	return &budgetService{
		assignmentRepo:    params.AssignmentRepo,
		evaluatorRepo:     params.EvaluatorRepo,
		establishmentRepo: params.EstablishmentRepo,
		logger:            params.Logger,
	}
}

// Rows recomputes the projection from current records on every call; nothing
// is persisted, so repeated calls over unchanged data yield identical rows.
func (srv *budgetService) Rows(ctx context.Context) ([]*entity.BudgetRow, error) {
	assignments, err := srv.assignmentRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load assignments")
	}
	evaluators, err := srv.evaluatorRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load evaluators")
	}
	establishments, err := srv.establishmentRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load establishments")
	}

	rows := projectBudgetRows(assignments, evaluators, establishments, srv.logger)

	return rows, nil
}

func (srv *budgetService) Export(ctx context.Context, w io.Writer) error {
	rows, err := srv.Rows(ctx)
	if err != nil {
		return err
	}

	return export.WriteBudgetWorkbook(rows, w)
}

// projectBudgetRows builds one row per occupied slot. An assignment whose
// establishment or evaluator record has gone missing is logged and skipped
// rather than failing the whole projection.
func projectBudgetRows(
	assignments []*entity.Assignment,
	evaluators []*entity.Evaluator,
	establishments []*entity.Establishment,
	logger *slog.Logger,
) []*entity.BudgetRow {
	evaluatorsByID := make(map[string]*entity.Evaluator, len(evaluators))
	for _, evaluator := range evaluators {
		evaluatorsByID[evaluator.ID] = evaluator
	}
	establishmentsByID := make(map[string]*entity.Establishment, len(establishments))
	for _, establishment := range establishments {
		establishmentsByID[establishment.ID] = establishment
	}

	rows := []*entity.BudgetRow{}
	for _, assignment := range assignments {
		establishment, ok := establishmentsByID[assignment.EstablishmentID]
		if !ok {
			logger.Warn("Skipping assignment with missing establishment",
				slog.String("assignmentID", assignment.ID),
				slog.String("establishmentID", assignment.EstablishmentID))

			continue
		}

		for _, slot := range assignment.OccupiedSlots() {
			evaluator, ok := evaluatorsByID[slot.EvaluatorID]
			if !ok {
				logger.Warn("Skipping slot with missing evaluator",
					slog.String("assignmentID", assignment.ID),
					slog.String("evaluatorID", slot.EvaluatorID))

				continue
			}

			budget := establishment.BudgetAmount()
			rows = append(rows, &entity.BudgetRow{
				AssignmentID:      assignment.ID,
				EvaluatorID:       evaluator.ID,
				EvaluatorName:     evaluator.Name,
				EvaluatorEmail:    evaluator.Email,
				EstablishmentName: establishment.Name,
				AssignedAt:        slot.AssignedAt,
				ReceiptURL:        slot.ReceiptURL,
				AmountSpent:       slot.AmountSpent,
				Budget:            budget,
				Currency:          establishment.Currency,
				Reimbursement:     min(slot.AmountSpent, budget),
			})
		}
	}

	return rows
}
