package usecase

import (
	"context"
	"io"

	"htga/internal/domain/entity"
)

// BudgetUsecase defines the read-only budget/reimbursement projection.
type BudgetUsecase interface {
	// Rows joins assignments, evaluators, and establishments into one row
	// per occupied slot with the computed reimbursement.
	Rows(ctx context.Context) ([]*entity.BudgetRow, error)

	// Export writes the projection as an xlsx workbook.
	Export(ctx context.Context, w io.Writer) error
}
