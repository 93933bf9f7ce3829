// Package export renders the budget projection as a spreadsheet.
package export

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"htga/internal/domain/entity"
)

const budgetSheet = "Budget"

var budgetHeader = []any{
	"Assignment", "Evaluator ID", "Evaluator", "Email", "Establishment",
	"Assigned", "Receipt", "Amount Spent", "Budget", "Reimbursement", "Currency",
}

// WriteBudgetWorkbook writes the budget rows as an xlsx workbook.
func WriteBudgetWorkbook(rows []*entity.BudgetRow, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(budgetSheet)
	if err != nil {
		return errors.Wrap(err, "failed to create budget sheet")
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	if err := f.SetSheetRow(budgetSheet, "A1", &budgetHeader); err != nil {
		return errors.Wrap(err, "failed to write header row")
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "failed to compute cell name")
		}
		values := []any{
			row.AssignmentID,
			row.EvaluatorID,
			row.EvaluatorName,
			row.EvaluatorEmail,
			row.EstablishmentName,
			row.AssignedAt.Format(time.RFC3339),
			row.ReceiptURL,
			row.AmountSpent,
			row.Budget,
			row.Reimbursement,
			row.Currency,
		}
		if err := f.SetSheetRow(budgetSheet, cell, &values); err != nil {
			return errors.Wrap(err, "failed to write budget row")
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "failed to write workbook")
	}

	return nil
}
