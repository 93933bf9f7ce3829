package impl

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"htga/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProjectBudgetRowsCapsReimbursementAtBudget(t *testing.T) {
	now := time.Now().UTC()
	assignment := &entity.Assignment{
		ID:              "asg1",
		EstablishmentID: "est1",
		Slots: [2]*entity.EvaluatorSlot{
			{EvaluatorID: "JEVA01", Status: entity.SlotStatusSubmitted, AmountSpent: 80, AssignedAt: now},
			{EvaluatorID: "JEVA02", Status: entity.SlotStatusSubmitted, AmountSpent: 30, AssignedAt: now},
		},
	}
	evaluators := []*entity.Evaluator{
		{ID: "JEVA01", Name: "Amira", Email: "amira@example.com"},
		{ID: "JEVA02", Name: "Bo", Email: "bo@example.com"},
	}
	establishments := []*entity.Establishment{
		{ID: "est1", Name: "Corner Bakery", Budget: "50", Currency: "MYR"},
	}

	rows := projectBudgetRows([]*entity.Assignment{assignment}, evaluators, establishments, discardLogger())

	require.Len(t, rows, 2)
	assert.Equal(t, 50.0, rows[0].Reimbursement)
	assert.Equal(t, 80.0, rows[0].AmountSpent)
	assert.Equal(t, 30.0, rows[1].Reimbursement)
	assert.Equal(t, "MYR", rows[0].Currency)
}

func TestProjectBudgetRowsMalformedBudgetReimbursesZero(t *testing.T) {
	now := time.Now().UTC()
	assignment := &entity.Assignment{
		ID:              "asg1",
		EstablishmentID: "est1",
		Slots: [2]*entity.EvaluatorSlot{
			{EvaluatorID: "JEVA01", Status: entity.SlotStatusSubmitted, AmountSpent: 20, AssignedAt: now},
			nil,
		},
	}
	evaluators := []*entity.Evaluator{{ID: "JEVA01", Name: "Amira"}}
	establishments := []*entity.Establishment{{ID: "est1", Name: "Corner Bakery", Budget: "about fifty"}}

	rows := projectBudgetRows([]*entity.Assignment{assignment}, evaluators, establishments, discardLogger())

	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].Budget)
	assert.Equal(t, 0.0, rows[0].Reimbursement)
}

func TestProjectBudgetRowsSkipsDanglingReferences(t *testing.T) {
	now := time.Now().UTC()
	assignments := []*entity.Assignment{
		{
			ID:              "asg1",
			EstablishmentID: "gone",
			Slots: [2]*entity.EvaluatorSlot{
				{EvaluatorID: "JEVA01", AssignedAt: now}, nil,
			},
		},
		{
			ID:              "asg2",
			EstablishmentID: "est1",
			Slots: [2]*entity.EvaluatorSlot{
				{EvaluatorID: "JEVA01", AssignedAt: now},
				{EvaluatorID: "missing", AssignedAt: now},
			},
		},
	}
	evaluators := []*entity.Evaluator{{ID: "JEVA01", Name: "Amira"}}
	establishments := []*entity.Establishment{{ID: "est1", Name: "Corner Bakery", Budget: "50"}}

	rows := projectBudgetRows(assignments, evaluators, establishments, discardLogger())

	require.Len(t, rows, 1)
	assert.Equal(t, "asg2", rows[0].AssignmentID)
	assert.Equal(t, "JEVA01", rows[0].EvaluatorID)
}

func TestProjectBudgetRowsIsIdempotent(t *testing.T) {
	now := time.Now().UTC()
	assignments := []*entity.Assignment{
		{
			ID:              "asg1",
			EstablishmentID: "est1",
			Slots: [2]*entity.EvaluatorSlot{
				{EvaluatorID: "JEVA01", AmountSpent: 10, AssignedAt: now}, nil,
			},
		},
	}
	evaluators := []*entity.Evaluator{{ID: "JEVA01", Name: "Amira"}}
	establishments := []*entity.Establishment{{ID: "est1", Name: "Corner Bakery", Budget: "50"}}

	first := projectBudgetRows(assignments, evaluators, establishments, discardLogger())
	second := projectBudgetRows(assignments, evaluators, establishments, discardLogger())

	assert.Equal(t, first, second)
}
