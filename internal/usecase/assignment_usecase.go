package usecase

import (
	"context"

	"htga/internal/domain/entity"
)

// AssignmentFailure records one establishment the matching engine could not
// cover, in input order.
type AssignmentFailure struct {
	EstablishmentID   string `json:"establishmentId"`
	EstablishmentName string `json:"establishmentName"`
	Reason            string `json:"reason"`
}

// AutoAssignSummary is the always-returned result of a matching run, even
// when every establishment failed to match.
type AutoAssignSummary struct {
	Successful   int                  `json:"successful"`
	Failed       int                  `json:"failed"`
	Failures     []AssignmentFailure  `json:"failures"`
	PerEvaluator map[string]int       `json:"perEvaluator"`
	PerCategory  map[string]int       `json:"perCategory"`
	Created      []*entity.Assignment `json:"created"`
}

// ValidationReport is the read-only integrity report over persisted
// assignments. Findings never block writes.
type ValidationReport struct {
	// EvaluatorCounts maps evaluator ID to its persisted assignment count.
	EvaluatorCounts map[string]int `json:"evaluatorCounts"`
	// UncoveredEstablishments lists establishments with zero assignments.
	UncoveredEstablishments []string `json:"uncoveredEstablishments"`
	// DuplicateSlotAssignments lists assignments whose two slots hold the
	// same evaluator.
	DuplicateSlotAssignments []string `json:"duplicateSlotAssignments"`
}

// AssignmentView joins an assignment with display data from its referenced
// records.
type AssignmentView struct {
	*entity.Assignment
	EstablishmentName string    `json:"establishmentName"`
	Category          string    `json:"category"`
	EvaluatorNames    [2]string `json:"evaluatorNames"`
}

// SlotCandidates lists the evaluators eligible for each slot of an
// assignment: specialty must include the establishment's category, and the
// slot-2 list excludes whoever occupies slot 1.
type SlotCandidates struct {
	Slot1 []*entity.Evaluator `json:"slot1"`
	Slot2 []*entity.Evaluator `json:"slot2"`
}

// SubmitClaimInput carries an evaluator's claim submission.
type SubmitClaimInput struct {
	AssignmentID string
	EvaluatorID  string
	ReceiptURL   string
	AmountSpent  float64
}

// AssignmentUsecase defines matching, reconciliation, and evaluator actions
// over assignments.
type AssignmentUsecase interface {
	// AutoAssign runs the matching engine over the full evaluator and
	// establishment snapshots. Per-establishment failures are collected into
	// the summary; the run itself always succeeds unless the store fails.
	AutoAssign(ctx context.Context, clearExisting bool) (*AutoAssignSummary, error)

	// Validate recomputes per-evaluator counts from persisted assignments
	// and reports integrity findings.
	Validate(ctx context.Context) (*ValidationReport, error)

	// List returns all assignments joined with display data.
	List(ctx context.Context) ([]*AssignmentView, error)

	// ListForEvaluator returns the assignments occupying either slot with
	// the given evaluator.
	ListForEvaluator(ctx context.Context, evaluatorID string) ([]*AssignmentView, error)

	// Create performs a manual single-pair assignment.
	Create(ctx context.Context, establishmentID, evaluator1ID, evaluator2ID string) (*entity.Assignment, error)

	// Candidates returns the per-slot eligible evaluator lists for an
	// assignment's establishment.
	Candidates(ctx context.Context, assignmentID string) (*SlotCandidates, error)

	// UpdateSlots reassigns or clears the two evaluator slots. Both IDs
	// empty deletes the assignment entirely; the returned flag reports the
	// deletion.
	UpdateSlots(ctx context.Context, assignmentID, evaluator1ID, evaluator2ID string) (*entity.Assignment, bool, error)

	// SubmitClaim marks the acting evaluator's slot submitted with receipt
	// and amount, allocating a claim tracking ID on first submission. An
	// evaluator matching neither slot is rejected with zero writes. When
	// every slot is submitted, completedAt is stamped.
	SubmitClaim(ctx context.Context, input *SubmitClaimInput) (*entity.Assignment, error)

	// RequestReassignment marks the acting evaluator's slot reassigned,
	// allocates a tracking ID, and notifies admins.
	RequestReassignment(ctx context.Context, assignmentID, evaluatorID, reason string) (string, error)

	// Delete removes an assignment.
	Delete(ctx context.Context, assignmentID string) error
}
