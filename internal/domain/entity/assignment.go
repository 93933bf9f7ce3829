package entity

import "time"

// AssignmentStatus is the top-level state of an assignment, independent from
// per-slot submission state.
type AssignmentStatus string

const (
	AssignmentStatusPending    AssignmentStatus = "pending"
	AssignmentStatusInProgress AssignmentStatus = "in-progress"
	AssignmentStatusCompleted  AssignmentStatus = "completed"
)

// SlotStatus is the submission state of a single evaluator slot.
type SlotStatus string

const (
	SlotStatusPending    SlotStatus = "pending"
	SlotStatusSubmitted  SlotStatus = "submitted"
	SlotStatusCompleted  SlotStatus = "completed"
	SlotStatusReassigned SlotStatus = "reassigned"
)

// EvaluatorSlot is one of the two evaluator positions on an assignment.
// ClaimID is the "RQST-NN" tracking ID allocated when the slot's claim is
// submitted; it is empty until then.
type EvaluatorSlot struct {
	EvaluatorID string     `json:"evaluatorId"`
	Status      SlotStatus `json:"status"`
	ClaimID     string     `json:"claimId,omitempty"`
	ReceiptURL  string     `json:"receiptUrl,omitempty"`
	AmountSpent float64    `json:"amountSpent,omitempty"`
	AssignedAt  time.Time  `json:"assignedAt"`
}

// Assignment pairs two evaluators with one establishment. Slots is the single
// canonical slot representation: an ordered pair where either position may be
// nil once an admin clears it.
type Assignment struct {
	ID              string            `json:"id,omitempty"`
	EstablishmentID string            `json:"establishmentId"`
	Slots           [2]*EvaluatorSlot `json:"slots"`
	Status          AssignmentStatus  `json:"status"`
	AssignedAt      time.Time         `json:"assignedAt"`
	CompletedAt     *time.Time        `json:"completedAt,omitempty"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// SlotIndexFor returns the index of the slot occupied by the given evaluator,
// or -1 when the evaluator matches neither slot.
func (a *Assignment) SlotIndexFor(evaluatorID string) int {
	for i, slot := range a.Slots {
		if slot != nil && slot.EvaluatorID == evaluatorID {
			return i
		}
	}

	return -1
}

// HasEvaluator reports whether the evaluator occupies either slot.
func (a *Assignment) HasEvaluator(evaluatorID string) bool {
	return a.SlotIndexFor(evaluatorID) >= 0
}

// OccupiedSlots returns the non-nil slots in order.
func (a *Assignment) OccupiedSlots() []*EvaluatorSlot {
	slots := make([]*EvaluatorSlot, 0, 2)
	for _, slot := range a.Slots {
		if slot != nil {
			slots = append(slots, slot)
		}
	}

	return slots
}

// AllSubmitted reports whether every occupied slot has reached at least the
// submitted state. An assignment with no occupied slots is never considered
// submitted.
func (a *Assignment) AllSubmitted() bool {
	occupied := a.OccupiedSlots()
	if len(occupied) == 0 {
		return false
	}
	for _, slot := range occupied {
		if slot.Status != SlotStatusSubmitted && slot.Status != SlotStatusCompleted {
			return false
		}
	}

	return true
}

// HasDuplicateEvaluators reports whether both slots are occupied by the same
// evaluator. This is a data-integrity finding surfaced by validation, not a
// write-time rejection.
func (a *Assignment) HasDuplicateEvaluators() bool {
	return a.Slots[0] != nil && a.Slots[1] != nil &&
		a.Slots[0].EvaluatorID == a.Slots[1].EvaluatorID
}
