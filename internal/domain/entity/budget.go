package entity

import "time"

// BudgetRow is a derived, non-persisted projection: one row per occupied
// evaluator slot on an assignment, joining evaluator and establishment data
// with the computed reimbursable amount.
type BudgetRow struct {
	AssignmentID      string    `json:"assignmentId"`
	EvaluatorID       string    `json:"evaluatorId"`
	EvaluatorName     string    `json:"evaluatorName"`
	EvaluatorEmail    string    `json:"evaluatorEmail"`
	EstablishmentName string    `json:"establishmentName"`
	AssignedAt        time.Time `json:"assignedAt"`
	ReceiptURL        string    `json:"receiptUrl,omitempty"`
	AmountSpent       float64   `json:"amountSpent"`
	Budget            float64   `json:"budget"`
	Currency          string    `json:"currency,omitempty"`

	// Reimbursement is min(AmountSpent, Budget); an evaluator is never
	// reimbursed beyond the establishment's budget.
	Reimbursement float64 `json:"reimbursement"`
}
