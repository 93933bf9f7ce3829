package entity

import (
	"strconv"
	"time"
)

// Establishment is a restaurant or food business under evaluation. The ID is
// an opaque child key generated by the record store on creation.
type Establishment struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Category    string `json:"category"` // Must match an evaluator specialty to be assignable.
	Address     string `json:"address,omitempty"`
	ContactInfo string `json:"contactInfo,omitempty"`
	Rating      string `json:"rating,omitempty"`

	// Budget is kept as a string in the store, as written by the admin UI.
	// Use BudgetAmount to read it numerically.
	Budget   string `json:"budget,omitempty"`
	Currency string `json:"currency,omitempty"`

	HalalStatus string `json:"halalStatus,omitempty"`
	Remarks     string `json:"remarks,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BudgetAmount parses the stored budget string, returning 0 when the field
// is empty or malformed.
func (e *Establishment) BudgetAmount() float64 {
	amount, err := strconv.ParseFloat(e.Budget, 64)
	if err != nil {
		return 0
	}

	return amount
}
