// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"slices"
	"time"
)

// Evaluator is the core entity of the portal: a person who visits and rates
// establishments. The ID is a portal identifier of the form "JEVA01" and is
// immutable once assigned.
type Evaluator struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone,omitempty"`
	Company        string   `json:"company,omitempty"`
	Position       string   `json:"position,omitempty"`
	Specialties    []string `json:"specialties,omitempty"`    // Category labels this evaluator may be assigned to.
	MaxAssignments int      `json:"maxAssignments,omitempty"` // Per-batch assignment cap; 0 means uncapped.

	// Password is the stored credential. New records hold a bcrypt hash;
	// legacy records may still hold the raw value until first login.
	Password string `json:"password,omitempty"`

	FirebaseUID string `json:"firebaseUid,omitempty"` // Identity-provider account backing this evaluator.

	ResetToken       string     `json:"resetToken,omitempty"`
	ResetTokenExpiry *time.Time `json:"resetTokenExpiry,omitempty"`

	NDA *NDA `json:"nda,omitempty"`

	// FCMTokens is the set of currently-registered push tokens for this
	// evaluator, one per device. Invalid tokens are pruned after failed sends.
	FCMTokens []string `json:"fcmTokens,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasSpecialty reports whether the evaluator's specialty set contains the
// given category. Matching is case-sensitive and exact.
func (e *Evaluator) HasSpecialty(category string) bool {
	return slices.Contains(e.Specialties, category)
}

// AddFCMToken registers a push token, keeping set semantics.
func (e *Evaluator) AddFCMToken(token string) {
	if token == "" || slices.Contains(e.FCMTokens, token) {
		return
	}
	e.FCMTokens = append(e.FCMTokens, token)
}

// RemoveFCMTokens drops the given tokens from the evaluator's token set.
func (e *Evaluator) RemoveFCMTokens(tokens []string) {
	if len(tokens) == 0 {
		return
	}
	kept := e.FCMTokens[:0]
	for _, t := range e.FCMTokens {
		if !slices.Contains(tokens, t) {
			kept = append(kept, t)
		}
	}
	e.FCMTokens = kept
}

// NormalizeSpecialties removes duplicate category labels while preserving
// first-seen order.
func (e *Evaluator) NormalizeSpecialties() {
	seen := make(map[string]struct{}, len(e.Specialties))
	kept := e.Specialties[:0]
	for _, s := range e.Specialties {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		kept = append(kept, s)
	}
	e.Specialties = kept
}

// ClearResetToken drops the transient password-reset fields.
func (e *Evaluator) ClearResetToken() {
	e.ResetToken = ""
	e.ResetTokenExpiry = nil
}
