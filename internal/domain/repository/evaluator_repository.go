// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"htga/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for evaluator persistence.
var (
	// ErrEvaluatorNotFound is returned when an evaluator is not found.
	ErrEvaluatorNotFound = errors.New("evaluator not found")
	// ErrDuplicateEvaluator is returned when creating an evaluator whose ID already exists.
	ErrDuplicateEvaluator = errors.New("evaluator already exists")
)

// EvaluatorRepository defines the interface for evaluator-related record
// store operations. Records live under "evaluators/{id}".
type EvaluatorRepository interface {
	// Create persists a new evaluator under its portal ID.
	Create(ctx context.Context, evaluator *entity.Evaluator) error

	// FindByID retrieves an evaluator by its portal ID.
	FindByID(ctx context.Context, id string) (*entity.Evaluator, error)

	// FindByEmail retrieves an evaluator by email via an equality-indexed query.
	FindByEmail(ctx context.Context, email string) (*entity.Evaluator, error)

	// FindByResetToken retrieves an evaluator holding the given password-reset token.
	FindByResetToken(ctx context.Context, token string) (*entity.Evaluator, error)

	// FindByEnvelopeID retrieves the evaluator whose NDA envelope matches the given ID.
	FindByEnvelopeID(ctx context.Context, envelopeID string) (*entity.Evaluator, error)

	// FindAll retrieves every evaluator, ordered by portal ID.
	FindAll(ctx context.Context) ([]*entity.Evaluator, error)

	// Update overwrites the stored evaluator record.
	Update(ctx context.Context, evaluator *entity.Evaluator) error

	// Delete removes the evaluator record.
	Delete(ctx context.Context, id string) error
}
