package repository

import (
	"context"

	"htga/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrAssignmentNotFound is returned when an assignment is not found.
var ErrAssignmentNotFound = errors.New("assignment not found")

// AssignmentRepository defines the interface for assignment-related record
// store operations. Records live under "assignments/{key}".
type AssignmentRepository interface {
	// Create persists a new assignment and returns the store-generated key.
	Create(ctx context.Context, assignment *entity.Assignment) (string, error)

	// FindByID retrieves an assignment by its store key.
	FindByID(ctx context.Context, id string) (*entity.Assignment, error)

	// FindAll retrieves every assignment.
	FindAll(ctx context.Context) ([]*entity.Assignment, error)

	// FindByEstablishment retrieves all assignments referencing the given
	// establishment via an equality-indexed query.
	FindByEstablishment(ctx context.Context, establishmentID string) ([]*entity.Assignment, error)

	// Update overwrites the stored assignment record.
	Update(ctx context.Context, assignment *entity.Assignment) error

	// Delete removes the assignment record.
	Delete(ctx context.Context, id string) error

	// DeleteAll wipes the assignment collection. Used by auto-assignment
	// when the caller asks for a clean slate.
	DeleteAll(ctx context.Context) error
}
