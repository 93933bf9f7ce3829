package repository

import (
	"context"

	"htga/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrEstablishmentNotFound is returned when an establishment is not found.
var ErrEstablishmentNotFound = errors.New("establishment not found")

// EstablishmentRepository defines the interface for establishment-related
// record store operations. Records live under "establishments/{key}" where
// the key is generated by the store on creation.
type EstablishmentRepository interface {
	// Create persists a new establishment and returns the store-generated key.
	Create(ctx context.Context, establishment *entity.Establishment) (string, error)

	// FindByID retrieves an establishment by its store key.
	FindByID(ctx context.Context, id string) (*entity.Establishment, error)

	// FindAll retrieves every establishment.
	FindAll(ctx context.Context) ([]*entity.Establishment, error)

	// Update overwrites the stored establishment record.
	Update(ctx context.Context, establishment *entity.Establishment) error

	// Delete removes the establishment record.
	Delete(ctx context.Context, id string) error
}
