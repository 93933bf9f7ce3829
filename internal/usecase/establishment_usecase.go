package usecase

import (
	"context"

	"htga/internal/domain/entity"
)

// EstablishmentInput carries the writable fields of an establishment.
type EstablishmentInput struct {
	Name        string
	Category    string
	Address     string
	ContactInfo string
	Rating      string
	Budget      string
	Currency    string
	HalalStatus string
	Remarks     string
}

// EstablishmentUsecase defines establishment administration operations.
type EstablishmentUsecase interface {
	// Create persists a new establishment and stamps createdAt/updatedAt.
	Create(ctx context.Context, input *EstablishmentInput) (*entity.Establishment, error)

	// Get retrieves one establishment.
	Get(ctx context.Context, id string) (*entity.Establishment, error)

	// List retrieves every establishment.
	List(ctx context.Context) ([]*entity.Establishment, error)

	// Update overwrites the writable fields and refreshes updatedAt.
	Update(ctx context.Context, id string, input *EstablishmentInput) (*entity.Establishment, error)

	// Delete removes an establishment. Deletion is blocked while any
	// assignment references it.
	Delete(ctx context.Context, id string) error
}
