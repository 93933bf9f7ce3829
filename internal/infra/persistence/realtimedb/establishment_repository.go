package realtimedb

import (
	"context"
	"sort"

	"firebase.google.com/go/v4/db"
	"github.com/pkg/errors"

	"htga/internal/domain/entity"
	"htga/internal/domain/repository"
)

type establishmentRepository struct {
	ref *db.Ref
}

// NewEstablishmentRepository creates a repository over "establishments/{key}".
func NewEstablishmentRepository(client *db.Client) repository.EstablishmentRepository {
	return &establishmentRepository{ref: client.NewRef(establishmentsPath)}
}

func (r *establishmentRepository) Create(ctx context.Context, establishment *entity.Establishment) (string, error) {
	// Push generates the opaque child key; the record itself does not carry
	// its own key.
	record := *establishment
	record.ID = ""

	newRef, err := r.ref.Push(ctx, &record)
	if err != nil {
		return "", errors.Wrap(err, "failed to create establishment")
	}
	establishment.ID = newRef.Key

	return newRef.Key, nil
}

func (r *establishmentRepository) FindByID(ctx context.Context, id string) (*entity.Establishment, error) {
	var establishment *entity.Establishment
	if err := r.ref.Child(id).Get(ctx, &establishment); err != nil {
		return nil, errors.Wrap(err, "failed to get establishment")
	}
	if establishment == nil {
		return nil, repository.ErrEstablishmentNotFound
	}
	establishment.ID = id

	return establishment, nil
}

func (r *establishmentRepository) FindAll(ctx context.Context) ([]*entity.Establishment, error) {
	var records map[string]*entity.Establishment
	if err := r.ref.Get(ctx, &records); err != nil {
		return nil, errors.Wrap(err, "failed to list establishments")
	}

	establishments := make([]*entity.Establishment, 0, len(records))
	for id, establishment := range records {
		establishment.ID = id
		establishments = append(establishments, establishment)
	}
	sort.Slice(establishments, func(i, j int) bool {
		return establishments[i].ID < establishments[j].ID
	})

	return establishments, nil
}

func (r *establishmentRepository) Update(ctx context.Context, establishment *entity.Establishment) error {
	record := *establishment
	record.ID = ""
	if err := r.ref.Child(establishment.ID).Set(ctx, &record); err != nil {
		return errors.Wrap(err, "failed to update establishment")
	}

	return nil
}

func (r *establishmentRepository) Delete(ctx context.Context, id string) error {
	if err := r.ref.Child(id).Delete(ctx); err != nil {
		return errors.Wrap(err, "failed to delete establishment")
	}

	return nil
}
