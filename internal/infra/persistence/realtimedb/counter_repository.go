package realtimedb

import (
	"context"

	"firebase.google.com/go/v4/db"
	"github.com/pkg/errors"

	"htga/internal/domain/repository"
)

type counterRepository struct {
	ref *db.Ref
}

// NewCounterRepository creates a repository over "counters/{name}".
func NewCounterRepository(client *db.Client) repository.CounterRepository {
	return &counterRepository{ref: client.NewRef(countersPath)}
}

// Next increments the named counter through the store's compare-and-swap
// transaction primitive, so concurrent allocations never observe the same
// value. A missing counter node reads as zero.
func (r *counterRepository) Next(ctx context.Context, name string) (int64, error) {
	var next int64
	err := r.ref.Child(name).Transaction(ctx, func(node db.TransactionNode) (any, error) {
		var current int64
		if err := node.Unmarshal(&current); err != nil {
			return nil, err
		}
		next = current + 1

		return next, nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "failed to increment counter %q", name)
	}

	return next, nil
}

// EnsureAtLeast raises the named counter to floor through the same
// compare-and-swap primitive. A counter already at or above floor is left
// untouched.
func (r *counterRepository) EnsureAtLeast(ctx context.Context, name string, floor int64) error {
	err := r.ref.Child(name).Transaction(ctx, func(node db.TransactionNode) (any, error) {
		var current int64
		if err := node.Unmarshal(&current); err != nil {
			return nil, err
		}
		if current >= floor {
			return current, nil
		}

		return floor, nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to advance counter %q", name)
	}

	return nil
}
