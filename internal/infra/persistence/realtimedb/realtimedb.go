// Package realtimedb implements the repository interfaces on top of the
// Firebase Realtime Database: a hosted hierarchical key-value store addressed
// by path-like keys, with push-key generation, equality-indexed queries, and
// compare-and-swap transactions.
package realtimedb

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"github.com/pkg/errors"
)

// Collection paths within the database.
const (
	evaluatorsPath     = "evaluators"
	establishmentsPath = "establishments"
	assignmentsPath    = "assignments"
	countersPath       = "counters"
)

// NewClient creates the database client from the shared Firebase app.
func NewClient(ctx context.Context, app *firebase.App) (*db.Client, error) {
	client, err := app.Database(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create realtime database client")
	}

	return client, nil
}
