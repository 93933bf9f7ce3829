package repository

import "context"

// Counter names used by the portal.
const (
	CounterEvaluators    = "evaluators"
	CounterRequests      = "requests"
	CounterReassignments = "reassignments"
)

// CounterRepository exposes the record store's atomic increment primitive
// over named counters at "counters/{name}". Unlike a scan over existing
// keys, Next is safe under concurrent allocation.
type CounterRepository interface {
	// Next atomically increments the named counter and returns the new value.
	// A missing counter starts at zero, so the first call returns 1.
	Next(ctx context.Context, name string) (int64, error)

	// EnsureAtLeast raises the named counter to floor unless it is already
	// there. Seeding calls this after scan-based allocation so subsequent
	// Next calls continue past the seeded values.
	EnsureAtLeast(ctx context.Context, name string, floor int64) error
}
