// Package delivery defines the contract every transport server fulfills.
package delivery

import "context"

// Delivery is a transport entrypoint started by the application container.
type Delivery interface {
	Serve(ctx context.Context) error
}
