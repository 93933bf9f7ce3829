package usecase

import (
	"context"

	"htga/internal/domain/service"
)

// AdminUsecase defines superadmin management of admin accounts, which live
// entirely in the identity provider.
type AdminUsecase interface {
	// CreateAdmin creates an admin identity account with the admin role
	// claim. The email must not collide with any evaluator.
	CreateAdmin(ctx context.Context, email, password, name string) (*service.IdentityUser, error)

	// ListAdmins returns every account carrying the admin role.
	ListAdmins(ctx context.Context) ([]*service.IdentityUser, error)

	// SetAdminDisabled enables or disables an admin account.
	SetAdminDisabled(ctx context.Context, uid string, disabled bool) error

	// DeleteAdmin removes an admin account.
	DeleteAdmin(ctx context.Context, uid string) error
}
