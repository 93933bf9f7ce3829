package service

import "context"

// Portal roles carried as custom claims on identity-provider accounts.
const (
	RoleEvaluator  = "evaluator"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// IdentityUser is the portal's view of an identity-provider account.
type IdentityUser struct {
	UID      string
	Email    string
	Name     string
	Disabled bool
	Role     string
}

// IdentityService abstracts the hosted identity provider: account lifecycle
// and role claims. Sign-in itself happens against the portal's own JWTs;
// the provider account is kept as the authoritative credential backing.
type IdentityService interface {
	// CreateUser creates a provider account with the given role claim and
	// returns its UID.
	CreateUser(ctx context.Context, email, password, name, role string) (string, error)

	// UpdatePassword replaces the account's provider-side password.
	UpdatePassword(ctx context.Context, uid, password string) error

	// GetUserByEmail looks up an account by email. A missing account is not
	// an error; both return values are nil.
	GetUserByEmail(ctx context.Context, email string) (*IdentityUser, error)

	// ListUsersByRole returns every account carrying the given role claim.
	ListUsersByRole(ctx context.Context, role string) ([]*IdentityUser, error)

	// SetDisabled enables or disables sign-in for the account.
	SetDisabled(ctx context.Context, uid string, disabled bool) error

	// DeleteUser removes the provider account.
	DeleteUser(ctx context.Context, uid string) error

	// VerifyIDToken validates a provider-issued ID token and returns the
	// account it identifies. Used for admin sign-in, where authentication
	// happens against the provider directly.
	VerifyIDToken(ctx context.Context, idToken string) (*IdentityUser, error)
}
