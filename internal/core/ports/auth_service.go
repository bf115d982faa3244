package ports

import (
	"context"

	"github.com/stockcontrol/inventory-api/internal/core/domain"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// TokenIdentity is the identity asserted by a validated session token.
type TokenIdentity struct {
	UserID   string
	Username string
	Role     string
}

// RoleChangeResult distinguishes an actual role change from an idempotent
// no-op on the same target role.
type RoleChangeResult struct {
	Email   string
	Role    string
	Changed bool
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)

	// Login returns a signed session token on success. Unknown email and
	// wrong password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (string, error)

	// ValidateToken verifies signature and expiry AND re-resolves the
	// subject against the credential store, so deleting a user
	// retroactively invalidates that user's outstanding tokens.
	ValidateToken(ctx context.Context, token string) (*TokenIdentity, error)

	ChangeRole(ctx context.Context, targetEmail, newRole string) (*RoleChangeResult, error)
}
