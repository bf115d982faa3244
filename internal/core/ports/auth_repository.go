package ports

import (
	"context"
	"time"

	"github.com/stockcontrol/inventory-api/internal/core/domain"
)

// AuthRepository defines the interface for user persistence (the credential
// store). Email uniqueness is enforced by the storage layer, not by callers.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateRole(ctx context.Context, id, role string, updatedAt time.Time) error
}
