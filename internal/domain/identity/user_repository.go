package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByIDForTenant finds a user by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*User, error)

	// FindByIDs returns the users among ids that exist, in no particular order
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]User, error)

	// FindByLogin finds a user by username or email across tenants.
	// Usernames and emails are globally unique, which lets login resolve the tenant.
	FindByLogin(ctx context.Context, login string) (*User, error)

	// FindAllForTenant lists users for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]User, int64, error)

	// ExistsByUsernameOrEmail checks for an account holding either value, ignoring excludeID
	ExistsByUsernameOrEmail(ctx context.Context, username, email string, excludeID uuid.UUID) (bool, error)

	// HasLedgerRows checks if any sell or purchase references the user
	HasLedgerRows(ctx context.Context, tenantID, userID uuid.UUID) (bool, error)

	Save(ctx context.Context, user *User) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
