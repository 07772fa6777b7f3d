package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/identity"
	"github.com/stockroom/backoffice/internal/domain/shared"
	"github.com/stockroom/backoffice/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// UserService manages the team of a tenant
type UserService struct {
	userRepo  identity.UserRepository
	blacklist auth.TokenBlacklist
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewUserService creates a new user service. tokenTTL bounds how long a
// revocation of a user's tokens has to be remembered.
func NewUserService(
	userRepo identity.UserRepository,
	blacklist auth.TokenBlacklist,
	tokenTTL time.Duration,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		blacklist: blacklist,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Create adds a team member
func (s *UserService) Create(ctx context.Context, tenantID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	user, err := identity.NewUser(tenantID, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	user.SetName(req.FirstName, req.LastName)
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	user.SetFlags(active, req.IsStaff, req.IsAdmin)

	if err := s.ensureUnique(ctx, user, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("tenant_id", tenantID.String()))
	resp := ToUserResponse(user)
	return &resp, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List retrieves the team of a tenant
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]UserResponse, int64, error) {
	users, total, err := s.userRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses, total, nil
}

// Update changes a user's profile, password or flags. Deactivating a user
// or changing their password revokes the tokens issued so far.
func (s *UserService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	wasActive := user.IsActive

	if req.Email != nil {
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, err
		}
		if err := s.ensureUnique(ctx, user, user.ID); err != nil {
			return nil, err
		}
	}
	if req.FirstName != nil || req.LastName != nil {
		first, last := user.FirstName, user.LastName
		if req.FirstName != nil {
			first = *req.FirstName
		}
		if req.LastName != nil {
			last = *req.LastName
		}
		user.SetName(first, last)
	}
	passwordChanged := false
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
		passwordChanged = true
	}
	if req.IsActive != nil || req.IsStaff != nil || req.IsAdmin != nil {
		active, staff, admin := user.IsActive, user.IsStaff, user.IsAdmin
		if req.IsActive != nil {
			active = *req.IsActive
		}
		if req.IsStaff != nil {
			staff = *req.IsStaff
		}
		if req.IsAdmin != nil {
			admin = *req.IsAdmin
		}
		user.SetFlags(active, staff, admin)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	if passwordChanged || (wasActive && !user.IsActive) {
		if err := s.revokeTokens(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete removes a user that no sell or purchase references
func (s *UserService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.userRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	used, err := s.userRepo.HasLedgerRows(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if used {
		return shared.Conflict("User has sells or purchases")
	}
	if err := s.userRepo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	s.logger.Info("User deleted", zap.String("user_id", id.String()))
	return s.revokeTokens(ctx, id)
}

func (s *UserService) ensureUnique(ctx context.Context, user *identity.User, excludeID uuid.UUID) error {
	taken, err := s.userRepo.ExistsByUsernameOrEmail(ctx, user.Username, user.Email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.Conflict("Username or email already in use")
	}
	return nil
}

func (s *UserService) revokeTokens(ctx context.Context, userID uuid.UUID) error {
	if err := s.blacklist.RevokeUser(ctx, userID.String(), s.tokenTTL); err != nil {
		s.logger.Error("Failed to revoke user tokens", zap.String("user_id", userID.String()), zap.Error(err))
		return err
	}
	return nil
}
