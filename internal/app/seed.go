package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/identity"
	"github.com/stockroom/backoffice/internal/infrastructure/config"
	"github.com/stockroom/backoffice/internal/infrastructure/persistence"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedAdmin creates the configured administrator unless an account with the
// same username or email already exists. It reports whether a user was created.
func SeedAdmin(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, cfg config.AdminConfig, log *zap.Logger) (bool, error) {
	if cfg.Username == "" {
		return false, nil
	}
	repo := persistence.NewGormUserRepository(db)

	exists, err := repo.ExistsByUsernameOrEmail(ctx, cfg.Username, cfg.Email, uuid.Nil)
	if err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	if exists {
		return false, nil
	}

	user, err := identity.NewUser(tenantID, cfg.Username, cfg.Email, cfg.Password)
	if err != nil {
		return false, fmt.Errorf("build admin: %w", err)
	}
	user.SetFlags(true, true, true)
	if err := repo.Save(ctx, user); err != nil {
		return false, fmt.Errorf("save admin: %w", err)
	}

	log.Info("Seeded administrator",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))
	return true, nil
}
