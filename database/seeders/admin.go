package seeders

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/groovecrate/vinylstore/app/models"
	"github.com/groovecrate/vinylstore/app/repositories"
	"github.com/groovecrate/vinylstore/config"
	"github.com/groovecrate/vinylstore/pkg/auth"
	"github.com/groovecrate/vinylstore/pkg/logger"
)

// Admin seeds the single admin account from ADMIN_EMAIL / ADMIN_PASSWORD.
// It is a no-op when an admin already exists, so running it repeatedly is
// safe. There is deliberately no built-in default password: seeding an empty
// table without credentials is an error.
func Admin(cfg *config.Config) SeederFunc {
	return func(db *gorm.DB) error {
		ctx := context.Background()
		admins := repositories.NewGormAdminRepository(db)

		count, err := admins.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
			return fmt.Errorf("admins table is empty and ADMIN_EMAIL / ADMIN_PASSWORD are not set")
		}
		return createAdmin(ctx, cfg, admins)
	}
}

// EnsureAdmin is the first-boot variant run by `serve`: an empty table with no
// configured credentials warns instead of failing, so the server still starts
// and the operator can seed later.
func EnsureAdmin(ctx context.Context, cfg *config.Config, admins repositories.AdminRepository) error {
	count, err := admins.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logger.Warn("admins table is empty and ADMIN_EMAIL / ADMIN_PASSWORD are not set; " +
			"nobody can log in until `vinylstore seed` runs with credentials configured")
		return nil
	}
	return createAdmin(ctx, cfg, admins)
}

func createAdmin(ctx context.Context, cfg *config.Config, admins repositories.AdminRepository) error {
	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	return admins.Create(ctx, &models.Admin{
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
	})
}
