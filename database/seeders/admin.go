package seeders

import (
	"errors"
	"fmt"
	"time"

	"github.com/rohanwest/pancake/app/models"
	"github.com/rohanwest/pancake/config"
	"github.com/rohanwest/pancake/pkg/auth"
	"github.com/rohanwest/pancake/pkg/logger"
	"gorm.io/gorm"
)

func init() {
	Register("master_admin", SeedMasterAdmin)
}

// SeedMasterAdmin creates the master admin account if it does not exist.
// The account already existing is fine; its admin flag is re-asserted so a
// restored snapshot can never demote the master.
func SeedMasterAdmin(db *gorm.DB) error {
	email := config.AdminEmail()
	password := config.AdminPassword()

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		if !existing.IsAdmin {
			existing.IsAdmin = true
			return db.Save(&existing).Error
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	// Without a seed password the account is skipped; signing up with the
	// master email grants admin anyway, so the server can still boot.
	if password == "" {
		logger.Warn("seeder: ADMIN_PASSWORD not set, master admin not seeded", "email", email)
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Email:         email,
		Password:      hash,
		IsAdmin:       true,
		Token:         auth.NewToken(),
		TokenIssuedAt: time.Now(),
	}
	return db.Create(&admin).Error
}
