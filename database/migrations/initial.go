// Package migrations contains all database migration files. Each file
// registers itself via init(); import the package for side effects.
package migrations

import (
	"github.com/rohanwest/pancake/app/models"
	"github.com/rohanwest/pancake/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260301000001_create_orders_table", &CreateOrdersTable{})
	migration.Register("20260301000002_create_rewards_table", &CreateRewardsTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: orders --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("orders")
}

// -------- 0003: rewards --------

type CreateRewardsTable struct{}

func (m *CreateRewardsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Reward{})
}

func (m *CreateRewardsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("rewards")
}
