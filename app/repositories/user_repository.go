// Package repositories holds the database access layer.
package repositories

import (
	"github.com/rohanwest/pancake/app/models"
	"github.com/rohanwest/pancake/pkg/database"
)

// UserRepository handles database operations for User.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByEmail looks up a user by their normalized email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := database.DB.Where("email = ?", email).First(&user).Error
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id string) (models.User, error) {
	var user models.User
	err := database.DB.Where("id = ?", id).First(&user).Error
	return user, err
}

// FindByToken resolves a session token to its user.
func (r *UserRepository) FindByToken(token string) (models.User, error) {
	var user models.User
	err := database.DB.Where("token = ?", token).First(&user).Error
	return user, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return database.DB.Create(user).Error
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return database.DB.Save(user).Error
}

// All returns every user in creation order.
func (r *UserRepository) All() ([]models.User, error) {
	var users []models.User
	err := database.DB.Order("created_at").Find(&users).Error
	return users, err
}
