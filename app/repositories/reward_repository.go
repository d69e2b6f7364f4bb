package repositories

import (
	"github.com/rohanwest/pancake/app/models"
	"github.com/rohanwest/pancake/pkg/database"
)

// RewardRepository handles database operations for Reward.
type RewardRepository struct{}

func NewRewardRepository() *RewardRepository {
	return &RewardRepository{}
}

// Create persists a new reward record.
func (r *RewardRepository) Create(reward *models.Reward) error {
	return database.DB.Create(reward).Error
}

// FindByID looks up a reward by primary key.
func (r *RewardRepository) FindByID(id string) (models.Reward, error) {
	var reward models.Reward
	err := database.DB.Where("id = ?", id).First(&reward).Error
	return reward, err
}

// Update persists changes to an existing reward.
func (r *RewardRepository) Update(reward *models.Reward) error {
	return database.DB.Save(reward).Error
}

// ByUser returns the rewards owned by userID in creation order.
func (r *RewardRepository) ByUser(userID string) ([]models.Reward, error) {
	var rewards []models.Reward
	err := database.DB.Where("user_id = ?", userID).Order("created_at").Find(&rewards).Error
	return rewards, err
}

// All returns every reward in creation order.
func (r *RewardRepository) All() ([]models.Reward, error) {
	var rewards []models.Reward
	err := database.DB.Order("created_at").Find(&rewards).Error
	return rewards, err
}
