package services

import (
	"errors"
	"fmt"

	"github.com/rohanwest/pancake/app/models"
	"github.com/rohanwest/pancake/app/repositories"
	"github.com/rohanwest/pancake/pkg/event"
	"github.com/rohanwest/pancake/pkg/metrics"
	"gorm.io/gorm"
)

// RewardService owns reward issuance and redemption.
type RewardService struct {
	rewards *repositories.RewardRepository
}

func NewRewardService() *RewardService {
	return &RewardService{rewards: repositories.NewRewardRepository()}
}

// Issue records a reward. An id is assigned when absent; an explicit id is
// kept as-is. Status defaults to issued.
func (s *RewardService) Issue(reward models.Reward) (models.Reward, error) {
	if reward.Status == "" {
		reward.Status = models.RewardStatusIssued
	}
	if err := s.rewards.Create(&reward); err != nil {
		return models.Reward{}, fmt.Errorf("create reward: %w", err)
	}

	event.Fire(EventRewardIssued, reward)
	return reward, nil
}

// SetStatus overwrites a reward's status. Setting the status it already has
// is an idempotent no-op: the record is returned unchanged and nothing is
// written or re-announced.
func (s *RewardService) SetStatus(id, status string) (models.Reward, error) {
	reward, err := s.rewards.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Reward{}, fmt.Errorf("reward %s: %w", id, ErrNotFound)
		}
		return models.Reward{}, fmt.Errorf("find reward: %w", err)
	}

	if reward.Status == status {
		return reward, nil
	}

	reward.Status = status
	if err := s.rewards.Update(&reward); err != nil {
		return models.Reward{}, fmt.Errorf("update reward: %w", err)
	}

	metrics.RewardRedemptions.WithLabelValues(status).Inc()
	event.Fire(EventRewardStatusChanged, reward)
	return reward, nil
}

// ForUser returns the rewards owned by userID, preserving creation order.
func (s *RewardService) ForUser(userID string) ([]models.Reward, error) {
	return s.rewards.ByUser(userID)
}

// List returns every reward in creation order.
func (s *RewardService) List() ([]models.Reward, error) {
	return s.rewards.All()
}
