package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rohanwest/pancake/app/models"
	"github.com/rohanwest/pancake/config"
	"github.com/rohanwest/pancake/pkg/database"
	"github.com/rohanwest/pancake/pkg/logger"
	"github.com/rohanwest/pancake/pkg/storage"
	"gorm.io/gorm"
)

// Snapshot is the whole-state backup document: three named arrays, rewritten
// wholesale on every export.
type Snapshot struct {
	Users   []snapshotUser  `json:"users"`
	Orders  []models.Order  `json:"orders"`
	Rewards []models.Reward `json:"rewards"`
}

// snapshotUser re-exposes the fields the public User JSON hides. The stored
// password is the bcrypt hash, never plaintext.
type snapshotUser struct {
	models.User
	Password      string    `json:"password"`
	TokenIssuedAt time.Time `json:"tokenIssuedAt"`
}

// SnapshotService exports and restores the full dataset through the storage
// disk (local file or S3 object).
type SnapshotService struct{}

func NewSnapshotService() *SnapshotService {
	return &SnapshotService{}
}

// Export writes the current dataset to the configured snapshot path and
// returns that path.
func (s *SnapshotService) Export() (string, error) {
	snap, err := s.collect()
	if err != nil {
		return "", fmt.Errorf("snapshot: collect: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("snapshot: marshal: %w", err)
	}

	path := config.SnapshotPath()
	if err := storage.Put(path, data); err != nil {
		return "", fmt.Errorf("snapshot: write: %w", err)
	}
	return path, nil
}

// Load reads the snapshot document. A missing or corrupt document yields an
// empty snapshot rather than an error: availability over durability.
func (s *SnapshotService) Load() Snapshot {
	var snap Snapshot

	data, err := storage.Get(config.SnapshotPath())
	if err != nil {
		return snap
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		logger.Warn("snapshot: corrupt document, starting empty", "error", err)
		return Snapshot{}
	}
	return snap
}

// Restore replaces the entire dataset with the snapshot contents in one
// transaction. Last write wins; there is no merge.
func (s *SnapshotService) Restore() (Snapshot, error) {
	snap := s.Load()

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"users", "orders", "rewards"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		for i := range snap.Users {
			u := snap.Users[i].User
			u.Password = snap.Users[i].Password
			u.TokenIssuedAt = snap.Users[i].TokenIssuedAt
			if err := tx.Create(&u).Error; err != nil {
				return fmt.Errorf("restore user %s: %w", u.ID, err)
			}
		}
		for i := range snap.Orders {
			if err := tx.Create(&snap.Orders[i]).Error; err != nil {
				return fmt.Errorf("restore order %s: %w", snap.Orders[i].ID, err)
			}
		}
		for i := range snap.Rewards {
			if err := tx.Create(&snap.Rewards[i]).Error; err != nil {
				return fmt.Errorf("restore reward %s: %w", snap.Rewards[i].ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: restore: %w", err)
	}

	return snap, nil
}

func (s *SnapshotService) collect() (Snapshot, error) {
	var snap Snapshot

	var users []models.User
	if err := database.DB.Order("created_at").Find(&users).Error; err != nil {
		return snap, err
	}
	for _, u := range users {
		snap.Users = append(snap.Users, snapshotUser{
			User:          u,
			Password:      u.Password,
			TokenIssuedAt: u.TokenIssuedAt,
		})
	}

	if err := database.DB.Order("created_at").Find(&snap.Orders).Error; err != nil {
		return snap, err
	}
	if err := database.DB.Order("created_at").Find(&snap.Rewards).Error; err != nil {
		return snap, err
	}
	return snap, nil
}

// Counts summarises a snapshot for API responses.
func (snap Snapshot) Counts() map[string]int {
	return map[string]int{
		"users":   len(snap.Users),
		"orders":  len(snap.Orders),
		"rewards": len(snap.Rewards),
	}
}
