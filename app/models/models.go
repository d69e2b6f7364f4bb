// Package models defines the persisted entities.
package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order statuses form an open set; these are the ones the dashboard uses.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCancelled = "cancelled"
	OrderStatusCompleted = "completed"
)

const (
	RewardStatusIssued   = "issued"
	RewardStatusRedeemed = "redeemed"
)

// User is an account. The master admin is the user whose email equals the
// configured admin email; its admin rank is never revoked.
type User struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Email         string    `gorm:"uniqueIndex;size:255;not null" json:"email"` // stored normalized (lower-cased, trimmed)
	Password      string    `gorm:"size:255;not null" json:"-"`                 // bcrypt hash, never serialised
	IsAdmin       bool      `gorm:"not null;default:false" json:"isAdmin"`
	Token         string    `gorm:"index;size:64" json:"token"` // current session token, rotated on login
	TokenIssuedAt time.Time `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Order references its creator by denormalized id+email; no foreign key is
// enforced, matching the read-side shape the dashboard expects.
type Order struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;size:36" json:"userId"`
	UserEmail string    `gorm:"size:255" json:"userEmail"`
	Items     RawJSON   `gorm:"type:text" json:"items"` // opaque payload, forwarded as-is
	Total     float64   `json:"total"`
	Status    string    `gorm:"size:50;not null;default:pending" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// Reward is a loyalty record owned by a user. Redemption is a one-way status
// change; setting the same status twice is a no-op.
type Reward struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"index;size:36" json:"userId"`
	Title       string    `gorm:"size:255" json:"title"`
	Description string    `gorm:"size:1024" json:"description"`
	Points      int       `json:"points"`
	Status      string    `gorm:"size:50;not null;default:issued" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (r *Reward) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// RawJSON stores an arbitrary JSON value in a text column without
// interpreting it.
type RawJSON []byte

func (j RawJSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *RawJSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("models: UnmarshalJSON on nil RawJSON")
	}
	*j = append((*j)[:0], data...)
	return nil
}

func (j RawJSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j *RawJSON) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*j = nil
	case string:
		*j = RawJSON(v)
	case []byte:
		*j = append((*j)[:0], v...)
	default:
		return fmt.Errorf("models: cannot scan %T into RawJSON", src)
	}
	return nil
}
