// Package services implements the application's business rules.
package services

import "errors"

// Sentinel error kinds. Controllers translate these to HTTP statuses;
// everything here is expected and recoverable at the request boundary.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
)

// Domain event names fired through pkg/event.
const (
	EventOrderCreated        = "order.created"
	EventOrderStatusChanged  = "order.status_changed"
	EventRewardIssued        = "reward.issued"
	EventRewardStatusChanged = "reward.status_changed"
	EventUserPromoted        = "user.promoted"
)
