package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rohanwest/pancake/app/models"
	"github.com/rohanwest/pancake/app/repositories"
	"github.com/rohanwest/pancake/config"
	"github.com/rohanwest/pancake/pkg/auth"
	"github.com/rohanwest/pancake/pkg/event"
	"github.com/rohanwest/pancake/pkg/middleware"
	"gorm.io/gorm"
)

// AuthService owns accounts, credentials and session tokens.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// NormalizeEmail lower-cases and trims an email; emails are stored and
// compared in this form only.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an account. The password is stored as a bcrypt hash and a
// fresh session token is issued immediately, so signup doubles as login.
// Admin rank is granted only when the normalized email matches the
// configured master admin email.
func (s *AuthService) Signup(email, password string) (models.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return models.User{}, fmt.Errorf("email and password required: %w", ErrInvalidInput)
	}

	normalized := NormalizeEmail(email)
	if _, err := s.users.FindByEmail(normalized); err == nil {
		return models.User{}, fmt.Errorf("user %s: %w", normalized, ErrAlreadyExists)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:         normalized,
		Password:      hash,
		IsAdmin:       normalized == config.AdminEmail(),
		Token:         auth.NewToken(),
		TokenIssuedAt: time.Now(),
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and rotates the session token, invalidating the
// previous session. The error is identical whether the email is unknown or
// the password wrong.
func (s *AuthService) Login(email, password string) (models.User, error) {
	normalized := NormalizeEmail(email)

	user, err := s.users.FindByEmail(normalized)
	if err != nil || !auth.CheckPassword(user.Password, password) {
		return models.User{}, ErrInvalidCredentials
	}

	user.Token = auth.NewToken()
	user.TokenIssuedAt = time.Now()
	if err := s.users.Update(&user); err != nil {
		return models.User{}, fmt.Errorf("rotate token: %w", err)
	}

	return user, nil
}

// Authenticate resolves a bearer token to its user. Empty, unknown, and
// expired tokens all resolve to nothing.
func (s *AuthService) Authenticate(token string) (models.User, bool) {
	if token == "" {
		return models.User{}, false
	}

	user, err := s.users.FindByToken(token)
	if err != nil {
		return models.User{}, false
	}

	if ttl := config.TokenTTL(); ttl > 0 && time.Now().After(user.TokenIssuedAt.Add(ttl)) {
		return models.User{}, false
	}

	return user, true
}

// IsMaster reports whether the user is the master admin.
func (s *AuthService) IsMaster(user models.User) bool {
	return user.Email == config.AdminEmail()
}

// Resolver adapts Authenticate for the middleware auth gates.
func (s *AuthService) Resolver() middleware.TokenResolver {
	return func(token string) (middleware.Claims, bool) {
		user, ok := s.Authenticate(token)
		if !ok {
			return middleware.Claims{}, false
		}
		return middleware.Claims{
			UserID:   user.ID,
			Email:    user.Email,
			IsAdmin:  user.IsAdmin,
			IsMaster: s.IsMaster(user),
		}, true
	}
}

// Promote grants admin rank to the target user. Granting twice is a no-op
// success; admin rank is never revoked here. The master-only gate sits in
// the route middleware, which resolves through this service.
func (s *AuthService) Promote(targetID string) (models.User, error) {
	user, err := s.users.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, fmt.Errorf("user %s: %w", targetID, ErrNotFound)
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}

	if user.IsAdmin {
		return user, nil
	}

	user.IsAdmin = true
	if err := s.users.Update(&user); err != nil {
		return models.User{}, fmt.Errorf("promote user: %w", err)
	}

	event.Fire(EventUserPromoted, user)
	return user, nil
}

// ListUsers returns all accounts in creation order.
func (s *AuthService) ListUsers() ([]models.User, error) {
	return s.users.All()
}
