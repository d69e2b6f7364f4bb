// Package controllers holds the HTTP handlers.
package controllers

import (
	"errors"
	"net/http"

	"github.com/rohanwest/pancake/app/services"
	"github.com/rohanwest/pancake/pkg/bind"
	"github.com/rohanwest/pancake/pkg/logger"
	"github.com/rohanwest/pancake/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates an account and returns it with a fresh session token.
// The password never appears in the response.
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var body credentialsInput
	if _, err := bind.JSON(r, &body); err != nil {
		response.BadRequest(w, "Email and password required")
		return
	}

	user, err := c.service.Signup(body.Email, body.Password)
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		response.BadRequest(w, "Email and password required")
	case errors.Is(err, services.ErrAlreadyExists):
		response.BadRequest(w, "User already exists")
	case err != nil:
		logger.WithCtx(r.Context()).Error("signup failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	default:
		logger.WithCtx(r.Context()).Info("user signed up", "user_id", user.ID, "admin", user.IsAdmin)
		response.Created(w, user)
	}
}

// Login verifies credentials and rotates the session token.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body credentialsInput
	if _, err := bind.JSON(r, &body); err != nil {
		response.Unauthorized(w, "Invalid credentials")
		return
	}

	user, err := c.service.Login(body.Email, body.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Unauthorized(w, "Invalid credentials")
	case err != nil:
		logger.WithCtx(r.Context()).Error("login failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	default:
		logger.WithCtx(r.Context()).Info("user logged in", "user_id", user.ID)
		response.Success(w, user)
	}
}
