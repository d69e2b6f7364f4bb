package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohanwest/pancake/config"
)

func TestSignupCreatesAccountWithSession(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	user, err := svc.Signup("  Alice@Example.COM ", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, user.Token)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "secret123", user.Password)

	got, ok := svc.Authenticate(user.Token)
	require.True(t, ok)
	assert.Equal(t, user.ID, got.ID)
}

func TestSignupRejectsEmptyInput(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	_, err := svc.Signup("", "secret123")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Signup("alice@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	_, err := svc.Signup("alice@example.com", "secret123")
	require.NoError(t, err)

	// Same address in a different case is still a duplicate.
	_, err = svc.Signup("ALICE@example.com", "other")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestSignupGrantsAdminToMasterEmail(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	user, err := svc.Signup(config.AdminEmail(), "secret123")
	require.NoError(t, err)

	assert.True(t, user.IsAdmin)
	assert.True(t, svc.IsMaster(user))
}

func TestLoginRotatesToken(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	signedUp, err := svc.Signup("alice@example.com", "secret123")
	require.NoError(t, err)

	loggedIn, err := svc.Login("alice@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEqual(t, signedUp.Token, loggedIn.Token)

	// The previous session is dead, the new one works.
	_, ok := svc.Authenticate(signedUp.Token)
	assert.False(t, ok)
	_, ok = svc.Authenticate(loggedIn.Token)
	assert.True(t, ok)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	user, err := svc.Signup("alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Login("alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// A failed login must not touch the existing session.
	_, ok := svc.Authenticate(user.Token)
	assert.True(t, ok)
}

func TestAuthenticateRejectsEmptyAndUnknownTokens(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	_, ok := svc.Authenticate("")
	assert.False(t, ok)

	_, ok = svc.Authenticate("no-such-token")
	assert.False(t, ok)
}

func TestAuthenticateHonoursTokenTTL(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	user, err := svc.Signup("alice@example.com", "secret123")
	require.NoError(t, err)

	config.Set("TOKEN_TTL", "1ns")
	t.Cleanup(func() { config.Set("TOKEN_TTL", "24h") })

	_, ok := svc.Authenticate(user.Token)
	assert.False(t, ok)

	// TTL of zero disables expiry entirely.
	config.Set("TOKEN_TTL", "0")
	_, ok = svc.Authenticate(user.Token)
	assert.True(t, ok)
}

func TestPromote(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	user, err := svc.Signup("bob@example.com", "secret123")
	require.NoError(t, err)
	require.False(t, user.IsAdmin)

	promoted, err := svc.Promote(user.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)

	// Promoting an admin again is a quiet success.
	again, err := svc.Promote(user.ID)
	require.NoError(t, err)
	assert.True(t, again.IsAdmin)
}

func TestPromoteUnknownUser(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	_, err := svc.Promote("definitely-not-an-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolverMapsClaims(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	master, err := svc.Signup(config.AdminEmail(), "secret123")
	require.NoError(t, err)

	resolve := svc.Resolver()
	claims, ok := resolve(master.Token)
	require.True(t, ok)
	assert.Equal(t, master.ID, claims.UserID)
	assert.True(t, claims.IsAdmin)
	assert.True(t, claims.IsMaster)

	_, ok = resolve("bogus")
	assert.False(t, ok)
}

func TestListUsersReturnsAllAccounts(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	_, err := svc.Signup("a@example.com", "pw1")
	require.NoError(t, err)
	_, err = svc.Signup("b@example.com", "pw2")
	require.NoError(t, err)

	users, err := svc.ListUsers()
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
