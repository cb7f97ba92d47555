package services_test

import (
	"testing"
	"time"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func setupAuth(t *testing.T, ttl time.Duration) (*services.AuthService, *repositories.MemUserRepository, *repositories.MemSessionRepository) {
	t.Helper()
	userRepo := repositories.NewMemUserRepository()
	sessionRepo := repositories.NewMemSessionRepository()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	assert.NoError(t, err)
	_, err = userRepo.Create(&models.User{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Username:     "ada",
		Email:        "ada@example.com",
		PasswordHash: string(hash),
	})
	assert.NoError(t, err)

	return services.NewAuthService(userRepo, sessionRepo, ttl), userRepo, sessionRepo
}

func TestAuthService_LoginSuccess(t *testing.T) {
	auth, _, sessions := setupAuth(t, time.Hour)

	user, session, err := auth.Login("ada", "password123")

	assert.NoError(t, err)
	assert.Equal(t, "ada", user.Username)
	assert.Len(t, session.Token, 64) // 32 random bytes, hex encoded
	assert.Equal(t, user.ID, session.Data.UserID)
	assert.Equal(t, "Ada", session.Data.FirstName)
	assert.True(t, session.ExpiresAt.After(time.Now()))
	assert.Equal(t, 1, sessions.Count())

	// The minted session must authenticate.
	resolved, err := auth.Authenticate(session.Token)
	assert.NoError(t, err)
	assert.Equal(t, session.Data, resolved.Data)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	auth, _, sessions := setupAuth(t, time.Hour)

	user, session, err := auth.Login("ada", "wrong")

	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.Nil(t, user)
	assert.Nil(t, session)
	assert.Equal(t, 0, sessions.Count(), "no session may be created on failure")
}

func TestAuthService_LoginUnknownUsername(t *testing.T) {
	auth, _, sessions := setupAuth(t, time.Hour)

	// A missing user must be an explicit credential failure, not a
	// dereference of an absent record.
	user, session, err := auth.Login("nobody", "password123")

	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.Nil(t, user)
	assert.Nil(t, session)
	assert.Equal(t, 0, sessions.Count())
}

func TestAuthService_AuthenticateUnknownToken(t *testing.T) {
	auth, _, _ := setupAuth(t, time.Hour)

	_, err := auth.Authenticate("no-such-token")
	assert.ErrorIs(t, err, services.ErrInvalidSession)

	_, err = auth.Authenticate("")
	assert.ErrorIs(t, err, services.ErrInvalidSession)
}

func TestAuthService_ExpiredSessionIsRevoked(t *testing.T) {
	auth, _, sessions := setupAuth(t, time.Hour)

	expired := &models.Session{
		Token:     "expiredtoken",
		Data:      models.SessionData{UserID: 1, Username: "ada"},
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	assert.NoError(t, sessions.Create(expired))

	_, err := auth.Authenticate("expiredtoken")
	assert.ErrorIs(t, err, services.ErrInvalidSession)
	assert.Equal(t, 0, sessions.Count(), "expired session must be deleted on sight")
}

func TestAuthService_Logout(t *testing.T) {
	auth, _, sessions := setupAuth(t, time.Hour)

	_, session, err := auth.Login("ada", "password123")
	assert.NoError(t, err)
	assert.Equal(t, 1, sessions.Count())

	assert.NoError(t, auth.Logout(session.Token))
	assert.Equal(t, 0, sessions.Count())

	_, err = auth.Authenticate(session.Token)
	assert.ErrorIs(t, err, services.ErrInvalidSession)

	// Logging out twice reports the session as gone.
	assert.ErrorIs(t, auth.Logout(session.Token), services.ErrInvalidSession)
}
