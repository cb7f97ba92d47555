package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"catalog/internal/models"
	"catalog/internal/repositories"
)

// ErrInvalidCredentials is returned for any login failure, unknown
// username and wrong password alike, so the response leaks no detail.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidSession is returned when a token resolves to no live session.
var ErrInvalidSession = errors.New("invalid session")

// AuthService handles login, session minting, and session validation.
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	sessionTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
	}
}

// Login authenticates a user and mints a session on success. A missing
// username and a wrong password both yield ErrInvalidCredentials; no
// session row is created on failure.
func (s *AuthService) Login(username, password string) (*models.User, *models.Session, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return nil, nil, err
	}

	session := &models.Session{
		Token: token,
		Data: models.SessionData{
			UserID:    user.ID,
			Username:  user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
		ExpiresAt: time.Now().UTC().Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Authenticate resolves a token to its live session. Expired sessions
// are deleted on sight.
func (s *AuthService) Authenticate(token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}
	session, err := s.sessionRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	if session.Expired() {
		if err := s.sessionRepo.Delete(session.Token); err != nil {
			log.Printf("Failed to delete expired session: %v", err)
		}
		return nil, ErrInvalidSession
	}
	return session, nil
}

// Logout revokes a session by deleting its row.
func (s *AuthService) Logout(token string) error {
	if err := s.sessionRepo.Delete(token); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidSession
		}
		return err
	}
	return nil
}

// generateToken mints an opaque 256-bit session token from the system
// CSPRNG.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
