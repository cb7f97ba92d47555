package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"catalog/internal/models"
	"catalog/internal/repositories"
)

// UserService handles business logic related to users.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// ListUsers retrieves users matching the filters.
func (s *UserService) ListUsers(filters models.UserFilters) ([]models.User, error) {
	return s.repo.FindAll(filters)
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id int64) (*models.User, error) {
	return s.repo.FindByID(id)
}

// CreateUser creates a new user. The plaintext password, when supplied,
// is bcrypt-hashed before it reaches the store. Username and email
// uniqueness is enforced by the store's unique indexes.
func (s *UserService) CreateUser(user *models.User, password string) (*models.User, error) {
	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}
	return s.repo.Create(user)
}

// UpdateUser applies a partial-overwrite patch to a user. A supplied
// password is re-hashed; omitted fields keep their stored value.
func (s *UserService) UpdateUser(id int64, patch models.UserUpdate) (*models.User, error) {
	current, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if patch.FirstName != nil {
		current.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		current.LastName = *patch.LastName
	}
	if patch.Username != nil {
		current.Username = *patch.Username
	}
	if patch.Email != nil {
		current.Email = *patch.Email
	}
	if patch.Password != nil && *patch.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		current.PasswordHash = string(hashed)
	}

	if err := s.repo.Update(current); err != nil {
		return nil, err
	}
	return s.repo.FindByID(id)
}

// DeleteUser deletes a user by their ID.
func (s *UserService) DeleteUser(id int64) error {
	return s.repo.Delete(id)
}
