package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"catalog/internal/models"
)

// MemUserRepository is an in-memory implementation of UserRepository,
// used in tests.
type MemUserRepository struct {
	users  map[int64]models.User
	nextID int64
	mu     sync.RWMutex
}

// NewMemUserRepository creates a new instance of MemUserRepository.
func NewMemUserRepository() *MemUserRepository {
	return &MemUserRepository{
		users:  make(map[int64]models.User),
		nextID: 1,
	}
}

// FindAll returns users matching the substring filters, newest first.
func (r *MemUserRepository) FindAll(filters models.UserFilters) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		if filters.FirstName != "" && !strings.Contains(u.FirstName, filters.FirstName) {
			continue
		}
		if filters.LastName != "" && !strings.Contains(u.LastName, filters.LastName) {
			continue
		}
		if filters.Username != "" && !strings.Contains(u.Username, filters.Username) {
			continue
		}
		if filters.Email != "" && !strings.Contains(u.Email, filters.Email) {
			continue
		}
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// FindByID returns a user by their ID.
func (r *MemUserRepository) FindByID(id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return &user, nil
}

// FindByUsername returns a user by exact username.
func (r *MemUserRepository) FindByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
}

// FindByEmail returns a user by exact email.
func (r *MemUserRepository) FindByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
}

// Create adds a new user, assigning the next identity.
func (r *MemUserRepository) Create(user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *user
	stored.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.users[stored.ID] = stored
	return &stored, nil
}

// Update modifies an existing user.
func (r *MemUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user %d: %w", user.ID, ErrNotFound)
	}
	stored := *user
	stored.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = stored
	return nil
}

// Delete removes a user by their ID.
func (r *MemUserRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	delete(r.users, id)
	return nil
}
