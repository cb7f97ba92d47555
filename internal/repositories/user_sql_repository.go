package repositories

import (
	"fmt"
	"strings"
	"time"

	"catalog/internal/database"
	"catalog/internal/models"
)

// SQLUserRepository is a Gateway-backed implementation of UserRepository.
type SQLUserRepository struct {
	gw *database.Gateway
}

// NewSQLUserRepository creates a new instance of SQLUserRepository.
func NewSQLUserRepository(gw *database.Gateway) *SQLUserRepository {
	return &SQLUserRepository{gw: gw}
}

// FindAll retrieves users matching the supplied substring filters,
// newest first.
func (r *SQLUserRepository) FindAll(filters models.UserFilters) ([]models.User, error) {
	query := "SELECT * FROM users"
	var conditions []string
	var params []interface{}

	like := func(column, value string) {
		conditions = append(conditions, column+" LIKE ?")
		params = append(params, "%"+value+"%")
	}
	if filters.FirstName != "" {
		like("first_name", filters.FirstName)
	}
	if filters.LastName != "" {
		like("last_name", filters.LastName)
	}
	if filters.Username != "" {
		like("username", filters.Username)
	}
	if filters.Email != "" {
		like("email", filters.Email)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	var users []models.User
	if err := r.gw.QueryAll(&users, query, params...); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// FindByID retrieves a user by their ID.
func (r *SQLUserRepository) FindByID(id int64) (*models.User, error) {
	return r.findOne("SELECT * FROM users WHERE id = ?", fmt.Sprintf("user %d", id), id)
}

// FindByUsername retrieves a user by exact username, used for login and
// uniqueness lookups.
func (r *SQLUserRepository) FindByUsername(username string) (*models.User, error) {
	return r.findOne("SELECT * FROM users WHERE username = ?", "user "+username, username)
}

// FindByEmail retrieves a user by exact email.
func (r *SQLUserRepository) FindByEmail(email string) (*models.User, error) {
	return r.findOne("SELECT * FROM users WHERE email = ?", "user "+email, email)
}

func (r *SQLUserRepository) findOne(query, desc string, arg interface{}) (*models.User, error) {
	var user models.User
	found, err := r.gw.QueryFirst(&user, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", desc, err)
	}
	if !found {
		return nil, fmt.Errorf("%s: %w", desc, ErrNotFound)
	}
	return &user, nil
}

// Create inserts a new user and returns the freshly created record.
func (r *SQLUserRepository) Create(user *models.User) (*models.User, error) {
	now := time.Now().UTC()
	id, err := r.gw.InsertReturningID(
		`INSERT INTO users (first_name, last_name, username, email, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		user.FirstName,
		user.LastName,
		user.Username,
		user.Email,
		user.PasswordHash,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return r.FindByID(id)
}

// Update overwrites every column of an existing user row.
func (r *SQLUserRepository) Update(user *models.User) error {
	res, err := r.gw.Exec(
		`UPDATE users
		 SET first_name = ?, last_name = ?, username = ?, email = ?, password_hash = ?, updated_at = ?
		 WHERE id = ?`,
		user.FirstName,
		user.LastName,
		user.Username,
		user.Email,
		user.PasswordHash,
		time.Now().UTC(),
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", user.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a user by their ID.
func (r *SQLUserRepository) Delete(id int64) error {
	res, err := r.gw.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}
