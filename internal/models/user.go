package models

import "time"

// User represents a registered user of the catalog.
// PasswordHash is never serialized outward.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName    string    `json:"first_name" gorm:"type:varchar(100)"`
	LastName     string    `json:"last_name" gorm:"type:varchar(100)"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null;type:varchar(100)" validate:"required"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null;type:varchar(255)" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserUpdate is a partial-overwrite patch for a user. Nil fields keep the
// current value. Password, when set, is re-hashed before storage.
type UserUpdate struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

// UserFilters narrows a user listing. All filters are substring matches.
type UserFilters struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
}
