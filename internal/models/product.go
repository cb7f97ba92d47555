package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Tags is an ordered list of product tags, stored as a JSON-encoded TEXT
// column. Malformed stored JSON scans to the empty list rather than
// failing the query.
type Tags []string

// Value implements driver.Valuer.
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (t *Tags) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		*t = Tags{}
		return nil
	}

	var decoded []string
	if err := json.Unmarshal(raw, &decoded); err != nil || decoded == nil {
		*t = Tags{}
		return nil
	}
	*t = decoded
	return nil
}

// Product represents a catalog product.
type Product struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"not null;type:varchar(255)" validate:"required"`
	Description string    `json:"description" gorm:"type:text"`
	Category    string    `json:"category" gorm:"not null;index;type:varchar(100)" validate:"required"`
	Tags        Tags      `json:"tags" gorm:"type:text"`
	UserRating  float64   `json:"user_rating"`
	RatingCount int       `json:"rating_count"`
	Image       *string   `json:"image" gorm:"type:varchar(255)"`
	CreatedBy   *int64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductUpdate is a partial-overwrite patch for a product. Nil fields
// keep the current value of the record being updated.
type ProductUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Tags        *Tags    `json:"tags"`
	UserRating  *float64 `json:"user_rating"`
	RatingCount *int     `json:"rating_count"`
}

// ProductFilters narrows and orders a product listing. SortBy and
// SortOrder are checked against an allow-list before they reach SQL.
type ProductFilters struct {
	Category  string
	Search    string
	SortBy    string
	SortOrder string
}
