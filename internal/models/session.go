package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SessionData is the denormalized payload embedded in a session row, kept
// so authenticated requests can resolve the user without a second lookup.
type SessionData struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Value implements driver.Valuer.
func (d SessionData) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session data: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (d *SessionData) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = SessionData{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported session data type %T", src)
	}
	if err := json.Unmarshal(raw, d); err != nil {
		*d = SessionData{}
	}
	return nil
}

// Session is a server-side login session. The token is the sole
// credential, carried by the client in a cookie.
type Session struct {
	Token     string      `json:"token" gorm:"primaryKey;type:varchar(128)"`
	Data      SessionData `json:"data" gorm:"type:text"`
	ExpiresAt time.Time   `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
