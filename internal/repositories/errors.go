package repositories

import "errors"

// ErrNotFound is returned when a lookup or mutation targets a record that
// does not exist. Callers match it with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrInvalidSort is returned when client-controlled sort input falls
// outside the allow-list.
var ErrInvalidSort = errors.New("invalid sort")
