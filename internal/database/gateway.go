package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Gateway is a thin parameterized-query wrapper over the store handle.
// Every repository call is a single statement; there is no retry and no
// transaction spanning calls.
type Gateway struct {
	db *gorm.DB
}

// NewGateway creates a Gateway over an open store handle.
func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// ExecResult reports the outcome of a mutation.
type ExecResult struct {
	RowsAffected int64
}

// QueryAll runs a query and scans every row into dest, which must be a
// pointer to a slice.
func (g *Gateway) QueryAll(dest interface{}, query string, args ...interface{}) error {
	if err := g.db.Raw(query, args...).Scan(dest).Error; err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	return nil
}

// QueryFirst runs a query and scans the first row into dest. The boolean
// reports whether a row was found.
func (g *Gateway) QueryFirst(dest interface{}, query string, args ...interface{}) (bool, error) {
	tx := g.db.Raw(query, args...).Scan(dest)
	if tx.Error != nil {
		return false, fmt.Errorf("query failed: %w", tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

// Exec runs an insert/update/delete statement.
func (g *Gateway) Exec(query string, args ...interface{}) (ExecResult, error) {
	tx := g.db.Exec(query, args...)
	if tx.Error != nil {
		return ExecResult{}, fmt.Errorf("query failed: %w", tx.Error)
	}
	return ExecResult{RowsAffected: tx.RowsAffected}, nil
}

// InsertReturningID runs an INSERT that ends with a RETURNING id clause
// and returns the generated identity. Both wired drivers support
// RETURNING.
func (g *Gateway) InsertReturningID(query string, args ...interface{}) (int64, error) {
	var id int64
	if err := g.db.Raw(query, args...).Scan(&id).Error; err != nil {
		return 0, fmt.Errorf("query failed: %w", err)
	}
	return id, nil
}
