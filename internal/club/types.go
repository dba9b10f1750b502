package club

import (
	"database/sql"
	"errors"
	"sync"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict is returned when a match was written by someone
	// else since it was read.
	ErrVersionConflict = errors.New("match was modified concurrently")
	// ErrTableTaken is returned when another match is already in progress
	// on the same table.
	ErrTableTaken = errors.New("table already in use")
)

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
