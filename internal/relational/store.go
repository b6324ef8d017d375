// Package relational is the typed gateway onto the relational store: users,
// the flight/hotel/car catalog, airports, bookings, booking items, and
// billing transactions. Mutating functions accept an explicit *sql.Tx from
// the caller — nothing in this package opens its own transaction, so the
// booking engine can compose several of these calls into one atomic unit.
package relational

import (
	"github.com/Rajeswari195/kayak/pkg/database"
)

// Store is the shared handle for read-only, non-transactional queries
// (lookups, search, listing). Transactional mutation functions are free
// functions that take a *sql.Tx directly, since they must run inside
// whatever transaction the caller already opened.
type Store struct {
	db *database.DB
}

// NewStore builds a relational gateway over the pooled connection.
func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}
