// Package store persists quotes, orders and rate settings in SQLite.
//
// Every write of a priced record runs derive-then-persist: the derived
// total is recomputed from the record's own fields right before the
// statement executes, so a caller-supplied total never reaches the table.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Simplici0/exportsuite/internal/docno"
)

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint,
	// for example a generated document number that is already taken.
	ErrConflict = errors.New("conflict")
)

// DerivationObserver is notified each time a derived total is recomputed.
type DerivationObserver interface {
	ObserveDerivation(kind string)
}

type noopObserver struct{}

func (noopObserver) ObserveDerivation(string) {}

// Store is the SQLite-backed repository. It is safe for concurrent use;
// concurrent writes to one record are ordered by SQLite and the last
// write's derived value wins.
type Store struct {
	db       *sql.DB
	numbers  *docno.Generator
	observer DerivationObserver
}

// New returns a Store. A nil numbers generator uses docno.New; a nil
// observer discards derivation events.
func New(db *sql.DB, numbers *docno.Generator, observer DerivationObserver) *Store {
	if numbers == nil {
		numbers = docno.New()
	}
	if observer == nil {
		observer = noopObserver{}
	}
	return &Store{db: db, numbers: numbers, observer: observer}
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func writeError(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w: %v", op, ErrConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(se.Error(), "UNIQUE constraint failed")
	}
	return false
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

// parseTimestamp accepts both the driver's time rendering and SQLite's
// CURRENT_TIMESTAMP text.
func parseTimestamp(raw string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
