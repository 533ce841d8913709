package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/messhub/ledger/internal/models"
)

// classify maps driver-specific failures onto the domain errors in models so
// callers can use errors.Is without knowing which database is underneath.
// The original error stays in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "serialization_failure", "deadlock_detected", "lock_not_available":
			return fmt.Errorf("%w: %w", models.ErrConflict, err)
		case "foreign_key_violation":
			return fmt.Errorf("%w: %w", models.ErrInvalidReference, err)
		case "check_violation", "unique_violation", "not_null_violation":
			return fmt.Errorf("%w: %w", models.ErrConstraint, err)
		}
		return err
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		switch {
		case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %w", models.ErrInvalidReference, err)
		case code&0xff == sqlite3.SQLITE_CONSTRAINT:
			return fmt.Errorf("%w: %w", models.ErrConstraint, err)
		case code&0xff == sqlite3.SQLITE_BUSY, code&0xff == sqlite3.SQLITE_LOCKED:
			return fmt.Errorf("%w: %w", models.ErrConflict, err)
		}
	}

	return err
}
