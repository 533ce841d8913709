package models

import "errors"

// Domain errors that can be returned by repositories
var (
	// ErrNotFound indicates the requested entity was not found
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the row was modified concurrently, a lock could not be
	// acquired, or the unit of work is no longer active
	ErrConflict = errors.New("conflict")

	// ErrInvalidReference indicates a foreign key points at a row that does not exist
	ErrInvalidReference = errors.New("invalid reference")

	// ErrConstraint indicates a check constraint rejected the write
	ErrConstraint = errors.New("constraint violation")
)
