package resumes

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a resume or its stored file was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden indicates the resume belongs to another user.
	ErrForbidden = errors.New("forbidden")
)

// PersistenceError reports that a rendered document could not be stored.
// The document itself is still valid and is returned to the caller.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist resume (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
