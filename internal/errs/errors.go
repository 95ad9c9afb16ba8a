// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so a login failure never reveals whether the email is registered.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSelfFollow indicates an attempt to follow one's own account.
	ErrSelfFollow = errors.New("cannot follow yourself")
)

// ConflictError is a unique-constraint violation. Code and Detail carry the
// driver-level constraint information through to the HTTP body.
type ConflictError struct {
	Code       string
	Detail     string
	Constraint string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s (%s)", e.Detail, e.Constraint)
}

// uniqueViolation is the Postgres error code for unique-constraint failures.
const uniqueViolation = "23505"

// Conflict maps a unique violation from the driver to a ConflictError and
// returns every other error unchanged.
func Conflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return &ConflictError{
			Code:       string(pqErr.Code),
			Detail:     pqErr.Detail,
			Constraint: pqErr.Constraint,
		}
	}
	return err
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
