package models

import (
	"errors"
	"fmt"
)

// Engine error taxonomy. Controllers translate these to HTTP statuses;
// everything except ErrConflict is terminal for the request.
var (
	// ErrAccessDenied: entitlement insufficient for the requested content,
	// or the content itself is not published for this caller.
	ErrAccessDenied = errors.New("access denied")

	// ErrForbidden: capability check failed for an administrative operation.
	ErrForbidden = errors.New("forbidden")

	// ErrEnrollmentRequired: completion recorded for a course the caller has
	// no entitlement to, so no enrollment can be created implicitly. It is a
	// refinement of ErrAccessDenied and matches it under errors.Is.
	ErrEnrollmentRequired = fmt.Errorf("%w: enrollment required", ErrAccessDenied)

	// ErrNotFound: referenced course/module/lesson/user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidOrder: reorder target index out of range.
	ErrInvalidOrder = errors.New("invalid order index")

	// ErrConflict: concurrent mutation detected; the caller should retry.
	ErrConflict = errors.New("conflict, retry")
)
