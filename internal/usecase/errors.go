package usecase

import (
	"errors"
	"fmt"
)

// Error families. Handlers map a family to a status code and the specific
// sentinel to a message.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrDependencyFailure = errors.New("dependency failure")
)

var (
	ErrEmptyTargets       = fmt.Errorf("%w: users array is required and cannot be empty", ErrInvalidInput)
	ErrInvalidTargetID    = fmt.Errorf("%w: invalid user id", ErrInvalidInput)
	ErrSelfHire           = fmt.Errorf("%w: cannot hire yourself", ErrInvalidInput)
	ErrInvalidRequestType = fmt.Errorf("%w: invalid request type", ErrInvalidInput)
	ErrInvalidDecision    = fmt.Errorf("%w: invalid decision", ErrInvalidInput)
	ErrInvalidFilter      = fmt.Errorf("%w: invalid request filter", ErrInvalidInput)
	ErrInvalidSchedule    = fmt.Errorf("%w: invalid schedule", ErrInvalidInput)
	ErrInvalidRole        = fmt.Errorf("%w: invalid role", ErrInvalidInput)
	ErrPasswordTooShort   = fmt.Errorf("%w: password too short", ErrInvalidInput)
	ErrPasswordMismatch   = fmt.Errorf("%w: passwords do not match", ErrInvalidInput)
	ErrInvalidRating      = fmt.Errorf("%w: rating must be a whole number from 1 to 5", ErrInvalidInput)
	ErrSelfReview         = fmt.Errorf("%w: cannot review yourself", ErrInvalidInput)

	ErrProfileNotFound = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrTargetsNotFound = fmt.Errorf("%w: one or more users not found", ErrNotFound)
	ErrRequestNotFound = fmt.Errorf("%w: request not found", ErrNotFound)
	ErrAccountNotFound = fmt.Errorf("%w: account not found", ErrNotFound)
	ErrReviewNotFound  = fmt.Errorf("%w: review not found", ErrNotFound)

	ErrEmailTaken   = fmt.Errorf("%w: email already exists", ErrConflict)
	ErrReviewExists = fmt.Errorf("%w: review already exists", ErrConflict)

	ErrInvalidCredentials  = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrInvalidToken        = fmt.Errorf("%w: invalid access token", ErrUnauthorized)
	ErrTokenExpired        = fmt.Errorf("%w: token expired", ErrUnauthorized)
	ErrInvalidRefreshToken = fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	ErrRefreshTokenExpired = fmt.Errorf("%w: refresh token expired", ErrUnauthorized)

	ErrAccountBlocked = fmt.Errorf("%w: account blocked", ErrForbidden)
)

// dependency marks a storage or infrastructure error.
func dependency(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDependencyFailure, op, err)
}

// invalid wraps a validation error from the domain layer.
func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
