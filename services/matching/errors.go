package matching

import "errors"

var (
	// ErrMatchNotFound covers a missing match, a caller who is not a
	// participant and a match that is no longer pending. Callers must not be
	// able to tell these apart.
	ErrMatchNotFound = errors.New("match not found or already processed")

	// ErrInvalidUser is returned for non-positive user ids.
	ErrInvalidUser = errors.New("invalid user id")
)
