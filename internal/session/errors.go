package session

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOrExpiredSession = errors.New("invalid or expired session")
	ErrMalformedSession        = errors.New("malformed session")
	ErrStoreUnavailable        = errors.New("session store unavailable")
	// ErrNotFound is returned by Store.Get when the key does not exist.
	ErrNotFound = errors.New("key not found")
)

// unavailable tags err as a store outage while keeping it inspectable.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
