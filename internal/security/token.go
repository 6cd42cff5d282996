package security

import "github.com/google/uuid"

// NewSessionToken returns an opaque random session token (UUIDv4, 122 random
// bits). Tokens are looked up server-side and carry no claims.
func NewSessionToken() string {
	return uuid.NewString()
}
