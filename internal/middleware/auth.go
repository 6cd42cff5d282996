package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"mtogo/auth/internal/session"
)

const (
	identityKey     = "identity"
	sessionTokenKey = "session_token"
)

type SessionValidator interface {
	Validate(ctx context.Context, token string) (session.Identity, error)
}

// Session requires a valid session cookie and stores the identity it
// vouches for on the context.
func Session(validator SessionValidator, cookie session.CookieOptions, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := session.TokenFromRequest(c.Request, cookie)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Session token is missing"})
			return
		}

		identity, err := validator.Validate(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, session.ErrInvalidOrExpiredSession):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired session"})
			case errors.Is(err, session.ErrMalformedSession):
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid session data"})
			default:
				log.Error().Err(err).Str("correlation_id", GetCorrelationID(c)).Msg("session validation failed")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			}
			return
		}

		c.Set(sessionTokenKey, token)
		c.Set(identityKey, identity)

		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) (session.Identity, bool) {
	val, exists := c.Get(identityKey)
	if !exists {
		return session.Identity{}, false
	}
	identity, ok := val.(session.Identity)
	return identity, ok
}

func CurrentSessionToken(c *gin.Context) string {
	return c.GetString(sessionTokenKey)
}
