package server

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// HeaderOwner identifies the acting account owner.
	HeaderOwner = "X-Owner-Id"
	// HeaderAuthorization carries the billing bearer token. The standard
	// Authorization header is accepted as a fallback.
	HeaderAuthorization = "X-Authorization"

	contextOwnerIDKey = "owner_id"
)

// OwnerRequired rejects requests that do not identify an owner.
func OwnerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := strings.TrimSpace(c.GetHeader(HeaderOwner))
		if ownerID == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Set(contextOwnerIDKey, ownerID)
		c.Next()
	}
}

func ownerID(c *gin.Context) string {
	return c.GetString(contextOwnerIDKey)
}

// bearerToken extracts the billing token, tolerating a missing scheme prefix.
func bearerToken(c *gin.Context) string {
	raw := strings.TrimSpace(c.GetHeader(HeaderAuthorization))
	if raw == "" {
		raw = strings.TrimSpace(c.GetHeader("Authorization"))
	}
	if raw == "" {
		return ""
	}
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
