package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskhub/internal/auth"
	"taskhub/internal/policy"
)

// IdentityKey is the gin context key under which the authenticated
// identity is stored.
const IdentityKey = "identity"

// JWTAuthMiddleware verifies the Bearer token and stores the resulting
// policy.Identity in the request context.
func JWTAuthMiddleware(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		identity, err := authService.ParseToken(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrInvalidClaims) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID in token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// IdentityFrom extracts the identity set by JWTAuthMiddleware.
func IdentityFrom(c *gin.Context) (policy.Identity, bool) {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return policy.Identity{}, false
	}
	identity, ok := value.(policy.Identity)
	return identity, ok
}
