package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"toyboard/internal/pkg/jwtutil"
	"toyboard/internal/transport/http/response"
)

const (
	ContextMemberIDKey = "member_id"
	ContextUsernameKey = "username"
)

// RevocationChecker reports members whose tokens were revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, memberID uint) (bool, error)
}

// Authenticate identifies the caller when an Authorization header is
// present. Requests without one continue anonymously; a malformed, expired
// or revoked token is rejected. revoked may be nil.
func Authenticate(secret string, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.Next()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.MemberID)
			if err != nil {
				log.Printf("check token revocation for member %d failed: %v", claims.MemberID, err)
				response.Error(c, http.StatusServiceUnavailable, response.CodeUnavailable, "cannot verify token")
				c.Abort()
				return
			}
			if isRevoked {
				response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "token has been revoked")
				c.Abort()
				return
			}
		}

		c.Set(ContextMemberIDKey, claims.MemberID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}

// RequireMember rejects requests that Authenticate left anonymous.
func RequireMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := MemberID(c); !ok {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "missing authorization header")
			c.Abort()
			return
		}
		c.Next()
	}
}

// MemberID returns the authenticated member, if any.
func MemberID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextMemberIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
