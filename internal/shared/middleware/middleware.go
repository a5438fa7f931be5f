package middleware

import (
	"net/http"
	"strings"

	"matchday/internal/auth"
	"matchday/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const callerContextKey = "caller"

// TokenValidator verifies a bearer token and returns its claims
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.JWTClaims, error)
}

// JWTAuth resolves the bearer token into a typed Caller exactly once and
// stores it in the request context. Handlers never see raw claims.
func JWTAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Authorization header is required", nil, nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil, nil)
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid or expired token", nil, nil)
			c.Abort()
			return
		}

		if claims.Type != "access" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid token type", nil, nil)
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid token subject", nil, nil)
			c.Abort()
			return
		}

		c.Set(callerContextKey, auth.Caller{
			UserID:      userID,
			Email:       claims.Email,
			IsOrganizer: claims.IsOrganizer,
		})

		c.Next()
	}
}

// RequireOrganizer rejects callers without the organizer role
func RequireOrganizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := GetCaller(c)
		if !ok {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "caller identity not found in context", nil, nil)
			c.Abort()
			return
		}

		if !caller.IsOrganizer {
			response.RespondJSON(c, "error", http.StatusForbidden, "Access denied, you must be an organizer", nil, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetCaller returns the authenticated caller stored by JWTAuth
func GetCaller(c *gin.Context) (auth.Caller, bool) {
	value, exists := c.Get(callerContextKey)
	if !exists {
		return auth.Caller{}, false
	}
	caller, ok := value.(auth.Caller)
	return caller, ok
}
