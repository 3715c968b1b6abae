package middleware

import (
	"strings"

	"github.com/Govind-619/ebook-store/services"
	"github.com/Govind-619/ebook-store/utils"
	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware
const (
	ClaimsKey = "claims"
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// AuthMiddleware validates the bearer token and stores its claims in the
// context. Validation is stateless: the user record is not loaded.
func AuthMiddleware(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.LogDebug("Missing Authorization header on %s", c.Request.URL.Path)
			utils.AbortWithError(c, utils.UnauthenticatedError(utils.ErrUnauthorized, nil))
			return
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			utils.LogDebug("Malformed Authorization header on %s", c.Request.URL.Path)
			utils.AbortWithError(c, utils.UnauthenticatedError(utils.ErrUnauthorized, nil))
			return
		}

		claims, err := auth.Authenticate(tokenString)
		if err != nil {
			utils.LogInfo("Rejected token on %s: %v", c.Request.URL.Path, err)
			utils.AbortWithError(c, err)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole lets the request through only when the token carries exactly role.
// It must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := CurrentClaims(c)
		if err := services.Authorize(claims, role); err != nil {
			if claims != nil {
				utils.LogInfo("User %d with role %s denied %s access to %s", claims.UserID, claims.Role, role, c.Request.URL.Path)
			}
			utils.AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// CurrentClaims returns the claims stored by AuthMiddleware, or nil
func CurrentClaims(c *gin.Context) *services.Claims {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil
	}
	claims, _ := v.(*services.Claims)
	return claims
}

// CurrentUserID returns the authenticated user id, or 0
func CurrentUserID(c *gin.Context) uint {
	if claims := CurrentClaims(c); claims != nil {
		return claims.UserID
	}
	return 0
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
