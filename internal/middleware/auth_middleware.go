package middleware

import (
	"net/http"
	"strings"

	"fitnexus_backend/internal/models"
	"fitnexus_backend/internal/repositories"
	"fitnexus_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	CtxUserEmail = "userEmail"
	CtxUserName  = "userName"
	CtxUserRole  = "userRole"
)

// AuthMiddleware verifies the bearer token issued by the identity provider
// and attaches the verified identity to the request context. A missing token
// is 401; a token that fails verification is 403.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Authorization header required", ""))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Invalid authorization header format. Use Bearer <token>", ""))
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
				"Invalid or expired token", err.Error()))
			return
		}

		c.Set(CtxUserEmail, strings.ToLower(claims.Email))
		c.Set(CtxUserName, claims.Name)

		c.Next()
	}
}

// AdminMiddleware loads the caller's stored role and rejects non-admins.
// Runs after AuthMiddleware; the role check is against the users table, not
// the token, so a demotion takes effect immediately.
func AdminMiddleware(userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		emailVal, exists := c.Get(CtxUserEmail)
		if !exists {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Unauthorized - no user email. Ensure AuthMiddleware runs first.", ""))
			return
		}

		role, err := userRepo.GetRoleByEmail(emailVal.(string))
		if err != nil || role != string(models.UserRoleAdmin) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
				"Forbidden - not an admin", ""))
			return
		}

		c.Set(CtxUserRole, role)
		c.Next()
	}
}

// CallerEmail returns the verified email set by AuthMiddleware.
func CallerEmail(c *gin.Context) string {
	if v, ok := c.Get(CtxUserEmail); ok {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}

// CallerIsAdmin reports whether AdminMiddleware already established the admin role.
func CallerIsAdmin(c *gin.Context) bool {
	if v, ok := c.Get(CtxUserRole); ok {
		if role, ok := v.(string); ok {
			return role == string(models.UserRoleAdmin)
		}
	}
	return false
}
