package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edudz/platform-service/internal/models"
	"github.com/edudz/platform-service/internal/repositories"
)

// IdentityMiddleware resolves the caller from the X-User-ID header and
// stores the id and role in the request context. Upstream infrastructure
// is expected to authenticate the caller and set the header; this service
// only resolves it against the identity store.
type IdentityMiddleware struct {
	users repositories.UserRepository
}

func NewIdentityMiddleware(users repositories.UserRepository) *IdentityMiddleware {
	return &IdentityMiddleware{users: users}
}

func (m *IdentityMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Missing X-User-ID header",
			})
			return
		}

		user, err := m.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
					Message: "Unknown user",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
				Message: "Internal server error",
			})
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user_role", user.Role)
		c.Next()
	}
}

// RequireRoleMiddleware rejects callers whose role is not in the allowed
// set. Must run after AuthMiddleware.
func (m *IdentityMiddleware) RequireRoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("user_role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "User not authenticated",
			})
			return
		}

		role := roleValue.(models.UserRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Message: "Insufficient role",
		})
	}
}
