package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-booking/models"
	"restaurant-booking/utils"
)

// RequireRoles aborts unless the authenticated user holds one of the roles.
// Admins pass every check.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		if userRole == models.RoleAdmin {
			c.Next()
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, fmt.Errorf("insufficient permissions"))
		c.Abort()
	}
}
