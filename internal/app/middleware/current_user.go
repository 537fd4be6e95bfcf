package middleware

import (
	"errors"

	"crm/internal/app/role"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

var ErrNotAuthenticated = errors.New("user not authenticated")

func setUser(c *gin.Context, userID uint, userRole role.Role) {
	c.Set(userIDKey, userID)
	c.Set(userRoleKey, userRole)
}

// CurrentUser возвращает пользователя, сохранённого WithAuthCheck
func CurrentUser(c *gin.Context) (uint, role.Role, error) {
	raw, exists := c.Get(userIDKey)
	if !exists {
		return 0, role.Viewer, ErrNotAuthenticated
	}
	userID, ok := raw.(uint)
	if !ok || userID == 0 {
		return 0, role.Viewer, ErrNotAuthenticated
	}

	userRole, _ := c.Get(userRoleKey)
	r, _ := userRole.(role.Role)
	return userID, r, nil
}
