package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin vérifie que l'utilisateur a le rôle "ADMIN".
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != "ADMIN" {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admin access required", "error": true, "success": false})
		c.Abort()
		return
	}
	c.Next()
}
