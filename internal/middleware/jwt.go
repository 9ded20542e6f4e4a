package middleware

import (
	"net/http"
	"os"
	"strings"

	"blinkeyit_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired valide le jeton d'accès (header Authorization Bearer ou
// cookie accessToken) et pose user_id/email/role dans le context Gin.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid Authorization format", "error": true, "success": false})
				c.Abort()
				return
			}
			tokenString = parts[1]
		} else if cookie, err := c.Cookie("accessToken"); err == nil {
			tokenString = cookie
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing token", "error": true, "success": false})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString, os.Getenv("JWT_ACCESS_SECRET"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token", "error": true, "success": false})
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing user_id claim", "error": true, "success": false})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		if email, ok := claims["email"].(string); ok {
			c.Set("email", email)
		}
		if role, ok := claims["role"].(string); ok {
			c.Set("role", role)
		}

		c.Next()
	}
}
