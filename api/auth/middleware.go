// Package auth provides the bearer token middleware guarding owner-only routes.
package auth

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/simplemaze/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextMazeID is the key used to store the maze ID granted by the token in the Gin context.
	ContextMazeID = "mazeID"
)

// Authorize accepts requests carrying an owner token and records the maze it was issued for.
func Authorize(a i.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}

		id, err := a.Verify(strings.TrimSpace(parts[1]), i.ScopeOwner)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(ContextMazeID, id)
		c.Next()
	}
}
