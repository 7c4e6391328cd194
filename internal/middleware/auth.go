package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"budgetmate/internal/model"
	"budgetmate/internal/pkg"
	"budgetmate/internal/service"
)

const identityKey = "identity"

// Authenticator resolves a bearer token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// Auth requires a valid bearer token and stores the caller's Identity.
// errKey is the JSON field errors are reported under ("msg" or "message").
func Auth(authn Authenticator, errKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{errKey: "No token, authorization denied"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{errKey: "Token is not valid"})
			return
		}

		user, err := authn.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(pkg.HTTPStatus(err), gin.H{errKey: pkg.Message(err)})
			return
		}

		c.Set(identityKey, service.Actor{ID: user.ID, Role: user.Role, Name: user.Name})
		c.Next()
	}
}

// Identity returns the caller set by Auth. It panics on routes without Auth.
func Identity(c *gin.Context) service.Actor {
	return c.MustGet(identityKey).(service.Actor)
}
