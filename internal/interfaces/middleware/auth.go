package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/christoffels/menu/internal/domain/models"
	"github.com/christoffels/menu/pkg/constants"
	"github.com/christoffels/menu/pkg/errors"
	"github.com/gin-gonic/gin"
)

// SessionValidator resolves a bearer token to the session user
type SessionValidator interface {
	ValidateSession(ctx context.Context, tokenString string) (*models.UserSession, error)
}

func abortWithError(c *gin.Context, err error) {
	status := errors.GetHTTPStatus(err)
	resp := errors.ToResponse(err)
	c.AbortWithStatusJSON(status, gin.H{
		constants.ResponseError: resp.Message,
		constants.FieldMessage:  resp.Message,
		"code":                  resp.Code,
		"data":                  nil,
	})
}

func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if authHeader == "" {
		return "", errors.NewUnauthorizedError("No authorization token provided")
	}

	// Extract token (format: "Bearer <token>")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != strings.TrimSpace(constants.BearerPrefix) || strings.TrimSpace(parts[1]) == "" {
		return "", errors.NewUnauthorizedError("Invalid authorization header format")
	}
	return strings.TrimSpace(parts[1]), nil
}

// RequireAuth is a middleware that validates JWT tokens and their session record
func RequireAuth(validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c)
		if err != nil {
			abortWithError(c, err)
			return
		}

		user, err := validator.ValidateSession(c.Request.Context(), tokenString)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Set(constants.ContextKeyToken, tokenString)
		c.Next()
	}
}

// OptionalAuth attaches the session user when a valid token is present.
// Missing, malformed, expired or revoked tokens continue as anonymous.
func OptionalAuth(validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(constants.HeaderAuthorization) == "" {
			c.Next()
			return
		}

		tokenString, err := bearerToken(c)
		if err != nil {
			c.Next()
			return
		}
		user, err := validator.ValidateSession(c.Request.Context(), tokenString)
		if err != nil {
			c.Next()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Set(constants.ContextKeyToken, tokenString)
		c.Next()
	}
}

// RequireRole allows the request only when the session user has one of the roles
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(constants.ContextKeyUser)
		user, ok := value.(*models.UserSession)
		if !exists || !ok || user == nil {
			abortWithError(c, errors.NewUnauthorizedError("User not authenticated"))
			return
		}

		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}

		abortWithError(c, errors.NewPermissionError("access", c.FullPath(), string(user.Role)))
	}
}

// RequireOwner checks if the user is the restaurant owner
func RequireOwner() gin.HandlerFunc {
	return RequireRole(models.RoleOwner)
}

// Cors allows browser clients on the configured origins; an empty list allows any origin
func Cors(origins ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = true
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (len(allowed) == 0 || allowed[origin]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
