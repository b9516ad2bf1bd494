package middleware

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-list-api/internal/constants"
	apierrors "github.com/yukikurage/task-list-api/internal/errors"
	"github.com/yukikurage/task-list-api/internal/token"
)

// TokenVerifier returns the subject of a valid bearer token
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// RequireAuth checks the bearer token and stores its subject in the context
func RequireAuth(verifier TokenVerifier, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		email, err := verifier.Verify(raw)
		if err != nil {
			reason := "invalid"
			if errors.Is(err, token.ErrTokenExpired) {
				reason = "expired"
			}
			logger.InfoContext(c.Request.Context(), "rejected bearer token",
				"reason", reason,
				"path", c.FullPath(),
				"error", err,
			)
			apierrors.Unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(constants.ContextKeyUserEmail, email)
		c.Next()
	}
}

// GetUserEmail retrieves the authenticated user's email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email := c.GetString(constants.ContextKeyUserEmail)
	return email, email != ""
}

func bearerToken(header string) (string, bool) {
	scheme, value, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}
