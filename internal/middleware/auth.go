package middleware

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/auth"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/constants"
	apierrors "github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/errors"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/observability"
)

// RequireAuth resolves the bearer token and stores the caller identity in
// the context. Every failure gets the same 401; the reason is only logged.
func RequireAuth(resolver *auth.Resolver, logger *slog.Logger, prom *observability.Prom) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := resolver.Resolve(c.GetHeader("Authorization"))
		if err != nil {
			reason := FailureReason(err)
			prom.AuthFailure(reason)
			logger.InfoContext(c.Request.Context(), "authentication rejected",
				slog.String("reason", reason),
				slog.String("request_id", c.GetString(constants.ContextKeyRequestID)),
			)
			apierrors.Unauthorized(c, "")
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, identity.UserID)
		c.Set(constants.ContextKeyUserEmail, identity.Email)
		c.Next()
	}
}

// FailureReason maps an auth error to a metric label.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return observability.ReasonTokenExpired
	case errors.Is(err, auth.ErrInvalidSignature):
		return observability.ReasonInvalidSignature
	case errors.Is(err, auth.ErrMalformedToken):
		return observability.ReasonMalformedToken
	case errors.Is(err, auth.ErrForbidden):
		return observability.ReasonForbidden
	default:
		return observability.ReasonMissingCredentials
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, v != 0
	case uint:
		return uint64(v), v != 0
	default:
		return 0, false
	}
}
