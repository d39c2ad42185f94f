package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront/entity"
	"storefront/pkg/resp"
	"storefront/services"
	"storefront/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// UserResolver loads the account behind a token. It returns
// services.ErrUnauthenticated for users that are gone or deactivated.
type UserResolver interface {
	CurrentUser(ctx context.Context, userID uint) (*entity.User, error)
}

// AuthMiddleware ตรวจ bearer token และเช็คว่า session ยังไม่ถูก revoke.
// Staff rights come from the user row, not from the token claims, so a
// promotion or a deactivation applies to tokens already issued.
func AuthMiddleware(secret string, sessions services.SessionStore, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing or invalid token"})
			return
		}

		claims, err := utils.ParseToken(strings.TrimPrefix(h, "Bearer "), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}

		active, err := sessions.Active(c.Request.Context(), claims.ID)
		if err != nil {
			log.Error().Err(err).Str("sessionId", claims.ID).Msg("session lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "session lookup failed"})
			return
		}
		if !active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "session expired"})
			return
		}

		user, err := users.CurrentUser(c.Request.Context(), claims.UserID)
		if errors.Is(err, services.ErrUnauthenticated) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "account is not active"})
			return
		}
		if err != nil {
			log.Error().Err(err).Uint("userId", claims.UserID).Msg("user lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "user lookup failed"})
			return
		}

		c.Set(utils.CtxUserID, user.ID)
		c.Set(utils.CtxSessionID, claims.ID)
		c.Set(utils.CtxStaff, user.IsStaff)
		c.Next()
	}
}

// StaffOnly must run after AuthMiddleware.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !utils.IsStaff(c) {
			resp.Forbidden(c, "forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}
