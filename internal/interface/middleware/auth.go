package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-event-management/pkg/helpers"
	"github.com/oksasatya/go-ddd-event-management/pkg/response"
)

// Auth validates the access token taken from the Authorization bearer header,
// falling back to the access_token cookie. When rdb is non-nil the token must
// also match the user's active Redis session.
// It sets userID (int64) and sessionID in the Gin context on success.
func Auth(jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		uid, _ := claims.UserID()

		if rdb != nil {
			s, found, err := helpers.LoadSession(c.Request.Context(), rdb, uid)
			if err != nil {
				helpers.LogError(logger, "load session failed", err, logrus.Fields{
					"request_id": c.GetString(CtxRequestIDKey),
					"user_id":    uid,
				})
				response.Abort(c, http.StatusInternalServerError, "session lookup failed", response.InternalError)
				return
			}
			if !found || s.SessionID != claims.SessionID {
				response.Abort(c, http.StatusUnauthorized, "session not found", nil)
				return
			}
		}

		c.Set(CtxUserIDKey, uid)
		c.Set(CtxSessionIDKey, claims.SessionID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, tok, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
		return ""
	}
	if tok, err := c.Cookie(helpers.AccessTokenCookie); err == nil {
		return tok
	}
	return ""
}
