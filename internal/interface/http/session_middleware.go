package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Hitarth-ai/ZodiAI/internal/domain/chat"
	apperrors "github.com/Hitarth-ai/ZodiAI/pkg/errors"
)

const sessionIDKey = "zodiai.sessionID"

func sessionMiddleware(svc chat.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing authorization header", nil))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "invalid authorization header", nil))
			return
		}
		token := strings.TrimSpace(parts[1])
		id, err := svc.Validate(c.Request.Context(), token)
		if err != nil {
			status := http.StatusForbidden
			code := "invalid_token"
			if !apperrors.IsCode(err, "invalid_token") {
				status = http.StatusInternalServerError
				code = "session_failed"
			}
			abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
			return
		}
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	if v, ok := c.Get(sessionIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
