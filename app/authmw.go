package app

import (
	"net/http"
	"strings"

	"library_lending_api/db"
	"library_lending_api/session"

	"github.com/gin-gonic/gin"
)

// BearerToken pulls the token out of the Authorization header.
func BearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func AuthRequired(appSess *session.Store, repo *db.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		sess, err := appSess.Get(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		// 确认用户仍存在（只查一次），删掉悬空会话
		u, err := repo.FindUserByID(c.Request.Context(), sess.UserID)
		if err != nil {
			_ = appSess.Delete(c.Request.Context(), token)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		c.Set("userID", u.ID)
		c.Set("userEmail", u.Email)
		c.Set("sessionToken", token)

		c.Next()
	}
}
