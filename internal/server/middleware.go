package server

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	"github.com/eventcrew/stagecrew/internal/userctx"
)

const contextUserKey = "current_user"

// AuthRequired resolves the session cookie into an authenticated user and
// stores the user on both the gin context and the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := s.sessions.Token(c)
		if token == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		user, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserKey, user)
		c.Request = c.Request.WithContext(userctx.WithUserID(c.Request.Context(), user.ID))
		c.Next()
	}
}

func currentUserID(c *gin.Context) (snowflake.ID, bool) {
	return userctx.UserIDFromContext(c.Request.Context())
}
