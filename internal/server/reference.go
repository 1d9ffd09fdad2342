package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListRegions(c *gin.Context) {
	regions, err := s.refrepo.ListRegions(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"regions": regions})
}
