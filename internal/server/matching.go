package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	matchingdomain "github.com/eventcrew/stagecrew/internal/matching/domain"
)

func (s *Server) MatchingContractors(c *gin.Context) {
	contractors, err := s.matchingSvc.Contractors(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contractors": contractors})
}

// MatchingScore builds the handler for one score component endpoint.
// Each component gets its own route so clients can poll them
// independently.
func (s *Server) MatchingScore(component matchingdomain.Component) gin.HandlerFunc {
	return func(c *gin.Context) {
		contractorID := strings.TrimSpace(c.Query("contractor_id"))
		if contractorID == "" {
			AbortWithError(c, newValidationError("contractor_id", "required", "contractor_id is required"))
			return
		}
		eventID := strings.TrimSpace(c.Query("event_id"))

		score, err := s.matchingSvc.ComponentScore(c.Request.Context(), component, contractorID, eventID)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, score)
	}
}

func (s *Server) MatchingRanking(c *gin.Context) {
	eventID := strings.TrimSpace(c.Query("event_id"))
	if eventID == "" {
		AbortWithError(c, newValidationError("event_id", "required", "event_id is required"))
		return
	}

	ranking, err := s.matchingSvc.Ranking(c.Request.Context(), eventID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ranking": ranking})
}

func (s *Server) SubmitMatchingInquiry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req matchingdomain.InquiryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	inquiry, err := s.matchingSvc.SubmitInquiry(c.Request.Context(), userID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, inquiry)
}
