package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	teamdomain "github.com/eventcrew/stagecrew/internal/team/domain"
)

type InviteRequest struct {
	Invites []teamdomain.InviteInput `json:"invites"`
}

func (s *Server) CheckTeamMembership(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	isMember, err := s.teamSvc.IsTeamMember(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"isTeamMember": isMember})
}

func (s *Server) ListTeamMembers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	members, err := s.teamSvc.ListMembers(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (s *Server) InviteTeamMembers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if len(req.Invites) == 0 {
		AbortWithError(c, newValidationError("invites", "required", "at least one invite is required"))
		return
	}

	invitations, err := s.teamSvc.InviteMembers(c.Request.Context(), userID, req.Invites)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"invitations": invitations})
}

func (s *Server) AcceptTeamInvite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	member, err := s.teamSvc.AcceptInvite(c.Request.Context(), userID, c.Param("code"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// The wizard's cached membership flag is seeded here, at the
	// invitation origin, not on the first successful membership check.
	s.onboardingSvc.RecordInvitationOrigin(c.Request.Context(), userID)

	c.JSON(http.StatusOK, member)
}

func (s *Server) RemoveTeamMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	memberID, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid member id"))
		return
	}

	if err := s.teamSvc.RemoveMember(c.Request.Context(), userID, memberID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
