package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	onboardingdomain "github.com/eventcrew/stagecrew/internal/onboarding/domain"
	profiledomain "github.com/eventcrew/stagecrew/internal/profile/domain"
)

type OnboardingRoleRequest struct {
	Role string `json:"role"`
}

type OnboardingPhotoRequest struct {
	PhotoURL string `json:"photo_url"`
}

// OnboardingSessionResponse pairs the wizard state with the stepper
// position so the client renders both from one round trip.
type OnboardingSessionResponse struct {
	*onboardingdomain.Session
	Progress onboardingdomain.Progress `json:"progress"`
}

func sessionResponse(sess *onboardingdomain.Session) OnboardingSessionResponse {
	return OnboardingSessionResponse{
		Session:  sess,
		Progress: onboardingdomain.DisplayProgress(sess.CurrentStep, sess.IsTeamMember),
	}
}

func (s *Server) OnboardingSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	sess, err := s.onboardingSvc.StartSession(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse(sess))
}

func (s *Server) OnboardingProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	progress, err := s.onboardingSvc.Progress(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

func (s *Server) OnboardingStep1(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req onboardingdomain.PersonalInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	sess, err := s.onboardingSvc.CompleteStep1(c.Request.Context(), userID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse(sess))
}

func (s *Server) OnboardingStep2(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req OnboardingRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	sess, err := s.onboardingSvc.CompleteStep2(c.Request.Context(), userID, profiledomain.RoleType(req.Role))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse(sess))
}

func (s *Server) OnboardingStep3(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req onboardingdomain.BusinessInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	sess, err := s.onboardingSvc.CompleteStep3(c.Request.Context(), userID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse(sess))
}

func (s *Server) OnboardingPhoto(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req OnboardingPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	sess, err := s.onboardingSvc.SubmitPhoto(c.Request.Context(), userID, req.PhotoURL)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse(sess))
}

func (s *Server) OnboardingBack(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	sess, err := s.onboardingSvc.Back(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse(sess))
}

func (s *Server) OnboardingComplete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	if err := s.onboardingSvc.Complete(c.Request.Context(), userID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"completed": true})
}
