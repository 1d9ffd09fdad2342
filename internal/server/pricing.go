package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pricingdomain "github.com/eventcrew/stagecrew/internal/pricing/domain"
)

func (s *Server) ListPricingTiers(c *gin.Context) {
	tiers, err := s.pricingSvc.ListTiers(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tiers": tiers})
}

func (s *Server) ListTestimonials(c *gin.Context) {
	testimonials, err := s.pricingSvc.ListTestimonials(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"testimonials": testimonials})
}

func (s *Server) ListPricingFAQs(c *gin.Context) {
	faqs, err := s.pricingSvc.ListFAQs(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"faqs": faqs})
}

func (s *Server) CreatePricingTier(c *gin.Context) {
	var req pricingdomain.TierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	tier, err := s.pricingSvc.CreateTier(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tier)
}

func (s *Server) UpdatePricingTier(c *gin.Context) {
	var req pricingdomain.TierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	tier, err := s.pricingSvc.UpdateTier(c.Request.Context(), pricingdomain.TierCode(c.Param("code")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, tier)
}
