package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/eventcrew/stagecrew/internal/auth"
	authdomain "github.com/eventcrew/stagecrew/internal/auth/domain"
	"github.com/eventcrew/stagecrew/internal/auth/session"
	"github.com/eventcrew/stagecrew/internal/config"
	"github.com/eventcrew/stagecrew/internal/matching"
	matchingdomain "github.com/eventcrew/stagecrew/internal/matching/domain"
	"github.com/eventcrew/stagecrew/internal/observability"
	obsmiddleware "github.com/eventcrew/stagecrew/internal/observability/logger"
	obsmetrics "github.com/eventcrew/stagecrew/internal/observability/metrics"
	obstracing "github.com/eventcrew/stagecrew/internal/observability/tracing"
	"github.com/eventcrew/stagecrew/internal/onboarding"
	onboardingdomain "github.com/eventcrew/stagecrew/internal/onboarding/domain"
	"github.com/eventcrew/stagecrew/internal/pricing"
	pricingdomain "github.com/eventcrew/stagecrew/internal/pricing/domain"
	"github.com/eventcrew/stagecrew/internal/profile"
	profiledomain "github.com/eventcrew/stagecrew/internal/profile/domain"
	"github.com/eventcrew/stagecrew/internal/ratelimit"
	"github.com/eventcrew/stagecrew/internal/reference"
	referencedomain "github.com/eventcrew/stagecrew/internal/reference/domain"
	"github.com/eventcrew/stagecrew/internal/team"
	teamdomain "github.com/eventcrew/stagecrew/internal/team/domain"
)

var Module = fx.Module("http.server",
	config.Module,
	fx.Provide(registerGin),
	auth.Module,
	profile.Module,
	team.Module,
	onboarding.Module,
	matching.Module,
	pricing.Module,
	reference.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	authsvc       authdomain.Service
	sessions      *session.Manager
	onboardingSvc onboardingdomain.Service
	profileSvc    profiledomain.Service
	teamSvc       teamdomain.Service
	matchingSvc   matchingdomain.Service
	pricingSvc    pricingdomain.Service
	refrepo       referencedomain.Repository
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	Authsvc       authdomain.Service
	Sessions      *session.Manager
	OnboardingSvc onboardingdomain.Service
	ProfileSvc    profiledomain.Service
	TeamSvc       teamdomain.Service
	MatchingSvc   matchingdomain.Service
	PricingSvc    pricingdomain.Service
	Refrepo       referencedomain.Repository
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		authsvc:       p.Authsvc,
		sessions:      p.Sessions,
		onboardingSvc: p.OnboardingSvc,
		profileSvc:    p.ProfileSvc,
		teamSvc:       p.TeamSvc,
		matchingSvc:   p.MatchingSvc,
		pricingSvc:    p.PricingSvc,
		refrepo:       p.Refrepo,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/signup", s.Signup)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Reference --------
	api.GET("/reference/regions", s.ListRegions)

	// -------- Pricing (public page) --------
	api.GET("/pricing/tiers", s.ListPricingTiers)
	api.GET("/pricing/testimonials", s.ListTestimonials)
	api.GET("/pricing/faq", s.ListPricingFAQs)
	api.POST("/pricing/tiers", s.AuthRequired(), s.CreatePricingTier)
	api.PUT("/pricing/tiers/:code", s.AuthRequired(), s.UpdatePricingTier)

	// -------- Profiles --------
	api.GET("/user/profile", s.AuthRequired(), s.GetProfile)
	api.PUT("/user/profile", s.AuthRequired(), s.UpdateProfile)
	api.GET("/user/business-profile", s.AuthRequired(), s.GetBusinessProfile)
	api.PUT("/user/business-profile", s.AuthRequired(), s.UpdateBusinessProfile)

	// -------- Onboarding wizard --------
	wizard := api.Group("/onboarding/event-manager", s.AuthRequired())
	{
		wizard.GET("", s.OnboardingSession)
		wizard.GET("/progress", s.OnboardingProgress)
		wizard.POST("/step1", s.OnboardingStep1)
		wizard.POST("/step2", s.OnboardingStep2)
		wizard.POST("/step3", s.OnboardingStep3)
		wizard.POST("/photo", s.OnboardingPhoto)
		wizard.POST("/back", s.OnboardingBack)
		wizard.POST("/complete", s.OnboardingComplete)
	}

	// -------- Team --------
	api.GET("/team-members/check", s.AuthRequired(), s.CheckTeamMembership)
	api.GET("/team-members", s.AuthRequired(), s.ListTeamMembers)
	api.POST("/team-members/invite", s.AuthRequired(), s.InviteTeamMembers)
	api.POST("/team-members/accept/:code", s.AuthRequired(), s.AcceptTeamInvite)
	api.DELETE("/team-members/:id", s.AuthRequired(), s.RemoveTeamMember)

	// -------- Matching (display layer) --------
	match := api.Group("/matching", s.AuthRequired())
	{
		match.GET("/contractors", s.MatchingContractors)
		match.GET("/compatibility", s.MatchingScore(matchingdomain.ComponentCompatibility))
		match.GET("/budget", s.MatchingScore(matchingdomain.ComponentBudget))
		match.GET("/location", s.MatchingScore(matchingdomain.ComponentLocation))
		match.GET("/performance", s.MatchingScore(matchingdomain.ComponentPerformance))
		match.GET("/availability", s.MatchingScore(matchingdomain.ComponentAvailability))
		match.GET("/ranking", s.MatchingRanking)
		match.POST("/inquiry", s.SubmitMatchingInquiry)
	}
}
