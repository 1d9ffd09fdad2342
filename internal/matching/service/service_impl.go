package service

import (
	"context"
	"net/url"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"github.com/eventcrew/stagecrew/internal/cache"
	"github.com/eventcrew/stagecrew/internal/clock"
	"github.com/eventcrew/stagecrew/internal/matching/domain"
	"github.com/eventcrew/stagecrew/internal/observability/metrics"
	"github.com/eventcrew/stagecrew/internal/ratelimit"
)

const (
	badgeHighThreshold   = 0.8
	badgeMediumThreshold = 0.6
)

type service struct {
	engine  domain.Engine
	repo    domain.Repository
	scores  cache.MatchScoreCache
	limiter *ratelimit.InquiryLimiter
	node    *snowflake.Node
	metrics *metrics.Metrics
	clock   clock.Clock
	log     *zap.Logger
}

// New constructs the matching display service.
func New(
	engine domain.Engine,
	repo domain.Repository,
	scores cache.MatchScoreCache,
	limiter *ratelimit.InquiryLimiter,
	node *snowflake.Node,
	m *metrics.Metrics,
	clk clock.Clock,
	log *zap.Logger,
) domain.Service {
	return &service{
		engine:  engine,
		repo:    repo,
		scores:  scores,
		limiter: limiter,
		node:    node,
		metrics: m,
		clock:   clk,
		log:     log.Named("matching.service"),
	}
}

func (s *service) Contractors(ctx context.Context, query url.Values) ([]domain.Contractor, error) {
	contractors, err := s.engine.Contractors(ctx, query)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordMatchingLookup(ctx, "contractors", false)
	return contractors, nil
}

func (s *service) ComponentScore(ctx context.Context, component domain.Component, contractorID, eventID string) (*domain.Score, error) {
	if !component.Valid() {
		return nil, domain.ErrUnknownComponent
	}

	if value, ok := s.scores.GetScore(string(component), contractorID, eventID); ok {
		s.metrics.RecordMatchingLookup(ctx, string(component), true)
		return s.format(component, contractorID, eventID, value, true), nil
	}

	value, err := s.engine.Score(ctx, component, contractorID, eventID)
	if err != nil {
		return nil, err
	}
	s.scores.SetScore(string(component), contractorID, eventID, value)
	s.metrics.RecordMatchingLookup(ctx, string(component), false)
	return s.format(component, contractorID, eventID, value, false), nil
}

func (s *service) Ranking(ctx context.Context, eventID string) ([]domain.RankingEntry, error) {
	ranking, err := s.engine.Ranking(ctx, eventID)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordMatchingLookup(ctx, "ranking", false)
	return ranking, nil
}

func (s *service) SubmitInquiry(ctx context.Context, userID snowflake.ID, in domain.InquiryInput) (*domain.Inquiry, error) {
	if in.ContractorID == "" {
		return nil, domain.ErrInvalidInquiry
	}

	allowed, err := s.limiter.Allow(ctx, userID)
	if err != nil {
		// Limiter trouble never blocks a legitimate inquiry.
		s.log.Warn("inquiry limiter failed", zap.Error(err))
		allowed = true
	}
	if !allowed {
		s.metrics.RecordRateLimitDenied(ctx, "inquiry", "rate")
		return nil, domain.ErrInquiryRateLimit
	}
	s.metrics.RecordRateLimitAllowed(ctx, "inquiry")

	if err := s.engine.SubmitInquiry(ctx, userID.String(), in); err != nil {
		return nil, err
	}

	inquiry := &domain.Inquiry{
		ID:           s.node.Generate(),
		UserID:       userID,
		ContractorID: in.ContractorID,
		EventID:      in.EventID,
		Message:      in.Message,
		Status:       "sent",
		CreatedAt:    s.clock.Now(),
	}
	if err := s.repo.CreateInquiry(ctx, inquiry); err != nil {
		// The engine accepted the inquiry; a failed local record is
		// logged, not surfaced.
		s.log.Warn("record inquiry", zap.Error(err))
	}

	s.metrics.RecordInquiry(ctx)
	return inquiry, nil
}

func (s *service) format(component domain.Component, contractorID, eventID string, value float64, cached bool) *domain.Score {
	badge := badgeFor(value)
	return &domain.Score{
		Component:      component,
		ContractorID:   contractorID,
		EventID:        eventID,
		Value:          value,
		Badge:          badge,
		Recommendation: recommendationFor(component, badge),
		Cached:         cached,
	}
}

func badgeFor(value float64) domain.BadgeLevel {
	switch {
	case value >= badgeHighThreshold:
		return domain.BadgeHigh
	case value >= badgeMediumThreshold:
		return domain.BadgeMedium
	default:
		return domain.BadgeLow
	}
}

var recommendations = map[domain.Component]map[domain.BadgeLevel]string{
	domain.ComponentCompatibility: {
		domain.BadgeHigh:   "Excellent fit for this event.",
		domain.BadgeMedium: "Good fit, review the details before booking.",
		domain.BadgeLow:    "Weak fit, consider other contractors.",
	},
	domain.ComponentBudget: {
		domain.BadgeHigh:   "Well within your budget.",
		domain.BadgeMedium: "Close to your budget ceiling.",
		domain.BadgeLow:    "Likely over budget for this event.",
	},
	domain.ComponentLocation: {
		domain.BadgeHigh:   "Based in your event's region.",
		domain.BadgeMedium: "Nearby, travel charges may apply.",
		domain.BadgeLow:    "Far from your event's region.",
	},
	domain.ComponentPerformance: {
		domain.BadgeHigh:   "Consistently strong reviews.",
		domain.BadgeMedium: "Mixed reviews, check recent feedback.",
		domain.BadgeLow:    "Limited or weak review history.",
	},
	domain.ComponentAvailability: {
		domain.BadgeHigh:   "Available around your event date.",
		domain.BadgeMedium: "Limited availability, confirm early.",
		domain.BadgeLow:    "Unlikely to be available.",
	},
}

func recommendationFor(component domain.Component, badge domain.BadgeLevel) string {
	if byBadge, ok := recommendations[component]; ok {
		return byBadge[badge]
	}
	return ""
}
