package service

import (
	"context"
	"encoding/json"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/eventcrew/stagecrew/internal/clock"
	"github.com/eventcrew/stagecrew/internal/pricing/domain"
	"github.com/eventcrew/stagecrew/pkg/db"
)

type service struct {
	repo  domain.Repository
	node  *snowflake.Node
	clock clock.Clock
	log   *zap.Logger
}

// New constructs the pricing service.
func New(repo domain.Repository, node *snowflake.Node, clk clock.Clock, log *zap.Logger) domain.Service {
	return &service{
		repo:  repo,
		node:  node,
		clock: clk,
		log:   log.Named("pricing.service"),
	}
}

func (s *service) ListTiers(ctx context.Context) ([]domain.Tier, error) {
	return s.repo.ListTiers(ctx)
}

func (s *service) GetTier(ctx context.Context, code domain.TierCode) (*domain.Tier, error) {
	if !code.Valid() {
		return nil, domain.ErrInvalidTierCode
	}
	return s.repo.FindTierByCode(ctx, code)
}

func (s *service) CreateTier(ctx context.Context, in domain.TierInput) (*domain.Tier, error) {
	if !in.Code.Valid() {
		return nil, domain.ErrInvalidTierCode
	}

	features, err := encodeFeatures(in.Features)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	tier := &domain.Tier{
		ID:                s.node.Generate(),
		Code:              in.Code,
		Name:              in.Name,
		MonthlyPriceCents: in.MonthlyPriceCents,
		AnnualPriceCents:  in.AnnualPriceCents,
		Features:          features,
		Highlight:         in.Highlight,
		SortOrder:         in.SortOrder,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.CreateTier(ctx, tier); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateTier
		}
		return nil, err
	}
	s.log.Info("tier created", zap.String("code", string(tier.Code)))
	return tier, nil
}

func (s *service) UpdateTier(ctx context.Context, code domain.TierCode, in domain.TierInput) (*domain.Tier, error) {
	if !code.Valid() {
		return nil, domain.ErrInvalidTierCode
	}

	features, err := encodeFeatures(in.Features)
	if err != nil {
		return nil, err
	}

	tier := &domain.Tier{
		Code:              code,
		Name:              in.Name,
		MonthlyPriceCents: in.MonthlyPriceCents,
		AnnualPriceCents:  in.AnnualPriceCents,
		Features:          features,
		Highlight:         in.Highlight,
		SortOrder:         in.SortOrder,
		UpdatedAt:         s.clock.Now(),
	}
	if err := s.repo.UpdateTier(ctx, tier); err != nil {
		return nil, err
	}
	return s.repo.FindTierByCode(ctx, code)
}

func (s *service) ListTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	return s.repo.ListTestimonials(ctx)
}

func (s *service) ListFAQs(ctx context.Context) ([]domain.FAQ, error) {
	return s.repo.ListFAQs(ctx)
}

func encodeFeatures(features []string) (datatypes.JSON, error) {
	if features == nil {
		features = []string{}
	}
	raw, err := json.Marshal(features)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
