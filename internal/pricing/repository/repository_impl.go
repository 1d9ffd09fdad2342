package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/eventcrew/stagecrew/internal/pricing/domain"
)

type repo struct {
	db *gorm.DB
}

// New returns a gorm-backed pricing repository.
func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) ListTiers(ctx context.Context) ([]domain.Tier, error) {
	var tiers []domain.Tier
	err := r.db.WithContext(ctx).Order("sort_order ASC").Find(&tiers).Error
	if err != nil {
		return nil, err
	}
	return tiers, nil
}

func (r *repo) FindTierByCode(ctx context.Context, code domain.TierCode) (*domain.Tier, error) {
	var tier domain.Tier
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&tier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTierNotFound
		}
		return nil, err
	}
	return &tier, nil
}

func (r *repo) CreateTier(ctx context.Context, tier *domain.Tier) error {
	return r.db.WithContext(ctx).Create(tier).Error
}

func (r *repo) UpdateTier(ctx context.Context, tier *domain.Tier) error {
	res := r.db.WithContext(ctx).Model(&domain.Tier{}).
		Where("code = ?", tier.Code).
		Updates(map[string]any{
			"name":                tier.Name,
			"monthly_price_cents": tier.MonthlyPriceCents,
			"annual_price_cents":  tier.AnnualPriceCents,
			"features":            tier.Features,
			"highlight":           tier.Highlight,
			"sort_order":          tier.SortOrder,
			"updated_at":          tier.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTierNotFound
	}
	return nil
}

func (r *repo) ListTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	var rows []domain.Testimonial
	err := r.db.WithContext(ctx).Order("sort_order ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListFAQs(ctx context.Context) ([]domain.FAQ, error) {
	var rows []domain.FAQ
	err := r.db.WithContext(ctx).Order("sort_order ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
