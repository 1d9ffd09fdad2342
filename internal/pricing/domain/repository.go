package domain

import "context"

// Repository persists pricing page content.
type Repository interface {
	ListTiers(ctx context.Context) ([]Tier, error)
	FindTierByCode(ctx context.Context, code TierCode) (*Tier, error)
	CreateTier(ctx context.Context, tier *Tier) error
	UpdateTier(ctx context.Context, tier *Tier) error

	ListTestimonials(ctx context.Context) ([]Testimonial, error)
	ListFAQs(ctx context.Context) ([]FAQ, error)
}
