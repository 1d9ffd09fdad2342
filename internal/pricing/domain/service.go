package domain

import "context"

// TierInput carries the editable tier fields for admin writes.
type TierInput struct {
	Code              TierCode `json:"code"`
	Name              string   `json:"name"`
	MonthlyPriceCents int64    `json:"monthly_price_cents"`
	AnnualPriceCents  int64    `json:"annual_price_cents"`
	Features          []string `json:"features"`
	Highlight         bool     `json:"highlight"`
	SortOrder         int      `json:"sort_order"`
}

// Service exposes pricing page reads and admin tier writes.
type Service interface {
	ListTiers(ctx context.Context) ([]Tier, error)
	GetTier(ctx context.Context, code TierCode) (*Tier, error)
	CreateTier(ctx context.Context, in TierInput) (*Tier, error)
	UpdateTier(ctx context.Context, code TierCode, in TierInput) (*Tier, error)

	ListTestimonials(ctx context.Context) ([]Testimonial, error)
	ListFAQs(ctx context.Context) ([]FAQ, error)
}
