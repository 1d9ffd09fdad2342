package domain

import (
	"context"
	"net/url"

	"github.com/bwmarrin/snowflake"
)

// Engine is the external scoring engine the client wraps.
type Engine interface {
	Contractors(ctx context.Context, query url.Values) ([]Contractor, error)
	Score(ctx context.Context, component Component, contractorID, eventID string) (float64, error)
	Ranking(ctx context.Context, eventID string) ([]RankingEntry, error)
	SubmitInquiry(ctx context.Context, userID string, in InquiryInput) error
}

// Repository records forwarded inquiries locally.
type Repository interface {
	CreateInquiry(ctx context.Context, inquiry *Inquiry) error
	ListInquiries(ctx context.Context, userID snowflake.ID) ([]Inquiry, error)
}

// Service formats engine results for display and handles inquiry
// submission.
type Service interface {
	Contractors(ctx context.Context, query url.Values) ([]Contractor, error)
	ComponentScore(ctx context.Context, component Component, contractorID, eventID string) (*Score, error)
	Ranking(ctx context.Context, eventID string) ([]RankingEntry, error)
	SubmitInquiry(ctx context.Context, userID snowflake.ID, in InquiryInput) (*Inquiry, error)
}
