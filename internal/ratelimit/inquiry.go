package ratelimit

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"

	"github.com/eventcrew/stagecrew/internal/config"
)

const keyInquiryUser = "inquiry:user:%s"

// InquiryLimiter throttles contractor inquiry submissions per user.
// When rate limiting is disabled or redis is not configured it fails
// open and allows everything.
type InquiryLimiter struct {
	enabled bool
	bucket  *TokenBucket
	rate    float64
	burst   int
}

func NewInquiryLimiter(cfg config.Config, bucket *TokenBucket) *InquiryLimiter {
	if !cfg.RateLimit.Enabled || bucket == nil {
		return &InquiryLimiter{}
	}
	return &InquiryLimiter{
		enabled: true,
		bucket:  bucket,
		rate:    cfg.RateLimit.InquiryRate,
		burst:   cfg.RateLimit.InquiryBurst,
	}
}

func (l *InquiryLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// Allow reports whether the user may submit another inquiry.
func (l *InquiryLimiter) Allow(ctx context.Context, userID snowflake.ID) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyInquiryUser, userID.String()), l.rate, l.burst)
}
