package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Store key names are a stable contract with existing clients and
// must not be renamed.
const (
	KeyStep               = "event-manager-onboarding-step"
	KeyFromTeamInvitation = "from-team-invitation"
	KeyProfileCompletion  = "profile_completion_status"
	KeyJustCompleted      = "onboarding_just_completed"
)

// Store is the durable per-user key-value store backing wizard
// navigation state. Get returns "" for a missing key.
type Store interface {
	Get(ctx context.Context, userID snowflake.ID, key string) (string, error)
	Set(ctx context.Context, userID snowflake.ID, key, value string) error
	Delete(ctx context.Context, userID snowflake.ID, key string) error
}
