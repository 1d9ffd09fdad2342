package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"

	profiledomain "github.com/eventcrew/stagecrew/internal/profile/domain"
)

// Service orchestrates the onboarding wizard: per-step persistence,
// step sequencing, and the durable navigation state.
type Service interface {
	// StartSession hydrates the wizard: step index from the store,
	// form data from the profile services, and team membership from
	// the membership check reconciled with the cached flag.
	StartSession(ctx context.Context, userID snowflake.ID) (*Session, error)

	// RecordInvitationOrigin seeds the cached membership flag when a
	// team invitation is accepted, so the shortened flow survives a
	// membership-check outage on the member's first wizard load.
	RecordInvitationOrigin(ctx context.Context, userID snowflake.ID)

	CompleteStep1(ctx context.Context, userID snowflake.ID, in PersonalInfo) (*Session, error)
	CompleteStep2(ctx context.Context, userID snowflake.ID, role profiledomain.RoleType) (*Session, error)
	CompleteStep3(ctx context.Context, userID snowflake.ID, in BusinessInfo) (*Session, error)
	SubmitPhoto(ctx context.Context, userID snowflake.ID, photoURL string) (*Session, error)
	Back(ctx context.Context, userID snowflake.ID) (*Session, error)
	Complete(ctx context.Context, userID snowflake.ID) error
	Progress(ctx context.Context, userID snowflake.ID) (Progress, error)
}
