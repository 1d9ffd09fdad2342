package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// InviteInput is one requested invitation.
type InviteInput struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Service exposes team membership and invitation operations.
type Service interface {
	// IsTeamMember reports whether the user joined a team via
	// invitation. It is the server-side source for the onboarding
	// membership policy.
	IsTeamMember(ctx context.Context, userID snowflake.ID) (bool, error)

	InviteMembers(ctx context.Context, ownerUserID snowflake.ID, invites []InviteInput) ([]Invitation, error)
	AcceptInvite(ctx context.Context, userID snowflake.ID, code string) (*Member, error)
	ListMembers(ctx context.Context, ownerUserID snowflake.ID) ([]Member, error)
	RemoveMember(ctx context.Context, ownerUserID, memberID snowflake.ID) error
	PruneExpiredInvitations(ctx context.Context) (int64, error)
}
