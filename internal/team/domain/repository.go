package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Repository persists team members and invitations.
type Repository interface {
	MemberExists(ctx context.Context, memberUserID snowflake.ID) (bool, error)
	CreateMember(ctx context.Context, member *Member) error
	ListMembers(ctx context.Context, ownerUserID snowflake.ID) ([]Member, error)
	FindMember(ctx context.Context, id snowflake.ID) (*Member, error)
	DeleteMember(ctx context.Context, id snowflake.ID) error

	CreateInvitation(ctx context.Context, invite *Invitation) error
	FindInvitationByCode(ctx context.Context, code string) (*Invitation, error)
	MarkInvitationAccepted(ctx context.Context, id snowflake.ID, at time.Time) error
	DeleteExpiredInvitations(ctx context.Context, before time.Time) (int64, error)
}
