// Package domain holds team membership and invitation types.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Role is the role a member holds on a team.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleAdmin || r == RoleMember
}

// Member links a user to a team owner's account.
type Member struct {
	ID           snowflake.ID  `gorm:"primaryKey" json:"id"`
	OwnerUserID  snowflake.ID  `gorm:"column:owner_user_id;not null;index" json:"owner_user_id"`
	MemberUserID snowflake.ID  `gorm:"column:member_user_id;not null;index" json:"member_user_id"`
	Role         Role          `gorm:"column:role;type:text;not null;default:'member'" json:"role"`
	InvitationID *snowflake.ID `gorm:"column:invitation_id" json:"invitation_id,omitempty"`
	CreatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Member) TableName() string { return "team_members" }

// Invitation is a pending invite to join a team.
type Invitation struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	OwnerUserID snowflake.ID `gorm:"column:owner_user_id;not null;index" json:"owner_user_id"`
	Email       string       `gorm:"column:email;type:text;not null" json:"email"`
	Role        Role         `gorm:"column:role;type:text;not null;default:'member'" json:"role"`
	Code        string       `gorm:"column:code;type:text;not null;uniqueIndex" json:"-"`
	ExpiresAt   time.Time    `gorm:"column:expires_at;not null;index" json:"expires_at"`
	AcceptedAt  *time.Time   `gorm:"column:accepted_at" json:"accepted_at,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Invitation) TableName() string { return "team_invitations" }
