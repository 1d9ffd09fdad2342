package domain

import "errors"

var (
	ErrMemberNotFound     = errors.New("team member not found")
	ErrInviteNotFound     = errors.New("invitation not found")
	ErrInviteExpired      = errors.New("invitation expired")
	ErrInviteUsed         = errors.New("invitation already accepted")
	ErrAlreadyMember      = errors.New("already a team member")
	ErrInvalidRole        = errors.New("invalid team role")
	ErrInvalidInviteEmail = errors.New("invalid invitation email")
	ErrForbidden          = errors.New("not allowed to manage this team")
)
