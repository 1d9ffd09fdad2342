package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Repository persists profiles and business profiles.
type Repository interface {
	FindProfile(ctx context.Context, userID snowflake.ID) (*Profile, error)
	UpsertProfile(ctx context.Context, profile *Profile) error
	UpdateRoleType(ctx context.Context, userID snowflake.ID, role RoleType) error
	UpdatePhotoURL(ctx context.Context, userID snowflake.ID, photoURL string) error

	FindBusinessProfile(ctx context.Context, userID snowflake.ID) (*BusinessProfile, error)
	UpsertBusinessProfile(ctx context.Context, profile *BusinessProfile) error
}
