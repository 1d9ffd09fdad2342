package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eventcrew/stagecrew/internal/profile/domain"
)

type repo struct {
	db *gorm.DB
}

// New returns a gorm-backed profile repository.
func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) FindProfile(ctx context.Context, userID snowflake.ID) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *repo) UpsertProfile(ctx context.Context, profile *domain.Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"first_name", "last_name", "phone", "address",
				"linkedin_url", "website_url", "updated_at",
			}),
		}).
		Create(profile).Error
}

func (r *repo) UpdateRoleType(ctx context.Context, userID snowflake.ID, role domain.RoleType) error {
	res := r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("user_id = ?", userID).
		Update("role_type", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repo) UpdatePhotoURL(ctx context.Context, userID snowflake.ID, photoURL string) error {
	res := r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("user_id = ?", userID).
		Update("photo_url", photoURL)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repo) FindBusinessProfile(ctx context.Context, userID snowflake.ID) (*domain.BusinessProfile, error) {
	var profile domain.BusinessProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *repo) UpsertBusinessProfile(ctx context.Context, profile *domain.BusinessProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"company_name", "position", "business_address", "nzbn",
				"description", "service_areas", "social_links", "updated_at",
			}),
		}).
		Create(profile).Error
}
