package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/eventcrew/stagecrew/internal/team/domain"
)

type repo struct {
	db *gorm.DB
}

// New returns a gorm-backed team repository.
func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) MemberExists(ctx context.Context, memberUserID snowflake.ID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Member{}).
		Where("member_user_id = ?", memberUserID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) CreateMember(ctx context.Context, member *domain.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *repo) ListMembers(ctx context.Context, ownerUserID snowflake.ID) ([]domain.Member, error) {
	var members []domain.Member
	err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *repo) FindMember(ctx context.Context, id snowflake.ID) (*domain.Member, error) {
	var member domain.Member
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *repo) DeleteMember(ctx context.Context, id snowflake.ID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Member{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

func (r *repo) CreateInvitation(ctx context.Context, invite *domain.Invitation) error {
	return r.db.WithContext(ctx).Create(invite).Error
}

func (r *repo) FindInvitationByCode(ctx context.Context, code string) (*domain.Invitation, error) {
	var invite domain.Invitation
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&invite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInviteNotFound
		}
		return nil, err
	}
	return &invite, nil
}

func (r *repo) MarkInvitationAccepted(ctx context.Context, id snowflake.ID, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&domain.Invitation{}).
		Where("id = ? AND accepted_at IS NULL", id).
		Update("accepted_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInviteUsed
	}
	return nil
}

func (r *repo) DeleteExpiredInvitations(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ? AND accepted_at IS NULL", before).
		Delete(&domain.Invitation{})
	return res.RowsAffected, res.Error
}
