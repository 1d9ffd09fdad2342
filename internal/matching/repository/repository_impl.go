package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/eventcrew/stagecrew/internal/matching/domain"
)

type repo struct {
	db *gorm.DB
}

// New returns a gorm-backed inquiry repository.
func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) CreateInquiry(ctx context.Context, inquiry *domain.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *repo) ListInquiries(ctx context.Context, userID snowflake.ID) ([]domain.Inquiry, error) {
	var inquiries []domain.Inquiry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&inquiries).Error
	if err != nil {
		return nil, err
	}
	return inquiries, nil
}
