package reference

import (
	"context"

	"gorm.io/gorm"

	"github.com/eventcrew/stagecrew/internal/reference/domain"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) ListRegions(ctx context.Context) ([]domain.Region, error) {
	type row struct {
		Code string `gorm:"column:code"`
		Name string `gorm:"column:name"`
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Raw(`SELECT code, name FROM regions ORDER BY sort_order`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	regions := make([]domain.Region, 0, len(rows))
	for _, item := range rows {
		regions = append(regions, domain.Region{
			Code: item.Code,
			Name: item.Name,
		})
	}

	return regions, nil
}

func (r *repository) RegionCodes(ctx context.Context) (map[string]struct{}, error) {
	regions, err := r.ListRegions(ctx)
	if err != nil {
		return nil, err
	}

	codes := make(map[string]struct{}, len(regions))
	for _, region := range regions {
		codes[region.Code] = struct{}{}
	}
	return codes, nil
}
