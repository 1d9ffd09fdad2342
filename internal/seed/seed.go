package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	pricingdomain "github.com/eventcrew/stagecrew/internal/pricing/domain"
)

// EnsurePricingDefaults seeds the three subscription tiers the pricing
// page depends on. Existing rows are left untouched.
func EnsurePricingDefaults(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, tier := range defaultTiers(node) {
			var existing pricingdomain.Tier
			err := tx.WithContext(ctx).Where("code = ?", tier.Code).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := tx.WithContext(ctx).Create(&tier).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func defaultTiers(node *snowflake.Node) []pricingdomain.Tier {
	now := time.Now().UTC()
	return []pricingdomain.Tier{
		{
			ID:                node.Generate(),
			Code:              pricingdomain.TierEssential,
			Name:              "Essential",
			MonthlyPriceCents: 0,
			AnnualPriceCents:  0,
			Features:          datatypes.JSON([]byte(`["Business profile listing","Up to 5 inquiries per month","Basic match visibility"]`)),
			SortOrder:         1,
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		{
			ID:                node.Generate(),
			Code:              pricingdomain.TierShowcase,
			Name:              "Showcase",
			MonthlyPriceCents: 4900,
			AnnualPriceCents:  49900,
			Features:          datatypes.JSON([]byte(`["Everything in Essential","Unlimited inquiries","Portfolio gallery","Priority placement in match results"]`)),
			Highlight:         true,
			SortOrder:         2,
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		{
			ID:                node.Generate(),
			Code:              pricingdomain.TierSpotlight,
			Name:              "Spotlight",
			MonthlyPriceCents: 9900,
			AnnualPriceCents:  99900,
			Features:          datatypes.JSON([]byte(`["Everything in Showcase","Featured homepage placement","Dedicated account support","Early access to new regions"]`)),
			SortOrder:         3,
			CreatedAt:         now,
			UpdatedAt:         now,
		},
	}
}
