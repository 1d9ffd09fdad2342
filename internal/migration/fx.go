package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	authdomain "github.com/eventcrew/stagecrew/internal/auth/domain"
	"github.com/eventcrew/stagecrew/internal/config"
	matchingdomain "github.com/eventcrew/stagecrew/internal/matching/domain"
	pricingdomain "github.com/eventcrew/stagecrew/internal/pricing/domain"
	profiledomain "github.com/eventcrew/stagecrew/internal/profile/domain"
	"github.com/eventcrew/stagecrew/internal/seed"
	teamdomain "github.com/eventcrew/stagecrew/internal/team/domain"
)

var Module = fx.Module("migrations",
	fx.Invoke(Apply),
)

// Apply brings the schema up to date and seeds reference data.
// Postgres runs the embedded SQL migration set; sqlite and mysql
// deployments AutoMigrate the models instead.
func Apply(conn *gorm.DB, cfg config.Config) error {
	if cfg.DBType == "postgres" {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := RunMigrations(sqlDB); err != nil {
			return err
		}
	} else {
		if err := conn.AutoMigrate(models()...); err != nil {
			return err
		}
		if err := seed.EnsureRegions(conn); err != nil {
			return err
		}
	}

	return seed.EnsurePricingDefaults(conn)
}

func models() []any {
	return []any{
		&authdomain.User{},
		&authdomain.Session{},
		&profiledomain.Profile{},
		&profiledomain.BusinessProfile{},
		&teamdomain.Member{},
		&teamdomain.Invitation{},
		&pricingdomain.Tier{},
		&pricingdomain.Testimonial{},
		&pricingdomain.FAQ{},
		&matchingdomain.Inquiry{},
		&seed.Region{},
	}
}
