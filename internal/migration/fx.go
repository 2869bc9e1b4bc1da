package migration

import (
	amountchangedomain "github.com/smallbiznis/smartcenter/internal/amountchange/domain"
	"github.com/smallbiznis/smartcenter/internal/config"
	membershipdomain "github.com/smallbiznis/smartcenter/internal/membership/domain"
	merchantservicedomain "github.com/smallbiznis/smartcenter/internal/merchantservice/domain"
	notificationdomain "github.com/smallbiznis/smartcenter/internal/notification/domain"
	payoutdomain "github.com/smallbiznis/smartcenter/internal/payout/domain"
	"github.com/smallbiznis/smartcenter/internal/seed"
	slabdomain "github.com/smallbiznis/smartcenter/internal/slab/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// The versioned migrations are written for postgres; other
			// dialects get the schema from the models directly.
			if err := conn.AutoMigrate(
				&slabdomain.Slab{},
				&membershipdomain.MembershipPlan{},
				&membershipdomain.MembershipPlanSlab{},
				&membershipdomain.MembershipPayment{},
				&merchantservicedomain.MerchantService{},
				&amountchangedomain.AmountChangeRequest{},
				&payoutdomain.Payment{},
				&notificationdomain.Notification{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureDefaultSlabs(conn)
	}),
)
