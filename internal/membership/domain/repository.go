package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertPlan(ctx context.Context, db *gorm.DB, plan *MembershipPlan) error
	FindPlanByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*MembershipPlan, error)
	ListPlans(ctx context.Context, db *gorm.DB) ([]MembershipPlan, error)
	ReplacePlanSlabs(ctx context.Context, db *gorm.DB, planID snowflake.ID, slabIDs []snowflake.ID) error
	ListPlanSlabIDs(ctx context.Context, db *gorm.DB, planID snowflake.ID) ([]snowflake.ID, error)

	InsertPayment(ctx context.Context, db *gorm.DB, payment *MembershipPayment) error
	// DeactivateByMerchant clears the active flag on every membership row
	// for the merchant and returns the number of rows touched.
	DeactivateByMerchant(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) (int64, error)
	// FindActiveByMerchant returns the merchant's active membership, most
	// recent payment first if the single-active invariant has been broken.
	FindActiveByMerchant(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) (*MembershipPayment, error)
}
