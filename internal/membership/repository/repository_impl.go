package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	membershipdomain "github.com/smallbiznis/smartcenter/internal/membership/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() membershipdomain.Repository {
	return &repo{}
}

func (r *repo) InsertPlan(ctx context.Context, db *gorm.DB, plan *membershipdomain.MembershipPlan) error {
	return db.WithContext(ctx).Create(plan).Error
}

func (r *repo) FindPlanByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*membershipdomain.MembershipPlan, error) {
	var plan membershipdomain.MembershipPlan
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, price, duration, discount_rate, services_limit, staff_limit,
		 metadata, created_at, updated_at FROM membership_plans WHERE id = ?`,
		id,
	).Scan(&plan).Error
	if err != nil {
		return nil, err
	}
	if plan.ID == 0 {
		return nil, nil
	}
	return &plan, nil
}

func (r *repo) ListPlans(ctx context.Context, db *gorm.DB) ([]membershipdomain.MembershipPlan, error) {
	var plans []membershipdomain.MembershipPlan
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, price, duration, discount_rate, services_limit, staff_limit,
		 metadata, created_at, updated_at FROM membership_plans ORDER BY created_at DESC`,
	).Scan(&plans).Error
	return plans, err
}

func (r *repo) ReplacePlanSlabs(ctx context.Context, db *gorm.DB, planID snowflake.ID, slabIDs []snowflake.ID) error {
	if err := db.WithContext(ctx).Exec(
		`DELETE FROM membership_plan_slabs WHERE plan_id = ?`, planID,
	).Error; err != nil {
		return err
	}
	for _, slabID := range slabIDs {
		if err := db.WithContext(ctx).Exec(
			`INSERT INTO membership_plan_slabs (plan_id, slab_id) VALUES (?, ?)`,
			planID, slabID,
		).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) ListPlanSlabIDs(ctx context.Context, db *gorm.DB, planID snowflake.ID) ([]snowflake.ID, error) {
	var ids []snowflake.ID
	err := db.WithContext(ctx).Raw(
		`SELECT slab_id FROM membership_plan_slabs WHERE plan_id = ?`, planID,
	).Scan(&ids).Error
	return ids, err
}

func (r *repo) InsertPayment(ctx context.Context, db *gorm.DB, payment *membershipdomain.MembershipPayment) error {
	return db.WithContext(ctx).Create(payment).Error
}

func (r *repo) DeactivateByMerchant(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE membership_payments SET is_active = ? WHERE merchant_id = ? AND is_active = ?`,
		false, merchantID, true,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) FindActiveByMerchant(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) (*membershipdomain.MembershipPayment, error) {
	var payment membershipdomain.MembershipPayment
	err := db.WithContext(ctx).Raw(
		`SELECT id, merchant_id, plan_id, amount, is_active, paid_at, created_at
		 FROM membership_payments WHERE merchant_id = ? AND is_active = ?
		 ORDER BY paid_at DESC LIMIT 1`,
		merchantID, true,
	).Scan(&payment).Error
	if err != nil {
		return nil, err
	}
	if payment.ID == 0 {
		return nil, nil
	}
	return &payment, nil
}
