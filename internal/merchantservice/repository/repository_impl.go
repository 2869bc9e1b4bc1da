package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	merchantservicedomain "github.com/smallbiznis/smartcenter/internal/merchantservice/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() merchantservicedomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, svc *merchantservicedomain.MerchantService) error {
	return db.WithContext(ctx).Create(svc).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*merchantservicedomain.MerchantService, error) {
	var svc merchantservicedomain.MerchantService
	err := db.WithContext(ctx).Raw(
		`SELECT id, merchant_id, service_type_id, price, amount_paid_to_admin,
		 deduction_type, deduction_value, created_at, updated_at
		 FROM merchant_services WHERE id = ?`,
		id,
	).Scan(&svc).Error
	if err != nil {
		return nil, err
	}
	if svc.ID == 0 {
		return nil, nil
	}
	return &svc, nil
}

func (r *repo) ListByMerchant(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) ([]merchantservicedomain.MerchantService, error) {
	var svcs []merchantservicedomain.MerchantService
	err := db.WithContext(ctx).Raw(
		`SELECT id, merchant_id, service_type_id, price, amount_paid_to_admin,
		 deduction_type, deduction_value, created_at, updated_at
		 FROM merchant_services WHERE merchant_id = ? ORDER BY created_at DESC`,
		merchantID,
	).Scan(&svcs).Error
	return svcs, err
}

func (r *repo) UpdateDeduction(ctx context.Context, db *gorm.DB, id snowflake.ID, amountPaidToAdmin int64, deductionValue decimal.Decimal, updatedAt time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE merchant_services SET amount_paid_to_admin = ?, deduction_value = ?, updated_at = ?
		 WHERE id = ?`,
		amountPaidToAdmin, deductionValue, updatedAt, id,
	).Error
}
