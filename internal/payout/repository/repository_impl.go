package repository

import (
	"context"

	payoutdomain "github.com/smallbiznis/smartcenter/internal/payout/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() payoutdomain.Repository {
	return &repo{}
}

func (r *repo) InsertPayment(ctx context.Context, db *gorm.DB, payment *payoutdomain.Payment) error {
	return db.WithContext(ctx).Create(payment).Error
}

func (r *repo) ListPaymentRows(ctx context.Context, db *gorm.DB) ([]payoutdomain.PaymentRow, error) {
	var rows []payoutdomain.PaymentRow
	err := db.WithContext(ctx).Raw(
		`SELECT p.id AS payment_id,
		        p.merchant_id,
		        p.amount AS service_price,
		        p.payout_method,
		        p.status,
		        p.paid_at,
		        m.id IS NOT NULL AS membership_active,
		        COALESCE(pl.discount_rate, 0) AS discount_rate
		 FROM payments p
		 LEFT JOIN membership_payments m ON m.merchant_id = p.merchant_id AND m.is_active = ?
		 LEFT JOIN membership_plans pl ON pl.id = m.plan_id
		 ORDER BY p.paid_at DESC`,
		true,
	).Scan(&rows).Error
	return rows, err
}
