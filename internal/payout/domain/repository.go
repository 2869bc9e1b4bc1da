package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	InsertPayment(ctx context.Context, db *gorm.DB, payment *Payment) error
	// ListPaymentRows joins payments with active memberships and their
	// plans, newest payment first.
	ListPaymentRows(ctx context.Context, db *gorm.DB) ([]PaymentRow, error)
}
