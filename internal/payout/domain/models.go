// Package domain contains the payment records and the computed payout
// view the reporting endpoint serves.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Payment is a customer payment against a merchant service; payout
// aggregation reports over these rows.
type Payment struct {
	ID           snowflake.ID    `json:"id" gorm:"primaryKey"`
	MerchantID   snowflake.ID    `json:"merchant_id" gorm:"not null;index"`
	ServiceID    snowflake.ID    `json:"service_id" gorm:"not null;index"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:numeric;not null"`
	PayoutMethod string          `json:"payout_method" gorm:"type:text;not null"`
	Status       PaymentStatus   `json:"status" gorm:"type:text;not null"`
	PaidAt       time.Time       `json:"paid_at" gorm:"not null;index"`
	CreatedAt    time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "payments" }

// PaymentRow is the typed result of the aggregation join; it replaces the
// legacy stored procedure's positional column reads.
type PaymentRow struct {
	PaymentID        snowflake.ID    `gorm:"column:payment_id"`
	MerchantID       snowflake.ID    `gorm:"column:merchant_id"`
	ServicePrice     decimal.Decimal `gorm:"column:service_price"`
	PayoutMethod     string          `gorm:"column:payout_method"`
	Status           string          `gorm:"column:status"`
	PaidAt           time.Time       `gorm:"column:paid_at"`
	MembershipActive bool            `gorm:"column:membership_active"`
	DiscountRate     decimal.Decimal `gorm:"column:discount_rate"`
}

// TransactionView is one payout report line. DiscountRate is surfaced
// only while a membership is active; it does not participate in the
// FinalPayout formula.
type TransactionView struct {
	PaymentID        string          `json:"payment_id"`
	MerchantID       string          `json:"merchant_id"`
	ServicePrice     decimal.Decimal `json:"service_price"`
	PayoutMethod     string          `json:"payout_method"`
	Status           string          `json:"status"`
	MembershipActive bool            `json:"membership_active"`
	DiscountRate     decimal.Decimal `json:"discount_rate"`
	Commission       decimal.Decimal `json:"commission"`
	FinalPayout      decimal.Decimal `json:"final_payout"`
	PaidAt           time.Time       `json:"paid_at"`
}
