package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	MerchantID   string          `json:"merchant_id"`
	ServiceID    string          `json:"service_id"`
	Amount       decimal.Decimal `json:"amount"`
	PayoutMethod string          `json:"payout_method"`
}

type Service interface {
	RecordPayment(ctx context.Context, req RecordPaymentRequest) (*Payment, error)
	// AggregatePayouts computes the payout report. Pure read.
	AggregatePayouts(ctx context.Context) ([]TransactionView, error)
}

var (
	ErrInvalidMerchant     = errors.New("invalid_merchant")
	ErrInvalidService      = errors.New("invalid_service")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInvalidPayoutMethod = errors.New("invalid_payout_method")
)
