package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	MerchantID    string          `json:"merchant_id"`
	ServiceTypeID string          `json:"service_type_id"`
	Price         decimal.Decimal `json:"price"`
	DeductionType DeductionType   `json:"deduction_type"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*MerchantService, error)
	Get(ctx context.Context, id string) (*MerchantService, error)
	ListByMerchant(ctx context.Context, merchantID string) ([]MerchantService, error)
}

var (
	ErrInvalidMerchant      = errors.New("invalid_merchant")
	ErrInvalidServiceType   = errors.New("invalid_service_type")
	ErrInvalidPrice         = errors.New("invalid_price")
	ErrInvalidDeductionType = errors.New("invalid_deduction_type")
	ErrInvalidID            = errors.New("invalid_id")
	ErrServiceNotFound      = errors.New("service_not_found")
)
