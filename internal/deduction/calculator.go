// Package deduction computes the platform's cut of a merchant service
// when a new payable amount is approved.
package deduction

import (
	"errors"

	"github.com/shopspring/decimal"
	merchantservicedomain "github.com/smallbiznis/smartcenter/internal/merchantservice/domain"
)

var (
	ErrInvalidAmount    = errors.New("invalid_requested_amount")
	ErrZeroServicePrice = errors.New("zero_service_price")
	ErrUnknownType      = errors.New("unknown_deduction_type")
)

// Policy controls the fixed-deduction asymmetry inherited from the legacy
// system: originally only percentage deductions rewrote the admin amount.
// UnifyAdminAmount applies the rewrite to fixed deductions as well.
type Policy struct {
	UnifyAdminAmount bool
}

// Result holds the calculator's outputs. DeductionValue may be negative
// when the requested amount exceeds the listing price; clamping is the
// caller's decision, not the calculator's.
type Result struct {
	AmountPaidToAdmin  int64
	DeductionValue     decimal.Decimal
	MerchantPercentage decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Compute derives the admin amount and deduction value for a requested
// amount against the listing's price, per the listing's deduction type.
func Compute(policy Policy, svc merchantservicedomain.MerchantService, requested decimal.Decimal) (Result, error) {
	if !requested.IsPositive() {
		return Result{}, ErrInvalidAmount
	}

	switch svc.DeductionType {
	case merchantservicedomain.DeductionTypePercentage:
		if svc.Price.IsZero() {
			return Result{}, ErrZeroServicePrice
		}
		return Result{
			AmountPaidToAdmin:  requested.IntPart(),
			DeductionValue:     svc.Price.Sub(requested),
			MerchantPercentage: requested.Div(svc.Price).Mul(hundred),
		}, nil
	case merchantservicedomain.DeductionTypeFixed:
		amountPaidToAdmin := svc.AmountPaidToAdmin
		if policy.UnifyAdminAmount {
			amountPaidToAdmin = requested.IntPart()
		}
		return Result{
			AmountPaidToAdmin: amountPaidToAdmin,
			DeductionValue:    svc.Price.Sub(requested),
		}, nil
	default:
		return Result{}, ErrUnknownType
	}
}
