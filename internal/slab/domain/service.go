package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	Name       string          `json:"name"`
	LowerLimit decimal.Decimal `json:"lower_limit"`
	UpperLimit decimal.Decimal `json:"upper_limit"`
	FixedFee   decimal.Decimal `json:"fixed_fee"`
	Percentage decimal.Decimal `json:"percentage"`
	IsDefault  bool            `json:"is_default"`
	Metadata   map[string]any  `json:"metadata,omitempty"`
}

type UpdateRequest struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	LowerLimit decimal.Decimal `json:"lower_limit"`
	UpperLimit decimal.Decimal `json:"upper_limit"`
	FixedFee   decimal.Decimal `json:"fixed_fee"`
	Percentage decimal.Decimal `json:"percentage"`
	IsDefault  bool            `json:"is_default"`
}

// ResolveRequest selects the slab applicable to Amount. MerchantID is
// optional; when present the merchant's active membership is consulted
// before falling back to default slabs.
type ResolveRequest struct {
	Amount     decimal.Decimal
	MerchantID string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Slab, error)
	Update(ctx context.Context, req UpdateRequest) (*Slab, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Slab, error)
	List(ctx context.Context) ([]Slab, error)

	// ResolveApplicable ignores membership and the default flag: any slab
	// whose band contains the amount qualifies.
	ResolveApplicable(ctx context.Context, amount decimal.Decimal) (*Slab, error)
	// ResolveDefault restricts resolution to default slabs.
	ResolveDefault(ctx context.Context, amount decimal.Decimal) (*Slab, error)
	// ResolveForMerchant applies the membership override policy, falling
	// back to default slabs when no membership slab matches.
	ResolveForMerchant(ctx context.Context, req ResolveRequest) (*Slab, error)
}

var (
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidLimits    = errors.New("invalid_limits")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidMerchant  = errors.New("invalid_merchant")
	ErrNoApplicableSlab = errors.New("no_applicable_slab")
	ErrSlabNotFound     = errors.New("slab_not_found")
)
