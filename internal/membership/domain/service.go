package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type CreatePlanRequest struct {
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Duration      PlanDuration    `json:"duration"`
	DiscountRate  decimal.Decimal `json:"discount_rate"`
	ServicesLimit int             `json:"services_limit"`
	StaffLimit    int             `json:"staff_limit"`
	SlabIDs       []string        `json:"slab_ids,omitempty"`
	Metadata      map[string]any  `json:"metadata,omitempty"`
}

type ActivateRequest struct {
	MerchantID string          `json:"merchant_id"`
	PlanID     string          `json:"plan_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// ActiveMembership pairs the active payment row with its plan.
type ActiveMembership struct {
	Payment MembershipPayment `json:"payment"`
	Plan    MembershipPlan    `json:"plan"`
}

type Service interface {
	CreatePlan(ctx context.Context, req CreatePlanRequest) (*MembershipPlan, error)
	GetPlan(ctx context.Context, id string) (*MembershipPlan, error)
	ListPlans(ctx context.Context) ([]MembershipPlan, error)
	AssignSlabs(ctx context.Context, planID string, slabIDs []string) error

	// Activate records a membership payment and makes it the merchant's
	// only active membership, transactionally.
	Activate(ctx context.Context, req ActivateRequest) (*MembershipPayment, error)
	// GetActive returns the merchant's active membership and its plan.
	GetActive(ctx context.Context, merchantID string) (*ActiveMembership, error)
}

var (
	ErrInvalidMerchant      = errors.New("invalid_merchant")
	ErrInvalidPlan          = errors.New("invalid_plan")
	ErrInvalidPlanName      = errors.New("invalid_plan_name")
	ErrInvalidDuration      = errors.New("invalid_duration")
	ErrInvalidAmount        = errors.New("invalid_amount")
	ErrInvalidSlabID        = errors.New("invalid_slab_id")
	ErrPlanNotFound         = errors.New("plan_not_found")
	ErrNoActiveMembership   = errors.New("no_active_membership")
	ErrActivationConflict   = errors.New("membership_activation_conflict")
	ErrActivationInProgress = errors.New("membership_activation_in_progress")
)
