package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type SubmitRequest struct {
	ServiceID       string          `json:"service_id"`
	ProviderID      string          `json:"provider_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
}

type ApproveResponse struct {
	RequestID      string          `json:"request_id"`
	DeductionValue decimal.Decimal `json:"deduction_value"`
}

type Service interface {
	// Submit creates a request in PENDING.
	Submit(ctx context.Context, req SubmitRequest) (*AmountChangeRequest, error)
	Get(ctx context.Context, id string) (*AmountChangeRequest, error)
	ListByProvider(ctx context.Context, providerID string) ([]AmountChangeRequest, error)
	PendingExists(ctx context.Context, serviceID, providerID string) (bool, error)

	// Approve recomputes the service's deduction, marks the request
	// APPROVED and notifies the provider, all in one transaction.
	Approve(ctx context.Context, id string) (*ApproveResponse, error)
	// Reject marks the request REJECTED with a reason and notifies the
	// provider; the service listing is left untouched.
	Reject(ctx context.Context, id string, reason string) error
}

var (
	ErrInvalidService    = errors.New("invalid_service")
	ErrInvalidProvider   = errors.New("invalid_provider")
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrInvalidRequest    = errors.New("invalid_request")
	ErrInvalidReason     = errors.New("invalid_reason")
	ErrRequestNotFound   = errors.New("request_not_found")
	ErrServiceNotFound   = errors.New("service_not_found")
	ErrRequestNotPending = errors.New("request_not_pending")
	ErrZeroServicePrice  = errors.New("zero_service_price")
)
