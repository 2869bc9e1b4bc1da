// Package domain contains the amount-change request state machine's
// persistence model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// RequestStatus is the request lifecycle. PENDING transitions once, to
// APPROVED or REJECTED; both are terminal.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// AmountChangeRequest is a merchant's proposal to change the payable
// amount on one of its service listings.
type AmountChangeRequest struct {
	ID              snowflake.ID    `json:"id" gorm:"primaryKey"`
	ServiceID       snowflake.ID    `json:"service_id" gorm:"not null;index"`
	ProviderID      snowflake.ID    `json:"provider_id" gorm:"not null;index"`
	RequestedAmount decimal.Decimal `json:"requested_amount" gorm:"type:numeric;not null"`
	Status          RequestStatus   `json:"status" gorm:"type:text;not null"`
	RequestedAt     time.Time       `json:"requested_at" gorm:"not null"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	RejectedAt      *time.Time      `json:"rejected_at,omitempty"`
	RejectionReason *string         `json:"rejection_reason,omitempty" gorm:"type:text"`
}

// TableName sets the database table name.
func (AmountChangeRequest) TableName() string { return "amount_change_requests" }
