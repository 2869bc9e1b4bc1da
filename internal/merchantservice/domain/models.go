// Package domain contains persistence models for merchant service listings.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// DeductionType selects how the platform's cut is derived from a listing.
type DeductionType string

const (
	DeductionTypePercentage DeductionType = "PERCENTAGE"
	DeductionTypeFixed      DeductionType = "FIXED"
)

// MerchantService is a merchant's listed service offering.
// AmountPaidToAdmin and DeductionValue are outputs of the deduction
// calculator, rewritten when an amount-change request is approved.
type MerchantService struct {
	ID                snowflake.ID    `json:"id" gorm:"primaryKey"`
	MerchantID        snowflake.ID    `json:"merchant_id" gorm:"not null;index"`
	ServiceTypeID     snowflake.ID    `json:"service_type_id" gorm:"not null;index"`
	Price             decimal.Decimal `json:"price" gorm:"type:numeric;not null"`
	AmountPaidToAdmin int64           `json:"amount_paid_to_admin" gorm:"not null;default:0"`
	DeductionType     DeductionType   `json:"deduction_type" gorm:"type:text;not null"`
	DeductionValue    decimal.Decimal `json:"deduction_value" gorm:"type:numeric;not null;default:0"`
	CreatedAt         time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (MerchantService) TableName() string { return "merchant_services" }
