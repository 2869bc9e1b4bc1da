// Package domain contains persistence models for membership plans and
// per-merchant membership payments.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type PlanDuration string

const (
	PlanDurationMonthly PlanDuration = "MONTHLY"
	PlanDurationYearly  PlanDuration = "YEARLY"
)

// MembershipPlan grants merchants access to non-default commission slabs.
type MembershipPlan struct {
	ID            snowflake.ID      `json:"id" gorm:"primaryKey"`
	Name          string            `json:"name" gorm:"type:text;not null"`
	Price         decimal.Decimal   `json:"price" gorm:"type:numeric;not null"`
	Duration      PlanDuration      `json:"duration" gorm:"type:text;not null"`
	DiscountRate  decimal.Decimal   `json:"discount_rate" gorm:"type:numeric;not null;default:0"`
	ServicesLimit int               `json:"services_limit" gorm:"not null;default:0"`
	StaffLimit    int               `json:"staff_limit" gorm:"not null;default:0"`
	Metadata      datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt     time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (MembershipPlan) TableName() string { return "membership_plans" }

// MembershipPlanSlab links plans to slabs, many-to-many.
type MembershipPlanSlab struct {
	PlanID snowflake.ID `json:"plan_id" gorm:"primaryKey;autoIncrement:false"`
	SlabID snowflake.ID `json:"slab_id" gorm:"primaryKey;autoIncrement:false"`
}

// TableName sets the database table name.
func (MembershipPlanSlab) TableName() string { return "membership_plan_slabs" }

// MembershipPayment records a merchant's purchase of a plan. At most one
// row per merchant carries IsActive=true, enforced by a partial unique
// index at the storage layer.
type MembershipPayment struct {
	ID         snowflake.ID    `json:"id" gorm:"primaryKey"`
	MerchantID snowflake.ID    `json:"merchant_id" gorm:"not null;index"`
	PlanID     snowflake.ID    `json:"plan_id" gorm:"not null;index"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:numeric;not null"`
	IsActive   bool            `json:"is_active" gorm:"not null;default:false"`
	PaidAt     time.Time       `json:"paid_at" gorm:"not null"`
	CreatedAt  time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (MembershipPayment) TableName() string { return "membership_payments" }
