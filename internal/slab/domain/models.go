// Package domain contains persistence models for commission slabs.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Slab is a tiered commission band. An amount a falls in the slab iff
// LowerLimit <= a <= UpperLimit. Ranges may overlap; resolution picks the
// smallest LowerLimit among matches.
type Slab struct {
	ID         snowflake.ID      `json:"id" gorm:"primaryKey"`
	Name       string            `json:"name" gorm:"type:text;not null"`
	LowerLimit decimal.Decimal   `json:"lower_limit" gorm:"type:numeric;not null"`
	UpperLimit decimal.Decimal   `json:"upper_limit" gorm:"type:numeric;not null"`
	FixedFee   decimal.Decimal   `json:"fixed_fee" gorm:"type:numeric;not null;default:0"`
	Percentage decimal.Decimal   `json:"percentage" gorm:"type:numeric;not null;default:0"`
	IsDefault  bool              `json:"is_default" gorm:"not null;default:false"`
	Metadata   datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt  time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Slab) TableName() string { return "slabs" }

// Contains reports whether amount falls inside the slab's band.
func (s Slab) Contains(amount decimal.Decimal) bool {
	return s.LowerLimit.LessThanOrEqual(amount) && s.UpperLimit.GreaterThanOrEqual(amount)
}
