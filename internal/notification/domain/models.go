// Package domain defines the notification sink consumed by workflow
// services. Delivery is someone else's problem; the core only inserts.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type SenderType string

const (
	SenderTypeAdmin    SenderType = "ADMIN"
	SenderTypeMerchant SenderType = "MERCHANT"
)

type Notification struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	UserID      snowflake.ID `json:"user_id" gorm:"not null;index"`
	MerchantID  snowflake.ID `json:"merchant_id" gorm:"not null;index"`
	Message     string       `json:"message" gorm:"type:text;not null"`
	RedirectURL string       `json:"redirect_url" gorm:"type:text"`
	SenderType  SenderType   `json:"sender_type" gorm:"type:text;not null"`
	ServiceID   snowflake.ID `json:"service_id" gorm:"index"`
	Kind        string       `json:"kind" gorm:"column:notification_type;type:text;not null"`
	IsRead      bool         `json:"is_read" gorm:"not null;default:false"`
	ReadAt      *time.Time   `json:"read_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Notification) TableName() string { return "notifications" }

// Sink persists notifications. It takes the db handle per call so inserts
// can join the caller's transaction.
type Sink interface {
	Insert(ctx context.Context, db *gorm.DB, notification *Notification) error
}
