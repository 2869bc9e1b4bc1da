package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, request *AmountChangeRequest) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*AmountChangeRequest, error)
	// FindByIDForUpdate locks the request row for the enclosing transaction.
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*AmountChangeRequest, error)
	ListByProvider(ctx context.Context, db *gorm.DB, providerID snowflake.ID) ([]AmountChangeRequest, error)
	// PendingExists reports whether the provider already has a pending
	// request for the service.
	PendingExists(ctx context.Context, db *gorm.DB, serviceID, providerID snowflake.ID) (bool, error)
	MarkApproved(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) error
	MarkRejected(ctx context.Context, db *gorm.DB, id snowflake.ID, reason string, at time.Time) error
}
