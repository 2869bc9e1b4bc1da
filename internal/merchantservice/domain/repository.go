package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, svc *MerchantService) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*MerchantService, error)
	ListByMerchant(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) ([]MerchantService, error)
	// UpdateDeduction persists the calculator's outputs on the listing.
	UpdateDeduction(ctx context.Context, db *gorm.DB, id snowflake.ID, amountPaidToAdmin int64, deductionValue decimal.Decimal, updatedAt time.Time) error
}
