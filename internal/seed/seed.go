package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	slabdomain "github.com/smallbiznis/smartcenter/internal/slab/domain"
	"gorm.io/gorm"
)

// EnsureDefaultSlabs seeds the default commission bands for startup
// bootstrap. Resolution falls back to these when no membership slab
// applies, so a fresh install needs at least one default band.
func EnsureDefaultSlabs(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	defaults := []slabdomain.Slab{
		{
			Name:       "Basic",
			LowerLimit: decimal.Zero,
			UpperLimit: decimal.NewFromInt(1000),
			Percentage: decimal.NewFromInt(5),
			IsDefault:  true,
		},
		{
			Name:       "Extended",
			LowerLimit: decimal.NewFromInt(1001),
			UpperLimit: decimal.NewFromInt(100000),
			Percentage: decimal.NewFromInt(8),
			IsDefault:  true,
		},
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, slab := range defaults {
			if err := ensureSlabTx(ctx, tx, node, slab); err != nil {
				return err
			}
		}
		return nil
	})
}

func ensureSlabTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, slab slabdomain.Slab) error {
	var existing slabdomain.Slab
	err := tx.WithContext(ctx).
		Where("name = ? AND is_default = ?", slab.Name, true).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	slab.ID = node.Generate()
	slab.CreatedAt = now
	slab.UpdatedAt = now
	return tx.WithContext(ctx).Create(&slab).Error
}
