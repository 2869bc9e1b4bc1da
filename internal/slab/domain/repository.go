package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, slab *Slab) error
	Update(ctx context.Context, db *gorm.DB, slab *Slab) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Slab, error)
	List(ctx context.Context, db *gorm.DB) ([]Slab, error)
	// FindApplicable returns slabs containing amount ordered by lower_limit
	// ascending. defaultOnly restricts to default slabs, nonDefaultOnly to
	// membership slabs; both false means any slab.
	FindApplicable(ctx context.Context, db *gorm.DB, amount decimal.Decimal, defaultOnly, nonDefaultOnly bool) ([]Slab, error)
}
