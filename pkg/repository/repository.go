package repository

import (
	"context"

	"github.com/smallbiznis/smartcenter/pkg/db/option"
	"gorm.io/gorm"
)

// Repository is a generic filter-based store for simple lookups. Domain
// repositories with raw SQL remain the primary access path; this covers
// the boring queries.
type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error)
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	Create(ctx context.Context, resource *T) error
	Update(ctx context.Context, resourceID string, resource any) error
	Delete(ctx context.Context, resourceID string) error
	Count(ctx context.Context, query *T) (int64, error)
	BatchCreate(ctx context.Context, resources []*T) error
}
