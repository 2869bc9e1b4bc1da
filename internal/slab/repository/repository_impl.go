package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	slabdomain "github.com/smallbiznis/smartcenter/internal/slab/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() slabdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, slab *slabdomain.Slab) error {
	return db.WithContext(ctx).Create(slab).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, slab *slabdomain.Slab) error {
	return db.WithContext(ctx).Exec(
		`UPDATE slabs SET name = ?, lower_limit = ?, upper_limit = ?, fixed_fee = ?,
		 percentage = ?, is_default = ?, updated_at = ? WHERE id = ?`,
		slab.Name,
		slab.LowerLimit,
		slab.UpperLimit,
		slab.FixedFee,
		slab.Percentage,
		slab.IsDefault,
		slab.UpdatedAt,
		slab.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM slabs WHERE id = ?`, id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*slabdomain.Slab, error) {
	var slab slabdomain.Slab
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, lower_limit, upper_limit, fixed_fee, percentage, is_default,
		 metadata, created_at, updated_at FROM slabs WHERE id = ?`,
		id,
	).Scan(&slab).Error
	if err != nil {
		return nil, err
	}
	if slab.ID == 0 {
		return nil, nil
	}
	return &slab, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]slabdomain.Slab, error) {
	var slabs []slabdomain.Slab
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, lower_limit, upper_limit, fixed_fee, percentage, is_default,
		 metadata, created_at, updated_at FROM slabs ORDER BY lower_limit ASC`,
	).Scan(&slabs).Error
	return slabs, err
}

func (r *repo) FindApplicable(ctx context.Context, db *gorm.DB, amount decimal.Decimal, defaultOnly, nonDefaultOnly bool) ([]slabdomain.Slab, error) {
	query := `SELECT id, name, lower_limit, upper_limit, fixed_fee, percentage, is_default,
	 metadata, created_at, updated_at FROM slabs
	 WHERE lower_limit <= ? AND upper_limit >= ?`
	args := []any{amount, amount}

	switch {
	case defaultOnly:
		query += ` AND is_default = ?`
		args = append(args, true)
	case nonDefaultOnly:
		query += ` AND is_default = ?`
		args = append(args, false)
	}

	query += ` ORDER BY lower_limit ASC`

	var slabs []slabdomain.Slab
	err := db.WithContext(ctx).Raw(query, args...).Scan(&slabs).Error
	return slabs, err
}
