package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	amountchangedomain "github.com/smallbiznis/smartcenter/internal/amountchange/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() amountchangedomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, request *amountchangedomain.AmountChangeRequest) error {
	return db.WithContext(ctx).Create(request).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*amountchangedomain.AmountChangeRequest, error) {
	var request amountchangedomain.AmountChangeRequest
	err := db.WithContext(ctx).Raw(
		`SELECT id, service_id, provider_id, requested_amount, status, requested_at,
		 approved_at, rejected_at, rejection_reason
		 FROM amount_change_requests WHERE id = ?`,
		id,
	).Scan(&request).Error
	if err != nil {
		return nil, err
	}
	if request.ID == 0 {
		return nil, nil
	}
	return &request, nil
}

func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*amountchangedomain.AmountChangeRequest, error) {
	var request amountchangedomain.AmountChangeRequest
	tx := db.WithContext(ctx)
	// sqlite has no row locks; its writes serialize on the database lock.
	if db.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := tx.
		Where("id = ?", id).
		Limit(1).
		Find(&request).Error
	if err != nil {
		return nil, err
	}
	if request.ID == 0 {
		return nil, nil
	}
	return &request, nil
}

func (r *repo) ListByProvider(ctx context.Context, db *gorm.DB, providerID snowflake.ID) ([]amountchangedomain.AmountChangeRequest, error) {
	var requests []amountchangedomain.AmountChangeRequest
	err := db.WithContext(ctx).Raw(
		`SELECT id, service_id, provider_id, requested_amount, status, requested_at,
		 approved_at, rejected_at, rejection_reason
		 FROM amount_change_requests WHERE provider_id = ? ORDER BY requested_at DESC`,
		providerID,
	).Scan(&requests).Error
	return requests, err
}

func (r *repo) PendingExists(ctx context.Context, db *gorm.DB, serviceID, providerID snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM amount_change_requests
		 WHERE service_id = ? AND provider_id = ? AND status = ?`,
		serviceID, providerID, amountchangedomain.RequestStatusPending,
	).Scan(&count).Error
	return count > 0, err
}

func (r *repo) MarkApproved(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE amount_change_requests SET status = ?, approved_at = ? WHERE id = ?`,
		amountchangedomain.RequestStatusApproved, at, id,
	).Error
}

func (r *repo) MarkRejected(ctx context.Context, db *gorm.DB, id snowflake.ID, reason string, at time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE amount_change_requests SET status = ?, rejection_reason = ?, rejected_at = ? WHERE id = ?`,
		amountchangedomain.RequestStatusRejected, reason, at, id,
	).Error
}
