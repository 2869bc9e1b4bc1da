package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/smartcenter/pkg/db/pagination"
)

type ListRequest struct {
	MerchantID string
	pagination.Pagination
}

type ListResponse struct {
	Notifications []*Notification      `json:"notifications"`
	PageInfo      *pagination.PageInfo `json:"page_info"`
}

type Service interface {
	// List returns the merchant's notifications, newest first, with
	// cursor pagination.
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	MarkRead(ctx context.Context, id string) error
}

var (
	ErrInvalidMerchant      = errors.New("invalid_merchant")
	ErrInvalidID            = errors.New("invalid_id")
	ErrInvalidPageToken     = errors.New("invalid_page_token")
	ErrNotificationNotFound = errors.New("notification_not_found")
)
