package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/smartcenter/internal/clock"
	notificationdomain "github.com/smallbiznis/smartcenter/internal/notification/domain"
	"github.com/smallbiznis/smartcenter/pkg/db/option"
	"github.com/smallbiznis/smartcenter/pkg/db/pagination"
	"github.com/smallbiznis/smartcenter/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultPageSize = 10

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	store repository.Repository[notificationdomain.Notification]
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Store repository.Repository[notificationdomain.Notification]
}

func NewService(p ServiceParam) notificationdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("notification.service"),
		clock: p.Clock,
		store: p.Store,
	}
}

// List implements domain.Service.
func (s *Service) List(ctx context.Context, req notificationdomain.ListRequest) (*notificationdomain.ListResponse, error) {
	merchantID, err := s.parseID(req.MerchantID, notificationdomain.ErrInvalidMerchant)
	if err != nil {
		return nil, err
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	store := s.store
	if req.PageToken != "" {
		cursor, err := pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return nil, notificationdomain.ErrInvalidPageToken
		}
		before, err := time.Parse(time.RFC3339Nano, cursor.CreatedAt)
		if err != nil {
			return nil, notificationdomain.ErrInvalidPageToken
		}
		store = s.store.WithTrx(s.db.Where("created_at < ?", before))
	}

	items, err := store.Find(ctx,
		&notificationdomain.Notification{MerchantID: merchantID},
		option.WithOrderBy("created_at DESC"),
		option.WithLimit(pageSize+1),
	)
	if err != nil {
		return nil, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, int32(pageSize), func(n *notificationdomain.Notification) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        n.ID.String(),
			CreatedAt: n.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			s.log.Warn("encode cursor failed", zap.Error(err))
			return ""
		}
		return token
	})
	if len(items) > pageSize {
		items = items[:pageSize]
	}

	return &notificationdomain.ListResponse{
		Notifications: items,
		PageInfo:      pageInfo,
	}, nil
}

// MarkRead implements domain.Service.
func (s *Service) MarkRead(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID, notificationdomain.ErrInvalidID)
	if err != nil {
		return err
	}

	existing, err := s.store.FindOne(ctx, &notificationdomain.Notification{ID: id})
	if err != nil {
		return err
	}
	if existing == nil {
		return notificationdomain.ErrNotificationNotFound
	}
	if existing.IsRead {
		return nil
	}

	now := s.clock.Now()
	return s.store.Update(ctx, id.String(), map[string]any{
		"is_read": true,
		"read_at": now,
	})
}

func (s *Service) parseID(raw string, invalid error) (snowflake.ID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, invalid
	}
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return 0, invalid
	}
	return id, nil
}
