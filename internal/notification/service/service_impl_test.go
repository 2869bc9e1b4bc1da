package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/smartcenter/internal/clock"
	notificationdomain "github.com/smallbiznis/smartcenter/internal/notification/domain"
	"github.com/smallbiznis/smartcenter/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&notificationdomain.Notification{}))
	return db
}

func newNotificationService(t *testing.T, db *gorm.DB) (notificationdomain.Service, *snowflake.Node, *clock.FakeClock) {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	svc := NewService(ServiceParam{
		DB:    db,
		Log:   zaptest.NewLogger(t),
		Clock: fake,
		Store: repository.ProvideStore[notificationdomain.Notification](db),
	})
	return svc, node, fake
}

func seedNotification(t *testing.T, db *gorm.DB, node *snowflake.Node, merchantID snowflake.ID, message string, createdAt time.Time) notificationdomain.Notification {
	t.Helper()
	n := notificationdomain.Notification{
		ID:         node.Generate(),
		UserID:     node.Generate(),
		MerchantID: merchantID,
		Message:    message,
		SenderType: notificationdomain.SenderTypeAdmin,
		Kind:       "ALERT",
		CreatedAt:  createdAt,
	}
	require.NoError(t, db.Create(&n).Error)
	return n
}

func TestListPaginatesNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node, _ := newNotificationService(t, db)

	merchantID := node.Generate()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedNotification(t, db, node, merchantID, fmt.Sprintf("message %d", i), base.Add(time.Duration(i)*time.Minute))
	}
	// Another merchant's notifications must not leak in.
	seedNotification(t, db, node, node.Generate(), "other", base)

	resp, err := svc.List(ctx, notificationdomain.ListRequest{MerchantID: merchantID.String()})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 5)
	assert.Equal(t, "message 4", resp.Notifications[0].Message)
	assert.False(t, resp.PageInfo.HasMore)
}

func TestListCursorWalksPages(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node, _ := newNotificationService(t, db)

	merchantID := node.Generate()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedNotification(t, db, node, merchantID, fmt.Sprintf("message %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	req := notificationdomain.ListRequest{MerchantID: merchantID.String()}
	req.PageSize = 2

	page1, err := svc.List(ctx, req)
	require.NoError(t, err)
	require.Len(t, page1.Notifications, 2)
	assert.Equal(t, "message 4", page1.Notifications[0].Message)
	assert.True(t, page1.PageInfo.HasMore)
	require.NotEmpty(t, page1.PageInfo.NextPageToken)

	req.PageToken = page1.PageInfo.NextPageToken
	page2, err := svc.List(ctx, req)
	require.NoError(t, err)
	require.Len(t, page2.Notifications, 2)
	assert.Equal(t, "message 2", page2.Notifications[0].Message)
	assert.True(t, page2.PageInfo.HasMore)

	req.PageToken = page2.PageInfo.NextPageToken
	page3, err := svc.List(ctx, req)
	require.NoError(t, err)
	require.Len(t, page3.Notifications, 1)
	assert.Equal(t, "message 0", page3.Notifications[0].Message)
	assert.False(t, page3.PageInfo.HasMore)
}

func TestListRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node, _ := newNotificationService(t, db)

	_, err := svc.List(ctx, notificationdomain.ListRequest{MerchantID: ""})
	assert.ErrorIs(t, err, notificationdomain.ErrInvalidMerchant)

	req := notificationdomain.ListRequest{MerchantID: node.Generate().String()}
	req.PageToken = "%%%not-base64%%%"
	_, err = svc.List(ctx, req)
	assert.ErrorIs(t, err, notificationdomain.ErrInvalidPageToken)
}

func TestMarkRead(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node, fake := newNotificationService(t, db)

	merchantID := node.Generate()
	n := seedNotification(t, db, node, merchantID, "unread", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, svc.MarkRead(ctx, n.ID.String()))

	var updated notificationdomain.Notification
	require.NoError(t, db.First(&updated, "id = ?", n.ID).Error)
	assert.True(t, updated.IsRead)
	require.NotNil(t, updated.ReadAt)
	assert.Equal(t, fake.Now(), updated.ReadAt.UTC())

	// Marking twice is a no-op.
	require.NoError(t, svc.MarkRead(ctx, n.ID.String()))

	err := svc.MarkRead(ctx, node.Generate().String())
	assert.ErrorIs(t, err, notificationdomain.ErrNotificationNotFound)
}
