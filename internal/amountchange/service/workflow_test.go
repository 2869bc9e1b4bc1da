package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	amountchangedomain "github.com/smallbiznis/smartcenter/internal/amountchange/domain"
	amountchangerepo "github.com/smallbiznis/smartcenter/internal/amountchange/repository"
	"github.com/smallbiznis/smartcenter/internal/clock"
	merchantservicedomain "github.com/smallbiznis/smartcenter/internal/merchantservice/domain"
	merchantservicerepo "github.com/smallbiznis/smartcenter/internal/merchantservice/repository"
	notificationdomain "github.com/smallbiznis/smartcenter/internal/notification/domain"
	notificationrepo "github.com/smallbiznis/smartcenter/internal/notification/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type failingSink struct {
	err error
}

func (f failingSink) Insert(ctx context.Context, db *gorm.DB, n *notificationdomain.Notification) error {
	return f.err
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&merchantservicedomain.MerchantService{},
		&amountchangedomain.AmountChangeRequest{},
		&notificationdomain.Notification{},
	))
	return db
}

func newWorkflowService(t *testing.T, db *gorm.DB, sink notificationdomain.Sink) (*Service, *snowflake.Node, *clock.FakeClock) {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	if sink == nil {
		sink = notificationrepo.Provide()
	}

	svc := &Service{
		db:            db,
		log:           zaptest.NewLogger(t),
		genID:         node,
		clock:         fake,
		repo:          amountchangerepo.Provide(),
		serviceRepo:   merchantservicerepo.Provide(),
		notifications: sink,
	}
	return svc, node, fake
}

func seedService(t *testing.T, db *gorm.DB, node *snowflake.Node, price int64, deductionType merchantservicedomain.DeductionType) merchantservicedomain.MerchantService {
	t.Helper()
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	svc := merchantservicedomain.MerchantService{
		ID:            node.Generate(),
		MerchantID:    node.Generate(),
		ServiceTypeID: node.Generate(),
		Price:         decimal.NewFromInt(price),
		DeductionType: deductionType,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, db.Create(&svc).Error)
	return svc
}

func submitRequest(t *testing.T, svc *Service, listing merchantservicedomain.MerchantService, amount int64) *amountchangedomain.AmountChangeRequest {
	t.Helper()
	request, err := svc.Submit(context.Background(), amountchangedomain.SubmitRequest{
		ServiceID:       listing.ID.String(),
		ProviderID:      listing.MerchantID.String(),
		RequestedAmount: decimal.NewFromInt(amount),
	})
	require.NoError(t, err)
	return request
}

func TestApproveAppliesDeductionAtomically(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, _, _ := newWorkflowService(t, db, nil)

	node := svc.genID
	listing := seedService(t, db, node, 1000, merchantservicedomain.DeductionTypePercentage)
	request := submitRequest(t, svc, listing, 800)

	resp, err := svc.Approve(ctx, request.ID.String())
	require.NoError(t, err)
	assert.True(t, resp.DeductionValue.Equal(decimal.NewFromInt(200)), "deduction = %s", resp.DeductionValue)

	var updated merchantservicedomain.MerchantService
	require.NoError(t, db.First(&updated, "id = ?", listing.ID).Error)
	assert.Equal(t, int64(800), updated.AmountPaidToAdmin)
	assert.True(t, updated.DeductionValue.Equal(decimal.NewFromInt(200)), "deduction = %s", updated.DeductionValue)

	got, err := svc.Get(ctx, request.ID.String())
	require.NoError(t, err)
	assert.Equal(t, amountchangedomain.RequestStatusApproved, got.Status)
	require.NotNil(t, got.ApprovedAt)

	var notifications int64
	require.NoError(t, db.Raw(
		`SELECT COUNT(1) FROM notifications WHERE service_id = ?`, listing.ID,
	).Scan(&notifications).Error)
	assert.Equal(t, int64(1), notifications)
}

func TestApproveTwiceFails(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, _, _ := newWorkflowService(t, db, nil)

	listing := seedService(t, db, svc.genID, 1000, merchantservicedomain.DeductionTypePercentage)
	request := submitRequest(t, svc, listing, 800)

	_, err := svc.Approve(ctx, request.ID.String())
	require.NoError(t, err)

	_, err = svc.Approve(ctx, request.ID.String())
	assert.ErrorIs(t, err, amountchangedomain.ErrRequestNotPending)
}

func TestApproveRollsBackOnNotificationFailure(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, _, _ := newWorkflowService(t, db, failingSink{err: errors.New("sink down")})

	listing := seedService(t, db, svc.genID, 1000, merchantservicedomain.DeductionTypePercentage)
	request := submitRequest(t, svc, listing, 800)

	_, err := svc.Approve(ctx, request.ID.String())
	require.Error(t, err)

	// Nothing committed: the listing, the request and the notification
	// table are all untouched.
	var unchanged merchantservicedomain.MerchantService
	require.NoError(t, db.First(&unchanged, "id = ?", listing.ID).Error)
	assert.Equal(t, int64(0), unchanged.AmountPaidToAdmin)
	assert.True(t, unchanged.DeductionValue.IsZero())

	got, err := svc.Get(ctx, request.ID.String())
	require.NoError(t, err)
	assert.Equal(t, amountchangedomain.RequestStatusPending, got.Status)

	var notifications int64
	require.NoError(t, db.Raw(`SELECT COUNT(1) FROM notifications`).Scan(&notifications).Error)
	assert.Equal(t, int64(0), notifications)
}

func TestApproveZeroPriceService(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, _, _ := newWorkflowService(t, db, nil)

	listing := seedService(t, db, svc.genID, 0, merchantservicedomain.DeductionTypePercentage)
	request := submitRequest(t, svc, listing, 800)

	_, err := svc.Approve(ctx, request.ID.String())
	assert.ErrorIs(t, err, amountchangedomain.ErrZeroServicePrice)

	got, err := svc.Get(ctx, request.ID.String())
	require.NoError(t, err)
	assert.Equal(t, amountchangedomain.RequestStatusPending, got.Status)
}

func TestApproveFixedDeductionKeepsAdminAmount(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, _, _ := newWorkflowService(t, db, nil)

	listing := seedService(t, db, svc.genID, 1000, merchantservicedomain.DeductionTypeFixed)
	request := submitRequest(t, svc, listing, 700)

	_, err := svc.Approve(ctx, request.ID.String())
	require.NoError(t, err)

	var updated merchantservicedomain.MerchantService
	require.NoError(t, db.First(&updated, "id = ?", listing.ID).Error)
	assert.Equal(t, int64(0), updated.AmountPaidToAdmin)
	assert.True(t, updated.DeductionValue.Equal(decimal.NewFromInt(300)), "deduction = %s", updated.DeductionValue)
}

func TestRejectStoresReasonAndLeavesServiceUntouched(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, _, _ := newWorkflowService(t, db, nil)

	listing := seedService(t, db, svc.genID, 1000, merchantservicedomain.DeductionTypePercentage)
	request := submitRequest(t, svc, listing, 800)

	require.NoError(t, svc.Reject(ctx, request.ID.String(), "price too low"))

	got, err := svc.Get(ctx, request.ID.String())
	require.NoError(t, err)
	assert.Equal(t, amountchangedomain.RequestStatusRejected, got.Status)
	require.NotNil(t, got.RejectionReason)
	assert.Equal(t, "price too low", *got.RejectionReason)
	require.NotNil(t, got.RejectedAt)

	var unchanged merchantservicedomain.MerchantService
	require.NoError(t, db.First(&unchanged, "id = ?", listing.ID).Error)
	assert.Equal(t, int64(0), unchanged.AmountPaidToAdmin)
	assert.True(t, unchanged.DeductionValue.IsZero())

	var notifications int64
	require.NoError(t, db.Raw(
		`SELECT COUNT(1) FROM notifications WHERE service_id = ?`, listing.ID,
	).Scan(&notifications).Error)
	assert.Equal(t, int64(1), notifications)

	require.ErrorIs(t, svc.Reject(ctx, request.ID.String(), "again"), amountchangedomain.ErrRequestNotPending)
}

func TestRejectRequiresReason(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, _, _ := newWorkflowService(t, db, nil)

	listing := seedService(t, db, svc.genID, 1000, merchantservicedomain.DeductionTypePercentage)
	request := submitRequest(t, svc, listing, 800)

	assert.ErrorIs(t, svc.Reject(ctx, request.ID.String(), "  "), amountchangedomain.ErrInvalidReason)
}

func TestSubmitValidation(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node, _ := newWorkflowService(t, db, nil)

	_, err := svc.Submit(ctx, amountchangedomain.SubmitRequest{
		ServiceID:       node.Generate().String(),
		ProviderID:      node.Generate().String(),
		RequestedAmount: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, amountchangedomain.ErrServiceNotFound)

	listing := seedService(t, db, node, 1000, merchantservicedomain.DeductionTypePercentage)

	_, err = svc.Submit(ctx, amountchangedomain.SubmitRequest{
		ServiceID:       listing.ID.String(),
		ProviderID:      listing.MerchantID.String(),
		RequestedAmount: decimal.Zero,
	})
	assert.ErrorIs(t, err, amountchangedomain.ErrInvalidAmount)
}

func TestPendingExists(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, _, _ := newWorkflowService(t, db, nil)

	listing := seedService(t, db, svc.genID, 1000, merchantservicedomain.DeductionTypePercentage)

	exists, err := svc.PendingExists(ctx, listing.ID.String(), listing.MerchantID.String())
	require.NoError(t, err)
	assert.False(t, exists)

	request := submitRequest(t, svc, listing, 800)

	exists, err = svc.PendingExists(ctx, listing.ID.String(), listing.MerchantID.String())
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = svc.Approve(ctx, request.ID.String())
	require.NoError(t, err)

	exists, err = svc.PendingExists(ctx, listing.ID.String(), listing.MerchantID.String())
	require.NoError(t, err)
	assert.False(t, exists)
}
