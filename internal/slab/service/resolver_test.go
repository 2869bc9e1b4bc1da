package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/smartcenter/internal/clock"
	membershipdomain "github.com/smallbiznis/smartcenter/internal/membership/domain"
	membershiprepo "github.com/smallbiznis/smartcenter/internal/membership/repository"
	membershipservice "github.com/smallbiznis/smartcenter/internal/membership/service"
	slabdomain "github.com/smallbiznis/smartcenter/internal/slab/domain"
	slabrepo "github.com/smallbiznis/smartcenter/internal/slab/repository"
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
	require.NoError(t, db.AutoMigrate(
		&slabdomain.Slab{},
		&membershipdomain.MembershipPlan{},
		&membershipdomain.MembershipPlanSlab{},
		&membershipdomain.MembershipPayment{},
	))
	return db
}

func newResolver(t *testing.T, db *gorm.DB, matchPlanName bool) (*Service, *snowflake.Node, *clock.FakeClock) {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	memSvc := membershipservice.NewService(membershipservice.ServiceParam{
		DB:    db,
		Log:   zaptest.NewLogger(t),
		GenID: node,
		Clock: fake,
		Repo:  membershiprepo.Provide(),
	})

	svc := &Service{
		db:            db,
		log:           zaptest.NewLogger(t),
		genID:         node,
		clock:         fake,
		repo:          slabrepo.Provide(),
		membershipsvc: memSvc,
		matchPlanName: matchPlanName,
	}
	return svc, node, fake
}

func seedSlab(t *testing.T, db *gorm.DB, node *snowflake.Node, name string, lower, upper, percentage int64, isDefault bool) slabdomain.Slab {
	t.Helper()
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	slab := slabdomain.Slab{
		ID:         node.Generate(),
		Name:       name,
		LowerLimit: decimal.NewFromInt(lower),
		UpperLimit: decimal.NewFromInt(upper),
		Percentage: decimal.NewFromInt(percentage),
		IsDefault:  isDefault,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, db.Create(&slab).Error)
	return slab
}

func activateMembership(t *testing.T, db *gorm.DB, node *snowflake.Node, merchantID snowflake.ID, planName string) {
	t.Helper()
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	plan := membershipdomain.MembershipPlan{
		ID:        node.Generate(),
		Name:      planName,
		Price:     decimal.NewFromInt(99),
		Duration:  membershipdomain.PlanDurationMonthly,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&plan).Error)
	payment := membershipdomain.MembershipPayment{
		ID:         node.Generate(),
		MerchantID: merchantID,
		PlanID:     plan.ID,
		Amount:     plan.Price,
		IsActive:   true,
		PaidAt:     now,
		CreatedAt:  now,
	}
	require.NoError(t, db.Create(&payment).Error)
}

func TestResolveApplicableSmallestLowerLimitWins(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node, _ := newResolver(t, db, false)

	seedSlab(t, db, node, "Narrow", 100, 1000, 5, false)
	wide := seedSlab(t, db, node, "Wide", 0, 1000, 3, true)

	slab, err := svc.ResolveApplicable(ctx, decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.Equal(t, wide.ID, slab.ID)
}

func TestResolveApplicableRejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, _, _ := newResolver(t, db, false)

	_, err := svc.ResolveApplicable(ctx, decimal.Zero)
	assert.ErrorIs(t, err, slabdomain.ErrInvalidAmount)

	_, err = svc.ResolveApplicable(ctx, decimal.NewFromInt(-100))
	assert.ErrorIs(t, err, slabdomain.ErrInvalidAmount)
}

func TestResolveDefaultBands(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node, _ := newResolver(t, db, false)

	seedSlab(t, db, node, "Low", 0, 500, 10, true)
	high := seedSlab(t, db, node, "High", 501, 2000, 15, true)
	// Non-default slabs never participate in default resolution.
	seedSlab(t, db, node, "Member", 0, 5000, 2, false)

	slab, err := svc.ResolveDefault(ctx, decimal.NewFromInt(750))
	require.NoError(t, err)
	assert.Equal(t, high.ID, slab.ID)
	assert.True(t, slab.Percentage.Equal(decimal.NewFromInt(15)))

	_, err = svc.ResolveDefault(ctx, decimal.NewFromInt(2500))
	assert.ErrorIs(t, err, slabdomain.ErrNoApplicableSlab)
}

func TestResolveForMerchantMembershipOverride(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node, _ := newResolver(t, db, false)

	seedSlab(t, db, node, "Default", 0, 2000, 10, true)
	member := seedSlab(t, db, node, "Member", 0, 2000, 8, false)

	merchantID := node.Generate()
	activateMembership(t, db, node, merchantID, "Gold")

	slab, err := svc.ResolveForMerchant(ctx, slabdomain.ResolveRequest{
		Amount:     decimal.NewFromInt(1000),
		MerchantID: merchantID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, member.ID, slab.ID)
}

func TestResolveForMerchantWithoutMembershipFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node, _ := newResolver(t, db, false)

	def := seedSlab(t, db, node, "Default", 0, 2000, 10, true)
	seedSlab(t, db, node, "Member", 0, 2000, 8, false)

	slab, err := svc.ResolveForMerchant(ctx, slabdomain.ResolveRequest{
		Amount:     decimal.NewFromInt(1000),
		MerchantID: node.Generate().String(),
	})
	require.NoError(t, err)
	assert.Equal(t, def.ID, slab.ID)
}

func TestResolveForMerchantPlanNameMatching(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node, _ := newResolver(t, db, true)

	def := seedSlab(t, db, node, "Default", 0, 2000, 10, true)
	seedSlab(t, db, node, "Silver", 0, 2000, 8, false)
	gold := seedSlab(t, db, node, "Gold", 0, 2000, 6, false)

	merchantID := node.Generate()
	activateMembership(t, db, node, merchantID, "Gold")

	slab, err := svc.ResolveForMerchant(ctx, slabdomain.ResolveRequest{
		Amount:     decimal.NewFromInt(1000),
		MerchantID: merchantID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, gold.ID, slab.ID)

	// No membership slab named after the plan: default wins.
	other := node.Generate()
	activateMembership(t, db, node, other, "Platinum")

	slab, err = svc.ResolveForMerchant(ctx, slabdomain.ResolveRequest{
		Amount:     decimal.NewFromInt(1000),
		MerchantID: other.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, def.ID, slab.ID)
}

func TestResolveForMerchantRejectsMalformedMerchantID(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node, _ := newResolver(t, db, false)

	seedSlab(t, db, node, "Default", 0, 2000, 10, true)

	_, err := svc.ResolveForMerchant(ctx, slabdomain.ResolveRequest{
		Amount:     decimal.NewFromInt(1000),
		MerchantID: "not-a-snowflake",
	})
	assert.ErrorIs(t, err, slabdomain.ErrInvalidMerchant)
}

func TestSlabCRUD(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, _, _ := newResolver(t, db, false)

	created, err := svc.Create(ctx, slabdomain.CreateRequest{
		Name:       "Band A",
		LowerLimit: decimal.Zero,
		UpperLimit: decimal.NewFromInt(500),
		Percentage: decimal.NewFromInt(10),
		IsDefault:  true,
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Band A", got.Name)

	updated, err := svc.Update(ctx, slabdomain.UpdateRequest{
		ID:         created.ID.String(),
		Name:       "Band A+",
		LowerLimit: decimal.Zero,
		UpperLimit: decimal.NewFromInt(600),
		Percentage: decimal.NewFromInt(12),
		IsDefault:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Band A+", updated.Name)

	require.NoError(t, svc.Delete(ctx, created.ID.String()))

	_, err = svc.Get(ctx, created.ID.String())
	assert.ErrorIs(t, err, slabdomain.ErrSlabNotFound)
}

func TestSlabCreateValidation(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, _, _ := newResolver(t, db, false)

	_, err := svc.Create(ctx, slabdomain.CreateRequest{
		Name:       "",
		UpperLimit: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, slabdomain.ErrInvalidName)

	_, err = svc.Create(ctx, slabdomain.CreateRequest{
		Name:       "Inverted",
		LowerLimit: decimal.NewFromInt(100),
		UpperLimit: decimal.NewFromInt(50),
	})
	assert.ErrorIs(t, err, slabdomain.ErrInvalidLimits)
}
