package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/smartcenter/internal/clock"
	membershipdomain "github.com/smallbiznis/smartcenter/internal/membership/domain"
	"github.com/smallbiznis/smartcenter/internal/ratelimit"
	"github.com/smallbiznis/smartcenter/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const activationLockTTL = 5 * time.Second

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID  *snowflake.Node
	clock  clock.Clock
	repo   membershipdomain.Repository
	locker *ratelimit.Locker
}

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Repo   membershipdomain.Repository
	Locker *ratelimit.Locker `optional:"true"`
}

func NewService(p ServiceParam) membershipdomain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("membership.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		repo:   p.Repo,
		locker: p.Locker,
	}
}

func (s *Service) CreatePlan(ctx context.Context, req membershipdomain.CreatePlanRequest) (*membershipdomain.MembershipPlan, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, membershipdomain.ErrInvalidPlanName
	}
	switch req.Duration {
	case membershipdomain.PlanDurationMonthly, membershipdomain.PlanDurationYearly:
	default:
		return nil, membershipdomain.ErrInvalidDuration
	}
	if req.Price.IsNegative() {
		return nil, membershipdomain.ErrInvalidAmount
	}

	slabIDs, err := s.parseSlabIDs(req.SlabIDs)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	plan := &membershipdomain.MembershipPlan{
		ID:            s.genID.Generate(),
		Name:          strings.TrimSpace(req.Name),
		Price:         req.Price,
		Duration:      req.Duration,
		DiscountRate:  req.DiscountRate,
		ServicesLimit: req.ServicesLimit,
		StaffLimit:    req.StaffLimit,
		Metadata:      datatypes.JSONMap(req.Metadata),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertPlan(ctx, tx, plan); err != nil {
			return err
		}
		if len(slabIDs) > 0 {
			return s.repo.ReplacePlanSlabs(ctx, tx, plan.ID, slabIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *Service) GetPlan(ctx context.Context, rawID string) (*membershipdomain.MembershipPlan, error) {
	id, err := s.parseID(rawID, membershipdomain.ErrInvalidPlan)
	if err != nil {
		return nil, err
	}

	plan, err := s.repo.FindPlanByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, membershipdomain.ErrPlanNotFound
	}
	return plan, nil
}

func (s *Service) ListPlans(ctx context.Context) ([]membershipdomain.MembershipPlan, error) {
	return s.repo.ListPlans(ctx, s.db)
}

func (s *Service) AssignSlabs(ctx context.Context, rawPlanID string, rawSlabIDs []string) error {
	planID, err := s.parseID(rawPlanID, membershipdomain.ErrInvalidPlan)
	if err != nil {
		return err
	}

	slabIDs, err := s.parseSlabIDs(rawSlabIDs)
	if err != nil {
		return err
	}

	plan, err := s.repo.FindPlanByID(ctx, s.db, planID)
	if err != nil {
		return err
	}
	if plan == nil {
		return membershipdomain.ErrPlanNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.ReplacePlanSlabs(ctx, tx, planID, slabIDs)
	})
}

// Activate implements domain.Service. Deactivation of prior memberships and
// insertion of the new active row happen in one transaction; the partial
// unique index on (merchant_id) WHERE is_active backstops concurrent
// activations that raced past the read.
func (s *Service) Activate(ctx context.Context, req membershipdomain.ActivateRequest) (*membershipdomain.MembershipPayment, error) {
	merchantID, err := s.parseID(req.MerchantID, membershipdomain.ErrInvalidMerchant)
	if err != nil {
		return nil, err
	}
	planID, err := s.parseID(req.PlanID, membershipdomain.ErrInvalidPlan)
	if err != nil {
		return nil, err
	}
	if req.Amount.IsNegative() {
		return nil, membershipdomain.ErrInvalidAmount
	}

	plan, err := s.repo.FindPlanByID(ctx, s.db, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, membershipdomain.ErrPlanNotFound
	}

	if s.locker != nil {
		key := "membership:activate:" + merchantID.String()
		token, ok, err := s.locker.TryLock(ctx, key, activationLockTTL)
		if err != nil {
			s.log.Warn("activation lock unavailable", zap.Error(err))
		} else if !ok {
			return nil, membershipdomain.ErrActivationInProgress
		} else {
			defer func() {
				if err := s.locker.Release(ctx, key, token); err != nil {
					s.log.Warn("activation lock release failed", zap.Error(err))
				}
			}()
		}
	}

	now := s.clock.Now()
	payment := &membershipdomain.MembershipPayment{
		ID:         s.genID.Generate(),
		MerchantID: merchantID,
		PlanID:     planID,
		Amount:     req.Amount,
		IsActive:   true,
		PaidAt:     now,
		CreatedAt:  now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deactivated, err := s.repo.DeactivateByMerchant(ctx, tx, merchantID)
		if err != nil {
			return err
		}
		if deactivated > 0 {
			s.log.Info("deactivated prior memberships",
				zap.String("merchant_id", merchantID.String()),
				zap.Int64("count", deactivated),
			)
		}
		return s.repo.InsertPayment(ctx, tx, payment)
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, membershipdomain.ErrActivationConflict
		}
		return nil, err
	}

	return payment, nil
}

// GetActive implements domain.Service.
func (s *Service) GetActive(ctx context.Context, rawMerchantID string) (*membershipdomain.ActiveMembership, error) {
	merchantID, err := s.parseID(rawMerchantID, membershipdomain.ErrInvalidMerchant)
	if err != nil {
		return nil, err
	}

	payment, err := s.repo.FindActiveByMerchant(ctx, s.db, merchantID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, membershipdomain.ErrNoActiveMembership
	}

	plan, err := s.repo.FindPlanByID(ctx, s.db, payment.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, membershipdomain.ErrPlanNotFound
	}

	return &membershipdomain.ActiveMembership{
		Payment: *payment,
		Plan:    *plan,
	}, nil
}

func (s *Service) parseSlabIDs(raw []string) ([]snowflake.ID, error) {
	ids := make([]snowflake.ID, 0, len(raw))
	for _, r := range raw {
		id, err := s.parseID(r, membershipdomain.ErrInvalidSlabID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
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
