package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/smartcenter/internal/clock"
	"github.com/smallbiznis/smartcenter/internal/config"
	membershipdomain "github.com/smallbiznis/smartcenter/internal/membership/domain"
	slabdomain "github.com/smallbiznis/smartcenter/internal/slab/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID *snowflake.Node
	clock clock.Clock
	repo  slabdomain.Repository

	membershipsvc membershipdomain.Service

	// matchPlanName requires a membership slab's name to equal the active
	// plan's name. The legacy resolver had both behaviors.
	matchPlanName bool
}

type ServiceParam struct {
	fx.In

	Cfg   config.Config
	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  slabdomain.Repository

	Membershipsvc membershipdomain.Service
}

func NewService(p ServiceParam) slabdomain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("slab.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		repo:          p.Repo,
		membershipsvc: p.Membershipsvc,
		matchPlanName: p.Cfg.SlabMatchPlanName,
	}
}

func (s *Service) Create(ctx context.Context, req slabdomain.CreateRequest) (*slabdomain.Slab, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, slabdomain.ErrInvalidName
	}
	if req.LowerLimit.IsNegative() || req.UpperLimit.LessThan(req.LowerLimit) {
		return nil, slabdomain.ErrInvalidLimits
	}

	now := s.clock.Now()
	slab := &slabdomain.Slab{
		ID:         s.genID.Generate(),
		Name:       strings.TrimSpace(req.Name),
		LowerLimit: req.LowerLimit,
		UpperLimit: req.UpperLimit,
		FixedFee:   req.FixedFee,
		Percentage: req.Percentage,
		IsDefault:  req.IsDefault,
		Metadata:   datatypes.JSONMap(req.Metadata),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Insert(ctx, s.db, slab); err != nil {
		return nil, err
	}
	return slab, nil
}

func (s *Service) Update(ctx context.Context, req slabdomain.UpdateRequest) (*slabdomain.Slab, error) {
	id, err := s.parseID(req.ID, slabdomain.ErrInvalidID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, slabdomain.ErrInvalidName
	}
	if req.LowerLimit.IsNegative() || req.UpperLimit.LessThan(req.LowerLimit) {
		return nil, slabdomain.ErrInvalidLimits
	}

	slab, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if slab == nil {
		return nil, slabdomain.ErrSlabNotFound
	}

	slab.Name = strings.TrimSpace(req.Name)
	slab.LowerLimit = req.LowerLimit
	slab.UpperLimit = req.UpperLimit
	slab.FixedFee = req.FixedFee
	slab.Percentage = req.Percentage
	slab.IsDefault = req.IsDefault
	slab.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, slab); err != nil {
		return nil, err
	}
	return slab, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID, slabdomain.ErrInvalidID)
	if err != nil {
		return err
	}

	slab, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if slab == nil {
		return slabdomain.ErrSlabNotFound
	}
	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) Get(ctx context.Context, rawID string) (*slabdomain.Slab, error) {
	id, err := s.parseID(rawID, slabdomain.ErrInvalidID)
	if err != nil {
		return nil, err
	}

	slab, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if slab == nil {
		return nil, slabdomain.ErrSlabNotFound
	}
	return slab, nil
}

func (s *Service) List(ctx context.Context) ([]slabdomain.Slab, error) {
	return s.repo.List(ctx, s.db)
}

// ResolveApplicable implements domain.Service.
func (s *Service) ResolveApplicable(ctx context.Context, amount decimal.Decimal) (*slabdomain.Slab, error) {
	if !amount.IsPositive() {
		return nil, slabdomain.ErrInvalidAmount
	}

	slabs, err := s.repo.FindApplicable(ctx, s.db, amount, false, false)
	if err != nil {
		return nil, err
	}
	if len(slabs) == 0 {
		s.log.Warn("no applicable slab", zap.String("amount", amount.String()))
		return nil, slabdomain.ErrNoApplicableSlab
	}
	return &slabs[0], nil
}

// ResolveDefault implements domain.Service.
func (s *Service) ResolveDefault(ctx context.Context, amount decimal.Decimal) (*slabdomain.Slab, error) {
	if !amount.IsPositive() {
		return nil, slabdomain.ErrInvalidAmount
	}
	return s.resolveDefault(ctx, amount)
}

// ResolveForMerchant implements domain.Service. Membership slabs win over
// default slabs; within each class the smallest lower_limit wins.
func (s *Service) ResolveForMerchant(ctx context.Context, req slabdomain.ResolveRequest) (*slabdomain.Slab, error) {
	if !req.Amount.IsPositive() {
		return nil, slabdomain.ErrInvalidAmount
	}

	merchantID := strings.TrimSpace(req.MerchantID)
	if merchantID == "" {
		return s.resolveDefault(ctx, req.Amount)
	}
	if _, err := snowflake.ParseString(merchantID); err != nil {
		return nil, slabdomain.ErrInvalidMerchant
	}

	active, err := s.membershipsvc.GetActive(ctx, merchantID)
	if err != nil && !errors.Is(err, membershipdomain.ErrNoActiveMembership) {
		return nil, err
	}

	if active != nil {
		slabs, err := s.repo.FindApplicable(ctx, s.db, req.Amount, false, true)
		if err != nil {
			return nil, err
		}
		for i := range slabs {
			if s.matchPlanName && slabs[i].Name != active.Plan.Name {
				continue
			}
			s.log.Debug("membership slab resolved",
				zap.String("merchant_id", merchantID),
				zap.String("slab_id", slabs[i].ID.String()),
				zap.String("plan", active.Plan.Name),
			)
			return &slabs[i], nil
		}
	}

	return s.resolveDefault(ctx, req.Amount)
}

func (s *Service) resolveDefault(ctx context.Context, amount decimal.Decimal) (*slabdomain.Slab, error) {
	slabs, err := s.repo.FindApplicable(ctx, s.db, amount, true, false)
	if err != nil {
		return nil, err
	}
	if len(slabs) == 0 {
		s.log.Warn("no applicable default slab", zap.String("amount", amount.String()))
		return nil, slabdomain.ErrNoApplicableSlab
	}
	return &slabs[0], nil
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
