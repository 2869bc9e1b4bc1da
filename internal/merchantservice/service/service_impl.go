package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/smartcenter/internal/clock"
	merchantservicedomain "github.com/smallbiznis/smartcenter/internal/merchantservice/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID *snowflake.Node
	clock clock.Clock
	repo  merchantservicedomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  merchantservicedomain.Repository
}

func NewService(p ServiceParam) merchantservicedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("merchantservice.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req merchantservicedomain.CreateRequest) (*merchantservicedomain.MerchantService, error) {
	merchantID, err := s.parseID(req.MerchantID, merchantservicedomain.ErrInvalidMerchant)
	if err != nil {
		return nil, err
	}
	serviceTypeID, err := s.parseID(req.ServiceTypeID, merchantservicedomain.ErrInvalidServiceType)
	if err != nil {
		return nil, err
	}
	if !req.Price.IsPositive() {
		return nil, merchantservicedomain.ErrInvalidPrice
	}
	switch req.DeductionType {
	case merchantservicedomain.DeductionTypePercentage, merchantservicedomain.DeductionTypeFixed:
	default:
		return nil, merchantservicedomain.ErrInvalidDeductionType
	}

	now := s.clock.Now()
	svc := &merchantservicedomain.MerchantService{
		ID:            s.genID.Generate(),
		MerchantID:    merchantID,
		ServiceTypeID: serviceTypeID,
		Price:         req.Price,
		DeductionType: req.DeductionType,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) Get(ctx context.Context, rawID string) (*merchantservicedomain.MerchantService, error) {
	id, err := s.parseID(rawID, merchantservicedomain.ErrInvalidID)
	if err != nil {
		return nil, err
	}

	svc, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, merchantservicedomain.ErrServiceNotFound
	}
	return svc, nil
}

func (s *Service) ListByMerchant(ctx context.Context, rawMerchantID string) ([]merchantservicedomain.MerchantService, error) {
	merchantID, err := s.parseID(rawMerchantID, merchantservicedomain.ErrInvalidMerchant)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByMerchant(ctx, s.db, merchantID)
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
