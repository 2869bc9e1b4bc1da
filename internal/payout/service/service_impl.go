package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/smartcenter/internal/clock"
	payoutdomain "github.com/smallbiznis/smartcenter/internal/payout/domain"
	slabdomain "github.com/smallbiznis/smartcenter/internal/slab/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID *snowflake.Node
	clock clock.Clock
	repo  payoutdomain.Repository

	slabsvc slabdomain.Service
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  payoutdomain.Repository

	Slabsvc slabdomain.Service
}

func NewService(p ServiceParam) payoutdomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("payout.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		slabsvc: p.Slabsvc,
	}
}

func (s *Service) RecordPayment(ctx context.Context, req payoutdomain.RecordPaymentRequest) (*payoutdomain.Payment, error) {
	merchantID, err := s.parseID(req.MerchantID, payoutdomain.ErrInvalidMerchant)
	if err != nil {
		return nil, err
	}
	serviceID, err := s.parseID(req.ServiceID, payoutdomain.ErrInvalidService)
	if err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, payoutdomain.ErrInvalidAmount
	}
	if strings.TrimSpace(req.PayoutMethod) == "" {
		return nil, payoutdomain.ErrInvalidPayoutMethod
	}

	now := s.clock.Now()
	payment := &payoutdomain.Payment{
		ID:           s.genID.Generate(),
		MerchantID:   merchantID,
		ServiceID:    serviceID,
		Amount:       req.Amount,
		PayoutMethod: strings.TrimSpace(req.PayoutMethod),
		Status:       payoutdomain.PaymentStatusPaid,
		PaidAt:       now,
		CreatedAt:    now,
	}

	if err := s.repo.InsertPayment(ctx, s.db, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// AggregatePayouts implements domain.Service. Commission comes from the
// merchant-aware slab resolution on each payment's amount; rows with no
// applicable slab pay out in full.
func (s *Service) AggregatePayouts(ctx context.Context) ([]payoutdomain.TransactionView, error) {
	rows, err := s.repo.ListPaymentRows(ctx, s.db)
	if err != nil {
		return nil, err
	}

	views := make([]payoutdomain.TransactionView, 0, len(rows))
	for _, row := range rows {
		commission := decimal.Zero
		slab, err := s.slabsvc.ResolveForMerchant(ctx, slabdomain.ResolveRequest{
			Amount:     row.ServicePrice,
			MerchantID: row.MerchantID.String(),
		})
		switch {
		case err == nil:
			commission = slab.Percentage
		case errors.Is(err, slabdomain.ErrNoApplicableSlab):
			s.log.Warn("no slab for payment, paying out in full",
				zap.String("payment_id", row.PaymentID.String()),
				zap.String("amount", row.ServicePrice.String()),
			)
		case errors.Is(err, slabdomain.ErrInvalidAmount):
			s.log.Warn("payment with non-positive amount skipped from commission",
				zap.String("payment_id", row.PaymentID.String()),
			)
		default:
			return nil, err
		}

		// Final payout keeps the legacy formula: the discount rate is
		// reported but not applied. See DESIGN.md.
		finalPayout := row.ServicePrice.Sub(row.ServicePrice.Mul(commission).Div(hundred))

		discountRate := decimal.Zero
		if row.MembershipActive {
			discountRate = row.DiscountRate
		}

		views = append(views, payoutdomain.TransactionView{
			PaymentID:        row.PaymentID.String(),
			MerchantID:       row.MerchantID.String(),
			ServicePrice:     row.ServicePrice,
			PayoutMethod:     row.PayoutMethod,
			Status:           row.Status,
			MembershipActive: row.MembershipActive,
			DiscountRate:     discountRate,
			Commission:       commission,
			FinalPayout:      finalPayout,
			PaidAt:           row.PaidAt,
		})
	}

	return views, nil
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
