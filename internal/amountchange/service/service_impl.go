package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	amountchangedomain "github.com/smallbiznis/smartcenter/internal/amountchange/domain"
	"github.com/smallbiznis/smartcenter/internal/clock"
	"github.com/smallbiznis/smartcenter/internal/config"
	"github.com/smallbiznis/smartcenter/internal/deduction"
	merchantservicedomain "github.com/smallbiznis/smartcenter/internal/merchantservice/domain"
	notificationdomain "github.com/smallbiznis/smartcenter/internal/notification/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const providerRedirectURL = "/merchant/services"

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID *snowflake.Node
	clock clock.Clock
	repo  amountchangedomain.Repository

	serviceRepo   merchantservicedomain.Repository
	notifications notificationdomain.Sink
	policy        deduction.Policy
}

type ServiceParam struct {
	fx.In

	Cfg   config.Config
	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  amountchangedomain.Repository

	ServiceRepo   merchantservicedomain.Repository
	Notifications notificationdomain.Sink
}

func NewService(p ServiceParam) amountchangedomain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("amountchange.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		repo:          p.Repo,
		serviceRepo:   p.ServiceRepo,
		notifications: p.Notifications,
		policy:        deduction.Policy{UnifyAdminAmount: p.Cfg.DeductionUnifyAdminAmount},
	}
}

// Submit implements domain.Service.
func (s *Service) Submit(ctx context.Context, req amountchangedomain.SubmitRequest) (*amountchangedomain.AmountChangeRequest, error) {
	serviceID, err := s.parseID(req.ServiceID, amountchangedomain.ErrInvalidService)
	if err != nil {
		return nil, err
	}
	providerID, err := s.parseID(req.ProviderID, amountchangedomain.ErrInvalidProvider)
	if err != nil {
		return nil, err
	}
	if !req.RequestedAmount.IsPositive() {
		return nil, amountchangedomain.ErrInvalidAmount
	}

	svc, err := s.serviceRepo.FindByID(ctx, s.db, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, amountchangedomain.ErrServiceNotFound
	}

	request := &amountchangedomain.AmountChangeRequest{
		ID:              s.genID.Generate(),
		ServiceID:       serviceID,
		ProviderID:      providerID,
		RequestedAmount: req.RequestedAmount,
		Status:          amountchangedomain.RequestStatusPending,
		RequestedAt:     s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, s.db, request); err != nil {
		return nil, err
	}

	s.log.Info("amount change request submitted",
		zap.String("request_id", request.ID.String()),
		zap.String("service_id", serviceID.String()),
		zap.String("requested_amount", req.RequestedAmount.String()),
	)
	return request, nil
}

func (s *Service) Get(ctx context.Context, rawID string) (*amountchangedomain.AmountChangeRequest, error) {
	id, err := s.parseID(rawID, amountchangedomain.ErrInvalidRequest)
	if err != nil {
		return nil, err
	}

	request, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, amountchangedomain.ErrRequestNotFound
	}
	return request, nil
}

func (s *Service) ListByProvider(ctx context.Context, rawProviderID string) ([]amountchangedomain.AmountChangeRequest, error) {
	providerID, err := s.parseID(rawProviderID, amountchangedomain.ErrInvalidProvider)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByProvider(ctx, s.db, providerID)
}

func (s *Service) PendingExists(ctx context.Context, rawServiceID, rawProviderID string) (bool, error) {
	serviceID, err := s.parseID(rawServiceID, amountchangedomain.ErrInvalidService)
	if err != nil {
		return false, err
	}
	providerID, err := s.parseID(rawProviderID, amountchangedomain.ErrInvalidProvider)
	if err != nil {
		return false, err
	}
	return s.repo.PendingExists(ctx, s.db, serviceID, providerID)
}

// Approve implements domain.Service. The service mutation, the request
// transition and the notification insert commit together or not at all.
func (s *Service) Approve(ctx context.Context, rawID string) (*amountchangedomain.ApproveResponse, error) {
	id, err := s.parseID(rawID, amountchangedomain.ErrInvalidRequest)
	if err != nil {
		return nil, err
	}

	var resp *amountchangedomain.ApproveResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if request == nil {
			return amountchangedomain.ErrRequestNotFound
		}
		if request.Status != amountchangedomain.RequestStatusPending {
			return amountchangedomain.ErrRequestNotPending
		}

		svc, err := s.serviceRepo.FindByID(ctx, tx, request.ServiceID)
		if err != nil {
			return err
		}
		if svc == nil {
			return amountchangedomain.ErrServiceNotFound
		}

		result, err := deduction.Compute(s.policy, *svc, request.RequestedAmount)
		if err != nil {
			if errors.Is(err, deduction.ErrZeroServicePrice) {
				return amountchangedomain.ErrZeroServicePrice
			}
			return err
		}

		now := s.clock.Now()
		if err := s.serviceRepo.UpdateDeduction(ctx, tx, svc.ID, result.AmountPaidToAdmin, result.DeductionValue, now); err != nil {
			return err
		}
		if err := s.repo.MarkApproved(ctx, tx, request.ID, now); err != nil {
			return err
		}

		notification := &notificationdomain.Notification{
			ID:          s.genID.Generate(),
			MerchantID:  request.ProviderID,
			Message:     fmt.Sprintf("Admin has approved your amount change request for service [%s].", request.ServiceID),
			RedirectURL: providerRedirectURL,
			SenderType:  notificationdomain.SenderTypeAdmin,
			ServiceID:   request.ServiceID,
			Kind:        "ALERT",
			CreatedAt:   now,
		}
		if err := s.notifications.Insert(ctx, tx, notification); err != nil {
			return err
		}

		if !result.MerchantPercentage.IsZero() {
			s.log.Info("amount change request approved",
				zap.String("request_id", request.ID.String()),
				zap.String("merchant_percentage", result.MerchantPercentage.StringFixed(2)),
				zap.String("deduction_value", result.DeductionValue.String()),
			)
		}

		resp = &amountchangedomain.ApproveResponse{
			RequestID:      request.ID.String(),
			DeductionValue: result.DeductionValue,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Reject implements domain.Service.
func (s *Service) Reject(ctx context.Context, rawID string, reason string) error {
	id, err := s.parseID(rawID, amountchangedomain.ErrInvalidRequest)
	if err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return amountchangedomain.ErrInvalidReason
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if request == nil {
			return amountchangedomain.ErrRequestNotFound
		}
		if request.Status != amountchangedomain.RequestStatusPending {
			return amountchangedomain.ErrRequestNotPending
		}

		now := s.clock.Now()
		if err := s.repo.MarkRejected(ctx, tx, request.ID, reason, now); err != nil {
			return err
		}

		notification := &notificationdomain.Notification{
			ID:          s.genID.Generate(),
			MerchantID:  request.ProviderID,
			Message:     fmt.Sprintf("Amount change request rejected. Reason: %s for service [%s].", reason, request.ServiceID),
			RedirectURL: providerRedirectURL,
			SenderType:  notificationdomain.SenderTypeAdmin,
			ServiceID:   request.ServiceID,
			Kind:        "ALERT",
			CreatedAt:   now,
		}
		if err := s.notifications.Insert(ctx, tx, notification); err != nil {
			return err
		}

		s.log.Info("amount change request rejected",
			zap.String("request_id", request.ID.String()),
			zap.String("reason", reason),
		)
		return nil
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
