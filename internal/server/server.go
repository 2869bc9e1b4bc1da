package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/smartcenter/internal/amountchange"
	amountchangedomain "github.com/smallbiznis/smartcenter/internal/amountchange/domain"
	"github.com/smallbiznis/smartcenter/internal/config"
	"github.com/smallbiznis/smartcenter/internal/membership"
	membershipdomain "github.com/smallbiznis/smartcenter/internal/membership/domain"
	"github.com/smallbiznis/smartcenter/internal/merchantservice"
	merchantservicedomain "github.com/smallbiznis/smartcenter/internal/merchantservice/domain"
	"github.com/smallbiznis/smartcenter/internal/notification"
	notificationdomain "github.com/smallbiznis/smartcenter/internal/notification/domain"
	obsmetrics "github.com/smallbiznis/smartcenter/internal/observability/metrics"
	"github.com/smallbiznis/smartcenter/internal/payout"
	payoutdomain "github.com/smallbiznis/smartcenter/internal/payout/domain"
	"github.com/smallbiznis/smartcenter/internal/ratelimit"
	"github.com/smallbiznis/smartcenter/internal/slab"
	slabdomain "github.com/smallbiznis/smartcenter/internal/slab/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	obsmetrics.Module,
	ratelimit.Module,
	notification.Module,
	membership.Module,
	slab.Module,
	merchantservice.Module,
	amountchange.Module,
	payout.Module,
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB

	slabSvc            slabdomain.Service
	membershipSvc      membershipdomain.Service
	merchantServiceSvc merchantservicedomain.Service
	amountChangeSvc    amountchangedomain.Service
	payoutSvc          payoutdomain.Service
	notificationSvc    notificationdomain.Service
}

type ServerParams struct {
	fx.In

	Gin *gin.Engine
	Cfg config.Config
	DB  *gorm.DB

	SlabSvc            slabdomain.Service
	MembershipSvc      membershipdomain.Service
	MerchantServiceSvc merchantservicedomain.Service
	AmountChangeSvc    amountchangedomain.Service
	PayoutSvc          payoutdomain.Service
	NotificationSvc    notificationdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:             p.Gin,
		cfg:                p.Cfg,
		db:                 p.DB,
		slabSvc:            p.SlabSvc,
		membershipSvc:      p.MembershipSvc,
		merchantServiceSvc: p.MerchantServiceSvc,
		amountChangeSvc:    p.AmountChangeSvc,
		payoutSvc:          p.PayoutSvc,
		notificationSvc:    p.NotificationSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Slabs --------
	api.GET("/slabs", s.ListSlabs)
	api.POST("/slabs", s.CreateSlab)
	api.GET("/slabs/applicable", s.GetApplicableSlab)
	api.GET("/slabs/default_applicable", s.GetDefaultApplicableSlab)
	api.GET("/slabs/membership_applicable", s.GetMembershipApplicableSlab)
	api.GET("/slabs/:id", s.GetSlabByID)
	api.POST("/slabs/:id", s.UpdateSlab)
	api.DELETE("/slabs/:id", s.DeleteSlab)

	// -------- Membership --------
	api.GET("/membership_plans", s.ListMembershipPlans)
	api.POST("/membership_plans", s.CreateMembershipPlan)
	api.GET("/membership_plans/:id", s.GetMembershipPlanByID)
	api.PUT("/membership_plans/:id/slabs", s.AssignMembershipPlanSlabs)
	api.POST("/memberships/activate", s.ActivateMembership)
	api.GET("/memberships/active", s.GetActiveMembership)

	// -------- Merchant services --------
	api.GET("/merchant_services", s.ListMerchantServices)
	api.POST("/merchant_services", s.CreateMerchantService)
	api.GET("/merchant_services/:id", s.GetMerchantServiceByID)

	// -------- Amount change requests --------
	api.GET("/amount_change_requests", s.ListAmountChangeRequests)
	api.POST("/amount_change_requests", s.SubmitAmountChangeRequest)
	api.GET("/amount_change_requests/pending_exists", s.AmountChangeRequestPendingExists)
	api.GET("/amount_change_requests/:id", s.GetAmountChangeRequestByID)
	api.POST("/amount_change_requests/:id/approve", s.ApproveAmountChangeRequest)
	api.POST("/amount_change_requests/:id/reject", s.RejectAmountChangeRequest)

	// -------- Payouts --------
	api.POST("/payments", s.RecordPayment)
	api.GET("/payouts/transactions", s.ListPayoutTransactions)

	// -------- Notifications --------
	api.GET("/notifications", s.ListNotifications)
	api.POST("/notifications/:id/read", s.MarkNotificationRead)
}
