package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	payoutdomain "github.com/smallbiznis/smartcenter/internal/payout/domain"
)

func (s *Server) RecordPayment(c *gin.Context) {
	var req payoutdomain.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.payoutSvc.RecordPayment(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPayoutTransactions(c *gin.Context) {
	resp, err := s.payoutSvc.AggregatePayouts(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isPayoutValidationError(err error) bool {
	switch err {
	case payoutdomain.ErrInvalidMerchant,
		payoutdomain.ErrInvalidService,
		payoutdomain.ErrInvalidAmount,
		payoutdomain.ErrInvalidPayoutMethod:
		return true
	default:
		return false
	}
}
