package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	slabdomain "github.com/smallbiznis/smartcenter/internal/slab/domain"
)

func (s *Server) ListSlabs(c *gin.Context) {
	resp, err := s.slabSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSlabByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.slabSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateSlab(c *gin.Context) {
	var req slabdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.slabSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateSlab(c *gin.Context) {
	var req slabdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.slabSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteSlab(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.slabSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) GetApplicableSlab(c *gin.Context) {
	amount, ok := amountQuery(c)
	if !ok {
		return
	}

	resp, err := s.slabSvc.ResolveApplicable(c.Request.Context(), amount)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDefaultApplicableSlab(c *gin.Context) {
	amount, ok := amountQuery(c)
	if !ok {
		return
	}

	resp, err := s.slabSvc.ResolveDefault(c.Request.Context(), amount)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetMembershipApplicableSlab(c *gin.Context) {
	amount, ok := amountQuery(c)
	if !ok {
		return
	}

	resp, err := s.slabSvc.ResolveForMerchant(c.Request.Context(), slabdomain.ResolveRequest{
		Amount:     amount,
		MerchantID: strings.TrimSpace(c.Query("merchant_id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func amountQuery(c *gin.Context) (decimal.Decimal, bool) {
	raw := strings.TrimSpace(c.Query("amount"))
	if raw == "" {
		AbortWithError(c, newValidationError("amount", "required", "amount is required"))
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		AbortWithError(c, newValidationError("amount", "invalid", "amount must be a number"))
		return decimal.Zero, false
	}
	return amount, true
}

func isSlabValidationError(err error) bool {
	switch err {
	case slabdomain.ErrInvalidAmount,
		slabdomain.ErrInvalidLimits,
		slabdomain.ErrInvalidName,
		slabdomain.ErrInvalidID,
		slabdomain.ErrInvalidMerchant:
		return true
	default:
		return false
	}
}
