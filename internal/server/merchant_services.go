package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	merchantservicedomain "github.com/smallbiznis/smartcenter/internal/merchantservice/domain"
)

func (s *Server) ListMerchantServices(c *gin.Context) {
	merchantID := strings.TrimSpace(c.Query("merchant_id"))
	resp, err := s.merchantServiceSvc.ListByMerchant(c.Request.Context(), merchantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetMerchantServiceByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.merchantServiceSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateMerchantService(c *gin.Context) {
	var req merchantservicedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.merchantServiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isMerchantServiceValidationError(err error) bool {
	switch err {
	case merchantservicedomain.ErrInvalidMerchant,
		merchantservicedomain.ErrInvalidServiceType,
		merchantservicedomain.ErrInvalidPrice,
		merchantservicedomain.ErrInvalidDeductionType,
		merchantservicedomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
