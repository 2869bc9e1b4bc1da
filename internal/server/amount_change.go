package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	amountchangedomain "github.com/smallbiznis/smartcenter/internal/amountchange/domain"
)

func (s *Server) SubmitAmountChangeRequest(c *gin.Context) {
	var req amountchangedomain.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.amountChangeSvc.Submit(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetAmountChangeRequestByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.amountChangeSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAmountChangeRequests(c *gin.Context) {
	providerID := strings.TrimSpace(c.Query("provider_id"))
	resp, err := s.amountChangeSvc.ListByProvider(c.Request.Context(), providerID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AmountChangeRequestPendingExists(c *gin.Context) {
	serviceID := strings.TrimSpace(c.Query("service_id"))
	providerID := strings.TrimSpace(c.Query("provider_id"))

	exists, err := s.amountChangeSvc.PendingExists(c.Request.Context(), serviceID, providerID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"exists": exists}})
}

func (s *Server) ApproveAmountChangeRequest(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.amountChangeSvc.Approve(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RejectAmountChangeRequest(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if err := s.amountChangeSvc.Reject(c.Request.Context(), id, req.Reason); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "rejected"}})
}

func isAmountChangeValidationError(err error) bool {
	switch err {
	case amountchangedomain.ErrInvalidService,
		amountchangedomain.ErrInvalidProvider,
		amountchangedomain.ErrInvalidAmount,
		amountchangedomain.ErrInvalidRequest,
		amountchangedomain.ErrInvalidReason:
		return true
	default:
		return false
	}
}
