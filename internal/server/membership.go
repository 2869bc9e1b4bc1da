package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	membershipdomain "github.com/smallbiznis/smartcenter/internal/membership/domain"
)

func (s *Server) ListMembershipPlans(c *gin.Context) {
	resp, err := s.membershipSvc.ListPlans(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetMembershipPlanByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.membershipSvc.GetPlan(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateMembershipPlan(c *gin.Context) {
	var req membershipdomain.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.membershipSvc.CreatePlan(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AssignMembershipPlanSlabs(c *gin.Context) {
	var req struct {
		SlabIDs []string `json:"slab_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	planID := strings.TrimSpace(c.Param("id"))
	if err := s.membershipSvc.AssignSlabs(c.Request.Context(), planID, req.SlabIDs); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) ActivateMembership(c *gin.Context) {
	var req membershipdomain.ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.membershipSvc.Activate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetActiveMembership(c *gin.Context) {
	merchantID := strings.TrimSpace(c.Query("merchant_id"))
	resp, err := s.membershipSvc.GetActive(c.Request.Context(), merchantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isMembershipValidationError(err error) bool {
	switch err {
	case membershipdomain.ErrInvalidMerchant,
		membershipdomain.ErrInvalidPlan,
		membershipdomain.ErrInvalidPlanName,
		membershipdomain.ErrInvalidDuration,
		membershipdomain.ErrInvalidAmount,
		membershipdomain.ErrInvalidSlabID:
		return true
	default:
		return false
	}
}
