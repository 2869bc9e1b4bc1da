package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	notificationdomain "github.com/smallbiznis/smartcenter/internal/notification/domain"
	"github.com/smallbiznis/smartcenter/pkg/db/pagination"
)

func (s *Server) ListNotifications(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.notificationSvc.List(c.Request.Context(), notificationdomain.ListRequest{
		MerchantID: strings.TrimSpace(c.Query("merchant_id")),
		Pagination: page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) MarkNotificationRead(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.notificationSvc.MarkRead(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isNotificationValidationError(err error) bool {
	switch err {
	case notificationdomain.ErrInvalidMerchant,
		notificationdomain.ErrInvalidID,
		notificationdomain.ErrInvalidPageToken:
		return true
	default:
		return false
	}
}
