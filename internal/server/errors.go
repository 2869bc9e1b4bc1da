package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	amountchangedomain "github.com/smallbiznis/smartcenter/internal/amountchange/domain"
	membershipdomain "github.com/smallbiznis/smartcenter/internal/membership/domain"
	merchantservicedomain "github.com/smallbiznis/smartcenter/internal/merchantservice/domain"
	notificationdomain "github.com/smallbiznis/smartcenter/internal/notification/domain"
	slabdomain "github.com/smallbiznis/smartcenter/internal/slab/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	}

	switch {
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isSlabValidationError(err),
		isMembershipValidationError(err),
		isMerchantServiceValidationError(err),
		isAmountChangeValidationError(err),
		isPayoutValidationError(err),
		isNotificationValidationError(err):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, slabdomain.ErrSlabNotFound),
		errors.Is(err, slabdomain.ErrNoApplicableSlab),
		errors.Is(err, membershipdomain.ErrPlanNotFound),
		errors.Is(err, membershipdomain.ErrNoActiveMembership),
		errors.Is(err, merchantservicedomain.ErrServiceNotFound),
		errors.Is(err, amountchangedomain.ErrRequestNotFound),
		errors.Is(err, amountchangedomain.ErrServiceNotFound),
		errors.Is(err, notificationdomain.ErrNotificationNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, membershipdomain.ErrActivationConflict),
		errors.Is(err, membershipdomain.ErrActivationInProgress),
		errors.Is(err, amountchangedomain.ErrRequestNotPending),
		errors.Is(err, amountchangedomain.ErrZeroServicePrice):
		return true
	default:
		return false
	}
}
