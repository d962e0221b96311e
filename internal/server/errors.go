package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	accountdomain "github.com/yemtakip/yemtakip/internal/account/domain"
	annotationdomain "github.com/yemtakip/yemtakip/internal/annotation/domain"
	carrierdomain "github.com/yemtakip/yemtakip/internal/carrier/domain"
	checkdomain "github.com/yemtakip/yemtakip/internal/check/domain"
	contactdomain "github.com/yemtakip/yemtakip/internal/contact/domain"
	deliverydomain "github.com/yemtakip/yemtakip/internal/delivery/domain"
	exportdomain "github.com/yemtakip/yemtakip/internal/export/domain"
	paymentdomain "github.com/yemtakip/yemtakip/internal/payment/domain"
	purchasedomain "github.com/yemtakip/yemtakip/internal/purchase/domain"
	reportdomain "github.com/yemtakip/yemtakip/internal/report/domain"
	saledomain "github.com/yemtakip/yemtakip/internal/sale/domain"
	trashdomain "github.com/yemtakip/yemtakip/internal/trash/domain"
	"gorm.io/gorm"
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
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
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
	case isContactValidationError(err),
		isAccountValidationError(err),
		isCarrierValidationError(err),
		isSaleValidationError(err),
		isPurchaseValidationError(err),
		isDeliveryValidationError(err),
		isPaymentValidationError(err),
		isCheckValidationError(err),
		errors.Is(err, annotationdomain.ErrInvalidEntity),
		errors.Is(err, annotationdomain.ErrInvalidKey),
		errors.Is(err, reportdomain.ErrInvalidContact),
		errors.Is(err, reportdomain.ErrInvalidDate),
		errors.Is(err, trashdomain.ErrUnknownTable),
		errors.Is(err, exportdomain.ErrUnknownTable):
		return true
	default:
		return false
	}
}

// Lifecycle violations answer 409: the request was well formed, the
// record just is not in a state that allows it.
func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, saledomain.ErrInvalidTransition),
		errors.Is(err, purchasedomain.ErrInvalidTransition),
		errors.Is(err, checkdomain.ErrInvalidTransition),
		errors.Is(err, checkdomain.ErrNotEndorsable),
		errors.Is(err, deliverydomain.ErrOrderCancelled),
		errors.Is(err, deliverydomain.ErrAlreadyDeleted),
		errors.Is(err, deliverydomain.ErrReturnExceedsLoad):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, contactdomain.ErrNotFound),
		errors.Is(err, carrierdomain.ErrNotFound),
		errors.Is(err, saledomain.ErrNotFound),
		errors.Is(err, saledomain.ErrNotDeleted),
		errors.Is(err, purchasedomain.ErrNotFound),
		errors.Is(err, purchasedomain.ErrNotDeleted),
		errors.Is(err, deliverydomain.ErrNotFound),
		errors.Is(err, deliverydomain.ErrNotDeleted),
		errors.Is(err, deliverydomain.ErrOrderNotFound),
		errors.Is(err, deliverydomain.ErrContactNotFound),
		errors.Is(err, paymentdomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrNotDeleted),
		errors.Is(err, paymentdomain.ErrContactNotFound),
		errors.Is(err, paymentdomain.ErrCarrierNotFound),
		errors.Is(err, checkdomain.ErrNotFound),
		errors.Is(err, checkdomain.ErrNotDeleted),
		errors.Is(err, annotationdomain.ErrNotFound),
		errors.Is(err, trashdomain.ErrNotFound),
		errors.Is(err, contactdomain.ErrNotDeleted),
		errors.Is(err, accountdomain.ErrAccountNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isContactValidationError(err error) bool {
	switch err {
	case contactdomain.ErrInvalidName,
		contactdomain.ErrInvalidType,
		contactdomain.ErrInvalidID,
		contactdomain.ErrInvalidLimit:
		return true
	default:
		return false
	}
}

func isAccountValidationError(err error) bool {
	switch err {
	case accountdomain.ErrInvalidContact,
		accountdomain.ErrInvalidAccount,
		accountdomain.ErrInvalidAmount,
		accountdomain.ErrInvalidType,
		accountdomain.ErrInvalidReference,
		accountdomain.ErrInvalidDate:
		return true
	default:
		return false
	}
}

func isCarrierValidationError(err error) bool {
	switch err {
	case carrierdomain.ErrInvalidCarrier,
		carrierdomain.ErrInvalidName,
		carrierdomain.ErrInvalidAmount,
		carrierdomain.ErrInvalidType,
		carrierdomain.ErrInvalidReference,
		carrierdomain.ErrInvalidPlate:
		return true
	default:
		return false
	}
}

func isSaleValidationError(err error) bool {
	switch err {
	case saledomain.ErrInvalidContact,
		saledomain.ErrInvalidProduct,
		saledomain.ErrInvalidQuantity,
		saledomain.ErrInvalidPrice,
		saledomain.ErrInvalidID,
		saledomain.ErrInvalidStatus,
		saledomain.ErrSameContact:
		return true
	default:
		return false
	}
}

func isPurchaseValidationError(err error) bool {
	switch err {
	case purchasedomain.ErrInvalidContact,
		purchasedomain.ErrInvalidProduct,
		purchasedomain.ErrInvalidQuantity,
		purchasedomain.ErrInvalidPrice,
		purchasedomain.ErrInvalidPricingModel,
		purchasedomain.ErrInvalidID,
		purchasedomain.ErrInvalidStatus:
		return true
	default:
		return false
	}
}

func isDeliveryValidationError(err error) bool {
	switch err {
	case deliverydomain.ErrInvalidID,
		deliverydomain.ErrInvalidOrder,
		deliverydomain.ErrInvalidDate,
		deliverydomain.ErrInvalidWeight,
		deliverydomain.ErrInvalidFreight,
		deliverydomain.ErrInvalidPayer,
		deliverydomain.ErrInvalidReturn:
		return true
	default:
		return false
	}
}

func isPaymentValidationError(err error) bool {
	switch err {
	case paymentdomain.ErrInvalidID,
		paymentdomain.ErrInvalidTarget,
		paymentdomain.ErrInvalidDirection,
		paymentdomain.ErrInvalidMethod,
		paymentdomain.ErrInvalidAmount,
		paymentdomain.ErrInvalidDate:
		return true
	default:
		return false
	}
}

func isCheckValidationError(err error) bool {
	switch err {
	case checkdomain.ErrInvalidID,
		checkdomain.ErrInvalidContact,
		checkdomain.ErrInvalidKind,
		checkdomain.ErrInvalidDirection,
		checkdomain.ErrInvalidAmount,
		checkdomain.ErrInvalidDate,
		checkdomain.ErrInvalidStatus,
		checkdomain.ErrSameContact:
		return true
	default:
		return false
	}
}

func validationErrorField(code string) string {
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}
