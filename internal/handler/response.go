package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gstims/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondAccepted sends a 202 response for work handed to the background queue.
func RespondAccepted(c *gin.Context, data interface{}) {
	c.JSON(http.StatusAccepted, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "INVOICE_NOT_FOUND", "inward supply not found"
	case errors.Is(err, domain.ErrPurchaseNotFound):
		return http.StatusNotFound, "PURCHASE_NOT_FOUND", "purchase invoice not found"
	case errors.Is(err, domain.ErrInvalidAction):
		return http.StatusBadRequest, "INVALID_ACTION", "action must be one of No Action, Accepted, Rejected, Pending"
	case errors.Is(err, domain.ErrAlreadyLinked):
		return http.StatusConflict, "ALREADY_LINKED", "inward supply is already linked to a purchase invoice"
	case errors.Is(err, domain.ErrReturnLogNotFound):
		return http.StatusPreconditionFailed, "RETURN_LOG_NOT_FOUND", "please download invoices before uploading"
	case errors.Is(err, domain.ErrRequestInProgress):
		return http.StatusConflict, "REQUEST_IN_PROGRESS", "a request of this kind is already in progress for this GSTIN"
	case errors.Is(err, domain.ErrOTPRequired):
		return http.StatusUnauthorized, "OTP_REQUIRED", "portal session expired; re-authenticate with OTP"
	case errors.Is(err, domain.ErrPortalRequest):
		return http.StatusBadGateway, "PORTAL_ERROR", "the tax portal rejected the request"
	case errors.Is(err, domain.ErrInvalidPeriod):
		return http.StatusBadRequest, "INVALID_PERIOD", "period must be MMYYYY and not earlier than 072017"
	case errors.Is(err, domain.ErrIntegrationRequestNotFound):
		return http.StatusNotFound, "INTEGRATION_REQUEST_NOT_FOUND", "archived upload payload not found"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
