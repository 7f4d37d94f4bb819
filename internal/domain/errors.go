package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")

	ErrInvoiceNotFound  = errors.New("inward supply not found")
	ErrPurchaseNotFound = errors.New("purchase invoice not found")
	ErrInvalidAction    = errors.New("invalid ims action")
	ErrAlreadyLinked    = errors.New("inward supply is already linked to a purchase invoice")

	// ErrReturnLogNotFound means invoices were never downloaded for the GSTIN.
	ErrReturnLogNotFound = errors.New("please download invoices before uploading")
	// ErrRequestInProgress blocks duplicate concurrent submissions.
	ErrRequestInProgress = errors.New("a request is already in progress for this GSTIN")

	ErrOTPRequired   = errors.New("portal authentication required")
	ErrPortalRequest = errors.New("portal request failed")
	ErrInvalidPeriod = errors.New("invalid return period")

	// ErrIntegrationRequestNotFound means the archived upload payload needed
	// to reconcile state after processing is missing.
	ErrIntegrationRequestNotFound = errors.New("integration request for upload not found")
)
