// Package server provides the HTTP REST API for page generation and bulk jobs.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/parkerjr2/seogen/internal/license"
)

// ErrLicenseNotFound indicates the supplied license key is unknown
type ErrLicenseNotFound struct {
	Key string
}

func (e *ErrLicenseNotFound) Error() string {
	return "license key not found"
}

// ErrLicenseInactive indicates the key or its subscription is disabled
type ErrLicenseInactive struct{}

func (e *ErrLicenseInactive) Error() string {
	return "license is not active"
}

// ErrQuotaExceeded indicates a subscription has hit a generation ceiling.
// Stats carries the usage snapshot so the response can show the caller
// where they stand.
type ErrQuotaExceeded struct {
	Reason string
	Stats  license.Stats
}

func (e *ErrQuotaExceeded) Error() string {
	return e.Reason
}

// ErrInvalidCredentials indicates invalid admin login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid username or password"
}

// ErrJobNotFound indicates the bulk job does not exist
type ErrJobNotFound struct {
	JobID uuid.UUID
}

func (e *ErrJobNotFound) Error() string {
	return fmt.Sprintf("bulk job not found: %s", e.JobID)
}

// ErrJobLicenseMismatch indicates the license key does not own the job
type ErrJobLicenseMismatch struct{}

func (e *ErrJobLicenseMismatch) Error() string {
	return "license key does not match this job"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrQuotaExceeded:
		return http.StatusPaymentRequired
	case *ErrLicenseNotFound, *ErrLicenseInactive, *ErrJobLicenseMismatch:
		return http.StatusForbidden
	case *ErrJobNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
