package dto

import (
	"net/http"
	"strings"
)

// Stable error codes returned to API clients.
const (
	ErrCodeValidationFailed = "ERR_VALIDATION_FAILED"
	ErrCodeInvalidInput     = "ERR_INVALID_INPUT"
	ErrCodeNotFound         = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists    = "ERR_ALREADY_EXISTS"
	ErrCodeInvalidState     = "ERR_INVALID_STATE"
	ErrCodeConflict         = "ERR_CONFLICT"
	ErrCodeUnauthorized     = "ERR_UNAUTHORIZED"
	ErrCodeForbidden        = "ERR_FORBIDDEN"
	ErrCodeRateLimited      = "ERR_RATE_LIMITED"
	ErrCodeInternal         = "ERR_INTERNAL"
	ErrCodeUnavailable      = "ERR_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps stable codes to HTTP status codes.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidationFailed: http.StatusBadRequest,
	ErrCodeInvalidInput:     http.StatusBadRequest,
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeAlreadyExists:    http.StatusConflict,
	ErrCodeConflict:         http.StatusConflict,
	ErrCodeInvalidState:     http.StatusUnprocessableEntity,
	ErrCodeUnauthorized:     http.StatusUnauthorized,
	ErrCodeForbidden:        http.StatusForbidden,
	ErrCodeRateLimited:      http.StatusTooManyRequests,
	ErrCodeInternal:         http.StatusInternalServerError,
	ErrCodeUnavailable:      http.StatusServiceUnavailable,
}

// GetHTTPStatus resolves a code to its HTTP status, defaulting to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping translates domain error codes into API codes.
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"DUPLICATE_KEY":        ErrCodeAlreadyExists,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT": ErrCodeConflict,
}

// NormalizeErrorCode maps a domain error code to its API code. Domain
// validation codes follow an INVALID_ prefix convention, so unknown
// codes with that prefix collapse to ErrCodeInvalidInput.
func NormalizeErrorCode(code string) string {
	if mapped, ok := domainErrorCodeMapping[code]; ok {
		return mapped
	}
	if _, ok := ErrorCodeHTTPStatus[code]; ok {
		return code
	}
	if strings.HasPrefix(code, "INVALID_") {
		return ErrCodeInvalidInput
	}
	return ErrCodeInternal
}
