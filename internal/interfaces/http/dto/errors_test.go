package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodeNotFound))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(ErrCodeAlreadyExists))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeInvalidState))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("SOMETHING_UNKNOWN"))
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{"not found", "NOT_FOUND", ErrCodeNotFound},
		{"duplicate key", "DUPLICATE_KEY", ErrCodeAlreadyExists},
		{"invalid state", "INVALID_STATE", ErrCodeInvalidState},
		{"concurrency conflict", "CONCURRENCY_CONFLICT", ErrCodeConflict},
		{"already normalized", ErrCodeNotFound, ErrCodeNotFound},
		{"validation prefix", "INVALID_AUTH_TYPE", ErrCodeInvalidInput},
		{"quantity prefix", "INVALID_QUANTITY", ErrCodeInvalidInput},
		{"unknown", "SOMETHING_ELSE", ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.code))
		})
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "supplier not found", "req-123")
	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "supplier not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}
