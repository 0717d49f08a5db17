package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momento/fulfillment/internal/domain/shared"
	"github.com/momento/fulfillment/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := NewBaseHandler(nil)
	c, w := newTestContext(t)

	h.Success(c, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandlerCreated(t *testing.T) {
	h := NewBaseHandler(nil)
	c, w := newTestContext(t)

	h.Created(c, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestBaseHandlerAccepted(t *testing.T) {
	h := NewBaseHandler(nil)
	c, w := newTestContext(t)

	h.Accepted(c, gin.H{"status": "scheduled"})

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestBaseHandlerError(t *testing.T) {
	h := NewBaseHandler(nil)
	c, w := newTestContext(t)
	c.Set("request_id", "req-7")

	h.Error(c, dto.ErrCodeNotFound, "no such supplier")

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "req-7", resp.Error.RequestID)
}

func TestHandleDomainError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"duplicate key", shared.ErrDuplicateKey, http.StatusConflict, dto.ErrCodeAlreadyExists},
		{"invalid state", shared.ErrInvalidState, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState},
		{"domain validation", shared.NewDomainError("INVALID_QUANTITY", "quantity must be positive"), http.StatusBadRequest, dto.ErrCodeInvalidInput},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewBaseHandler(nil)
			c, w := newTestContext(t)

			h.HandleDomainError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCode, decodeResponse(t, w).Error.Code)
		})
	}
}

func TestGetShopID(t *testing.T) {
	t.Run("valid header", func(t *testing.T) {
		c, _ := newTestContext(t)
		shopID := uuid.New()
		c.Request.Header.Set("X-Shop-ID", shopID.String())

		got, err := getShopID(c)
		require.NoError(t, err)
		assert.Equal(t, shopID, got)
	})

	t.Run("missing header", func(t *testing.T) {
		c, _ := newTestContext(t)
		_, err := getShopID(c)
		assert.Error(t, err)
	})

	t.Run("malformed header", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Request.Header.Set("X-Shop-ID", "not-a-uuid")
		_, err := getShopID(c)
		assert.Error(t, err)
	})
}
