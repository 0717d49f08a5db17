package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appsupplier "github.com/momento/fulfillment/internal/application/supplier"
	"github.com/momento/fulfillment/internal/domain/shared"
	"github.com/momento/fulfillment/internal/domain/supplier"
	"github.com/momento/fulfillment/internal/interfaces/http/dto"
)

type mockSupplierRepo struct {
	mock.Mock
}

func (m *mockSupplierRepo) FindByID(ctx context.Context, id uuid.UUID) (*supplier.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supplier.Supplier), args.Error(1)
}

func (m *mockSupplierRepo) FindByCode(ctx context.Context, code string) (*supplier.Supplier, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supplier.Supplier), args.Error(1)
}

func (m *mockSupplierRepo) FindAll(ctx context.Context, filter shared.Filter) ([]supplier.Supplier, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]supplier.Supplier), args.Error(1)
}

func (m *mockSupplierRepo) FindActive(ctx context.Context) ([]supplier.Supplier, error) {
	args := m.Called(ctx)
	return args.Get(0).([]supplier.Supplier), args.Error(1)
}

func (m *mockSupplierRepo) Save(ctx context.Context, s *supplier.Supplier) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockSupplierRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSupplierRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockSupplierRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

type mockPolicyRepo struct {
	mock.Mock
}

func (m *mockPolicyRepo) FindByShopAndSupplier(ctx context.Context, shopID, supplierID uuid.UUID) (*supplier.ShopSupplierPolicy, error) {
	args := m.Called(ctx, shopID, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supplier.ShopSupplierPolicy), args.Error(1)
}

func (m *mockPolicyRepo) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]supplier.ShopSupplierPolicy, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).([]supplier.ShopSupplierPolicy), args.Error(1)
}

func (m *mockPolicyRepo) Upsert(ctx context.Context, policy *supplier.ShopSupplierPolicy) error {
	args := m.Called(ctx, policy)
	return args.Error(0)
}

type mockSkuMappingRepo struct {
	mock.Mock
}

func (m *mockSkuMappingRepo) FindByVariant(ctx context.Context, variantID string) ([]supplier.SkuMapping, error) {
	args := m.Called(ctx, variantID)
	return args.Get(0).([]supplier.SkuMapping), args.Error(1)
}

func (m *mockSkuMappingRepo) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]supplier.SkuMapping, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).([]supplier.SkuMapping), args.Error(1)
}

func (m *mockSkuMappingRepo) UpsertBatch(ctx context.Context, mappings []supplier.SkuMapping) error {
	args := m.Called(ctx, mappings)
	return args.Error(0)
}

func newSupplierTestRouter(supplierRepo *mockSupplierRepo, policyRepo *mockPolicyRepo, mappingRepo *mockSkuMappingRepo) *gin.Engine {
	registry := appsupplier.NewRegistryService(supplierRepo, policyRepo, mappingRepo)
	h := NewSupplierHandler(registry, nil)

	engine := gin.New()
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)
	return engine
}

func TestSupplierHandlerGet(t *testing.T) {
	supplierRepo := new(mockSupplierRepo)
	router := newSupplierTestRouter(supplierRepo, new(mockPolicyRepo), new(mockSkuMappingRepo))

	sup, err := supplier.New("acme", "Acme Dropship", supplier.AuthTypeAPIKey)
	require.NoError(t, err)

	t.Run("returns supplier", func(t *testing.T) {
		supplierRepo.On("FindByID", mock.Anything, sup.ID).Return(sup, nil).Once()

		req := httptest.NewRequest("GET", "/api/v1/suppliers/"+sup.ID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "acme", data["code"])
		supplierRepo.AssertExpectations(t)
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/suppliers/not-a-uuid", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps not found to 404", func(t *testing.T) {
		missing := uuid.New()
		supplierRepo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound).Once()

		req := httptest.NewRequest("GET", "/api/v1/suppliers/"+missing.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})
}

func TestSupplierHandlerCreate(t *testing.T) {
	t.Run("creates supplier", func(t *testing.T) {
		supplierRepo := new(mockSupplierRepo)
		router := newSupplierTestRouter(supplierRepo, new(mockPolicyRepo), new(mockSkuMappingRepo))

		supplierRepo.On("ExistsByCode", mock.Anything, "acme").Return(false, nil).Once()
		supplierRepo.On("Save", mock.Anything, mock.AnythingOfType("*supplier.Supplier")).Return(nil).Once()

		body := bytes.NewBufferString(`{"code":"acme","name":"Acme Dropship","auth_type":"api_key"}`)
		req := httptest.NewRequest("POST", "/api/v1/suppliers", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		supplierRepo.AssertExpectations(t)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		router := newSupplierTestRouter(new(mockSupplierRepo), new(mockPolicyRepo), new(mockSkuMappingRepo))

		body := bytes.NewBufferString(`{"code":"acme"}`)
		req := httptest.NewRequest("POST", "/api/v1/suppliers", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps duplicate code to 409", func(t *testing.T) {
		supplierRepo := new(mockSupplierRepo)
		router := newSupplierTestRouter(supplierRepo, new(mockPolicyRepo), new(mockSkuMappingRepo))

		supplierRepo.On("ExistsByCode", mock.Anything, "acme").Return(true, nil).Once()

		body := bytes.NewBufferString(`{"code":"acme","name":"Acme Dropship"}`)
		req := httptest.NewRequest("POST", "/api/v1/suppliers", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestSupplierHandlerTransitions(t *testing.T) {
	supplierRepo := new(mockSupplierRepo)
	router := newSupplierTestRouter(supplierRepo, new(mockPolicyRepo), new(mockSkuMappingRepo))

	sup, err := supplier.New("acme", "Acme Dropship", supplier.AuthTypeAPIKey)
	require.NoError(t, err)

	supplierRepo.On("FindByID", mock.Anything, sup.ID).Return(sup, nil).Once()
	supplierRepo.On("Save", mock.Anything, sup).Return(nil).Once()

	req := httptest.NewRequest("POST", "/api/v1/suppliers/"+sup.ID.String()+"/pause", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, supplier.StatusPaused, sup.Status)
	supplierRepo.AssertExpectations(t)
}
