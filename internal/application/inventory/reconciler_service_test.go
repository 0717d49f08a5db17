package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/inventory"
	"github.com/momento/fulfillment/internal/domain/shared"
	"github.com/momento/fulfillment/internal/domain/supplier"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockOfferRepository is a mock implementation of inventory.OfferRepository
type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) UpsertBatch(ctx context.Context, offers []inventory.SupplierOffer) error {
	args := m.Called(ctx, offers)
	return args.Error(0)
}

func (m *MockOfferRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]inventory.SupplierOffer, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).([]inventory.SupplierOffer), args.Error(1)
}

func (m *MockOfferRepository) FindBySupplierAndSKU(ctx context.Context, supplierID uuid.UUID, supplierSKU string) (*inventory.SupplierOffer, error) {
	args := m.Called(ctx, supplierID, supplierSKU)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.SupplierOffer), args.Error(1)
}

func (m *MockOfferRepository) FindMappedBySupplier(ctx context.Context, supplierID uuid.UUID) ([]inventory.MappedOffer, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).([]inventory.MappedOffer), args.Error(1)
}

func (m *MockOfferRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSupplierRepository is a mock implementation of supplier.Repository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*supplier.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supplier.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByCode(ctx context.Context, code string) (*supplier.Supplier, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supplier.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]supplier.Supplier, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]supplier.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindActive(ctx context.Context) ([]supplier.Supplier, error) {
	args := m.Called(ctx)
	return args.Get(0).([]supplier.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, s *supplier.Supplier) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockPolicyRepository is a mock implementation of supplier.PolicyRepository
type MockPolicyRepository struct {
	mock.Mock
}

func (m *MockPolicyRepository) FindByShopAndSupplier(ctx context.Context, shopID, supplierID uuid.UUID) (*supplier.ShopSupplierPolicy, error) {
	args := m.Called(ctx, shopID, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supplier.ShopSupplierPolicy), args.Error(1)
}

func (m *MockPolicyRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]supplier.ShopSupplierPolicy, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).([]supplier.ShopSupplierPolicy), args.Error(1)
}

func (m *MockPolicyRepository) Upsert(ctx context.Context, policy *supplier.ShopSupplierPolicy) error {
	args := m.Called(ctx, policy)
	return args.Error(0)
}

func newService() (*ReconcilerService, *MockOfferRepository, *MockSupplierRepository, *MockPolicyRepository) {
	offerRepo := new(MockOfferRepository)
	supplierRepo := new(MockSupplierRepository)
	policyRepo := new(MockPolicyRepository)
	svc := NewReconcilerService(offerRepo, supplierRepo, policyRepo, zap.NewNop())
	return svc, offerRepo, supplierRepo, policyRepo
}

func activeSupplier(t *testing.T) *supplier.Supplier {
	t.Helper()
	sup, err := supplier.New("acme", "Acme", supplier.AuthTypeAPIKey)
	require.NoError(t, err)
	return sup
}

// =============================================================================
// Tests
// =============================================================================

func TestReconcilerService_IngestOffers(t *testing.T) {
	ctx := context.Background()

	t.Run("upserts valid offers", func(t *testing.T) {
		svc, offerRepo, supplierRepo, _ := newService()
		sup := activeSupplier(t)

		supplierRepo.On("FindByID", ctx, sup.ID).Return(sup, nil)
		offerRepo.On("UpsertBatch", ctx, mock.AnythingOfType("[]inventory.SupplierOffer")).Return(nil)

		result, err := svc.IngestOffers(ctx, sup.ID, IngestOffersRequest{
			Offers: []OfferItem{
				{SupplierSKU: "SKU-1", Qty: 10, Cost: decimal.NewFromInt(5), Currency: "USD"},
				{SupplierSKU: "SKU-2", Qty: 0, Cost: decimal.NewFromInt(7), Currency: "USD"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 2, result.Received)
		assert.Equal(t, 2, result.Upserted)
		assert.Empty(t, result.Skipped)
		assert.Zero(t, result.FailedBatches)
	})

	t.Run("skips malformed items and keeps the rest", func(t *testing.T) {
		svc, offerRepo, supplierRepo, _ := newService()
		sup := activeSupplier(t)

		supplierRepo.On("FindByID", ctx, sup.ID).Return(sup, nil)
		offerRepo.On("UpsertBatch", ctx, mock.MatchedBy(func(offers []inventory.SupplierOffer) bool {
			return len(offers) == 1 && offers[0].SupplierSKU == "SKU-OK"
		})).Return(nil)

		result, err := svc.IngestOffers(ctx, sup.ID, IngestOffersRequest{
			Offers: []OfferItem{
				{SupplierSKU: "SKU-OK", Qty: 10, Cost: decimal.NewFromInt(5), Currency: "USD"},
				{SupplierSKU: "SKU-NEG", Qty: -3, Cost: decimal.NewFromInt(5), Currency: "USD"},
				{SupplierSKU: "", Qty: 1, Cost: decimal.NewFromInt(5), Currency: "USD"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 3, result.Received)
		assert.Equal(t, 1, result.Upserted)
		assert.Len(t, result.Skipped, 2)
	})

	t.Run("writes in batches of 100 and isolates batch failures", func(t *testing.T) {
		svc, offerRepo, supplierRepo, _ := newService()
		sup := activeSupplier(t)

		items := make([]OfferItem, 250)
		for i := range items {
			items[i] = OfferItem{
				SupplierSKU: "SKU-" + uuid.NewString(),
				Qty:         1,
				Cost:        decimal.NewFromInt(1),
				Currency:    "USD",
			}
		}

		supplierRepo.On("FindByID", ctx, sup.ID).Return(sup, nil)
		// second batch fails, first and third still land
		offerRepo.On("UpsertBatch", ctx, mock.MatchedBy(func(offers []inventory.SupplierOffer) bool {
			return len(offers) == 100 && offers[0].SupplierSKU == items[0].SupplierSKU
		})).Return(nil).Once()
		offerRepo.On("UpsertBatch", ctx, mock.MatchedBy(func(offers []inventory.SupplierOffer) bool {
			return len(offers) == 100 && offers[0].SupplierSKU == items[100].SupplierSKU
		})).Return(errors.New("deadlock")).Once()
		offerRepo.On("UpsertBatch", ctx, mock.MatchedBy(func(offers []inventory.SupplierOffer) bool {
			return len(offers) == 50
		})).Return(nil).Once()

		result, err := svc.IngestOffers(ctx, sup.ID, IngestOffersRequest{Offers: items})

		require.NoError(t, err)
		assert.Equal(t, 150, result.Upserted)
		assert.Equal(t, 1, result.FailedBatches)
		offerRepo.AssertExpectations(t)
	})

	t.Run("rejects inactive supplier", func(t *testing.T) {
		svc, offerRepo, supplierRepo, _ := newService()
		sup := activeSupplier(t)
		require.NoError(t, sup.Deactivate())

		supplierRepo.On("FindByID", ctx, sup.ID).Return(sup, nil)

		_, err := svc.IngestOffers(ctx, sup.ID, IngestOffersRequest{
			Offers: []OfferItem{{SupplierSKU: "SKU-1", Qty: 1, Cost: decimal.NewFromInt(1), Currency: "USD"}},
		})

		assert.Error(t, err)
		offerRepo.AssertNotCalled(t, "UpsertBatch", mock.Anything, mock.Anything)
	})
}

func TestReconcilerService_ComputeSafeQuantities(t *testing.T) {
	ctx := context.Background()

	t.Run("applies default buffer and floors at zero", func(t *testing.T) {
		svc, offerRepo, _, _ := newService()
		supplierID := uuid.New()

		offerRepo.On("FindMappedBySupplier", ctx, supplierID).Return([]inventory.MappedOffer{
			{VariantID: "v1", SupplierSKU: "SKU-1", Qty: 12},
			{VariantID: "v2", SupplierSKU: "SKU-2", Qty: 3},
		}, nil)

		quantities, err := svc.ComputeSafeQuantities(ctx, supplierID)

		require.NoError(t, err)
		require.Len(t, quantities, 2)
		assert.Equal(t, 7, quantities[0].SafeQty)
		assert.Equal(t, 0, quantities[1].SafeQty)
	})

	t.Run("uses policy buffer for the shop", func(t *testing.T) {
		svc, offerRepo, _, policyRepo := newService()
		shopID := uuid.New()
		supplierID := uuid.New()

		policy, err := supplier.NewShopSupplierPolicy(shopID, supplierID, 10, decimal.Zero, true)
		require.NoError(t, err)

		policyRepo.On("FindByShopAndSupplier", ctx, shopID, supplierID).Return(policy, nil)
		offerRepo.On("FindMappedBySupplier", ctx, supplierID).Return([]inventory.MappedOffer{
			{VariantID: "v1", SupplierSKU: "SKU-1", Qty: 12},
		}, nil)

		quantities, err := svc.ComputeSafeQuantitiesForShop(ctx, shopID, supplierID)

		require.NoError(t, err)
		require.Len(t, quantities, 1)
		assert.Equal(t, 2, quantities[0].SafeQty)
	})

	t.Run("missing policy falls back to default buffer", func(t *testing.T) {
		svc, offerRepo, _, policyRepo := newService()
		shopID := uuid.New()
		supplierID := uuid.New()

		policyRepo.On("FindByShopAndSupplier", ctx, shopID, supplierID).Return(nil, shared.ErrNotFound)
		offerRepo.On("FindMappedBySupplier", ctx, supplierID).Return([]inventory.MappedOffer{
			{VariantID: "v1", SupplierSKU: "SKU-1", Qty: 12},
		}, nil)

		quantities, err := svc.ComputeSafeQuantitiesForShop(ctx, shopID, supplierID)

		require.NoError(t, err)
		require.Len(t, quantities, 1)
		assert.Equal(t, 7, quantities[0].SafeQty)
	})
}
