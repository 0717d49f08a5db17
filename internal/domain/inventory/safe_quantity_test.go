package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeQuantity(t *testing.T) {
	tests := []struct {
		name   string
		rawQty int
		buffer int
		want   int
	}{
		{"above buffer", 20, 5, 15},
		{"exactly buffer", 5, 5, 0},
		{"below buffer floors at zero", 3, 5, 0},
		{"zero stock", 0, 5, 0},
		{"zero buffer passes through", 7, 0, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeQuantity(tt.rawQty, tt.buffer))
		})
	}
}

func TestSupplierOfferValidate(t *testing.T) {
	supplierID := uuid.New()

	t.Run("valid offer", func(t *testing.T) {
		offer, err := NewSupplierOffer(supplierID, "SUP-001", 10, decimal.NewFromFloat(12.5), "USD", 3, "us")
		require.NoError(t, err)
		assert.Equal(t, "SUP-001", offer.SupplierSKU)
		assert.False(t, offer.FetchedAt.IsZero())
	})

	t.Run("missing SKU", func(t *testing.T) {
		_, err := NewSupplierOffer(supplierID, "", 10, decimal.NewFromFloat(12.5), "USD", 3, "us")
		assert.Error(t, err)
	})

	t.Run("negative quantity", func(t *testing.T) {
		_, err := NewSupplierOffer(supplierID, "SUP-001", -1, decimal.NewFromFloat(12.5), "USD", 3, "us")
		assert.Error(t, err)
	})

	t.Run("negative cost", func(t *testing.T) {
		_, err := NewSupplierOffer(supplierID, "SUP-001", 10, decimal.NewFromFloat(-0.01), "USD", 3, "us")
		assert.Error(t, err)
	})

	t.Run("bad currency code", func(t *testing.T) {
		_, err := NewSupplierOffer(supplierID, "SUP-001", 10, decimal.NewFromFloat(12.5), "US", 3, "us")
		assert.Error(t, err)
	})
}
