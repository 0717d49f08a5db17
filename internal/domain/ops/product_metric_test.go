package ops

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductMetric(t *testing.T) {
	shopID := uuid.New()

	t.Run("return rate is zero with no orders", func(t *testing.T) {
		metric, err := NewProductMetric(shopID, "variant_1")
		require.NoError(t, err)
		assert.True(t, metric.ReturnRate().IsZero())
		assert.False(t, metric.ShouldSuppress())
	})

	t.Run("high return rate trips the kill switch", func(t *testing.T) {
		metric, err := NewProductMetric(shopID, "variant_1")
		require.NoError(t, err)

		for i := 0; i < 10; i++ {
			metric.RecordOrder()
		}
		for i := 0; i < 2; i++ {
			metric.RecordReturn()
		}

		assert.Equal(t, "0.2", metric.ReturnRate().String())
		assert.True(t, metric.ShouldSuppress())
	})

	t.Run("rate at the threshold does not suppress", func(t *testing.T) {
		metric, err := NewProductMetric(shopID, "variant_1")
		require.NoError(t, err)

		for i := 0; i < 10; i++ {
			metric.RecordOrder()
		}
		metric.RecordReturn()

		assert.False(t, metric.ShouldSuppress())
	})

	t.Run("suppress and unsuppress toggle the flag", func(t *testing.T) {
		metric, err := NewProductMetric(shopID, "variant_1")
		require.NoError(t, err)

		metric.Suppress()
		assert.True(t, metric.Suppressed)
		metric.Unsuppress()
		assert.False(t, metric.Suppressed)
	})

	t.Run("rejects empty variant", func(t *testing.T) {
		_, err := NewProductMetric(shopID, "")
		assert.Error(t, err)
	})
}
