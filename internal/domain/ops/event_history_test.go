package ops

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventHistory(t *testing.T) {
	shopID := uuid.New()

	t.Run("routing decision round trip", func(t *testing.T) {
		poID := uuid.New()
		supplierID := uuid.New()

		event, err := NewEventHistory(shopID, "order_42", "system", RoutingDecisionMeta{
			PurchaseOrderID: poID,
			SupplierID:      supplierID,
			LineCount:       3,
			Reason:          "best effective cost",
		})
		require.NoError(t, err)
		assert.Equal(t, EventTypeRoutingDecision, event.EventType)
		assert.Equal(t, "order_42", event.EntityID)
		assert.Equal(t, "system", event.Actor)

		decoded, err := event.DecodedMeta()
		require.NoError(t, err)
		meta, ok := decoded.(RoutingDecisionMeta)
		require.True(t, ok)
		assert.Equal(t, poID, meta.PurchaseOrderID)
		assert.Equal(t, supplierID, meta.SupplierID)
		assert.Equal(t, 3, meta.LineCount)
		assert.Equal(t, "best effective cost", meta.Reason)
	})

	t.Run("score update round trip", func(t *testing.T) {
		event, err := NewEventHistory(shopID, uuid.New().String(), "scoring-job", ScoreUpdateMeta{
			OldScore: 100,
			NewScore: 80,
			Total:    10,
			Failures: 2,
		})
		require.NoError(t, err)

		decoded, err := event.DecodedMeta()
		require.NoError(t, err)
		meta, ok := decoded.(ScoreUpdateMeta)
		require.True(t, ok)
		assert.Equal(t, 100, meta.OldScore)
		assert.Equal(t, 80, meta.NewScore)
	})

	t.Run("kill switch round trip", func(t *testing.T) {
		event, err := NewEventHistory(shopID, "variant_7", "scoring-job", KillSwitchMeta{
			ReturnRate: decimal.NewFromFloat(0.42),
			Reason:     "return rate above threshold",
		})
		require.NoError(t, err)

		decoded, err := event.DecodedMeta()
		require.NoError(t, err)
		meta, ok := decoded.(KillSwitchMeta)
		require.True(t, ok)
		assert.True(t, meta.ReturnRate.Equal(decimal.NewFromFloat(0.42)))
	})

	t.Run("blank actor defaults to system", func(t *testing.T) {
		event, err := NewEventHistory(shopID, "order_1", "", RoutingDecisionMeta{LineCount: 1})
		require.NoError(t, err)
		assert.Equal(t, "system", event.Actor)
	})

	t.Run("rejects missing entity id", func(t *testing.T) {
		_, err := NewEventHistory(shopID, "", "system", RoutingDecisionMeta{})
		assert.Error(t, err)
	})

	t.Run("rejects nil meta", func(t *testing.T) {
		_, err := NewEventHistory(shopID, "order_1", "system", nil)
		assert.Error(t, err)
	})
}

func TestDecodeMetaUnknownType(t *testing.T) {
	raw := json.RawMessage(`{"anything":true}`)

	decoded, err := DecodeMeta(EventType("future_event"), raw)
	require.NoError(t, err)

	opaque, ok := decoded.(OpaqueMeta)
	require.True(t, ok)
	assert.Equal(t, EventType("future_event"), opaque.EventType())
	assert.JSONEq(t, `{"anything":true}`, string(opaque.Raw))

	// opaque payloads re-encode byte for byte
	reencoded, err := EncodeMeta(opaque)
	require.NoError(t, err)
	assert.Equal(t, raw, reencoded)
}
