package routing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPurchaseOrder(t *testing.T) {
	shopID := uuid.New()
	supplierID := uuid.New()

	t.Run("creates purchase order in created status", func(t *testing.T) {
		po, err := NewPurchaseOrder("order_123", shopID, supplierID)
		require.NoError(t, err)
		assert.Equal(t, PurchaseOrderStatusCreated, po.Status)
		assert.Equal(t, "order_123", po.OrderID)

		events := po.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePurchaseOrderCreated, events[0].EventType())
	})

	t.Run("rejects empty order reference", func(t *testing.T) {
		_, err := NewPurchaseOrder("", shopID, supplierID)
		assert.Error(t, err)
	})

	t.Run("rejects nil shop or supplier", func(t *testing.T) {
		_, err := NewPurchaseOrder("order_123", uuid.Nil, supplierID)
		assert.Error(t, err)
		_, err = NewPurchaseOrder("order_123", shopID, uuid.Nil)
		assert.Error(t, err)
	})
}

func TestPurchaseOrderAddLine(t *testing.T) {
	po, err := NewPurchaseOrder("order_123", uuid.New(), uuid.New())
	require.NoError(t, err)

	t.Run("adds valid lines", func(t *testing.T) {
		require.NoError(t, po.AddLine("item_1", "SUP-001", 2, decimal.NewFromFloat(12.5)))
		require.NoError(t, po.AddLine("item_2", "SUP-002", 1, decimal.NewFromFloat(7.25)))
		assert.Equal(t, 2, po.LineCount())
		assert.Equal(t, po.ID, po.Lines[0].PurchaseOrderID)
	})

	t.Run("rejects invalid lines", func(t *testing.T) {
		assert.Error(t, po.AddLine("", "SUP-001", 1, decimal.NewFromInt(1)))
		assert.Error(t, po.AddLine("item_3", "", 1, decimal.NewFromInt(1)))
		assert.Error(t, po.AddLine("item_3", "SUP-003", 0, decimal.NewFromInt(1)))
		assert.Error(t, po.AddLine("item_3", "SUP-003", 1, decimal.NewFromInt(-1)))
	})

	t.Run("lines are frozen once the order is confirmed", func(t *testing.T) {
		require.NoError(t, po.Transition(PurchaseOrderStatusConfirmed))
		assert.Error(t, po.AddLine("item_4", "SUP-004", 1, decimal.NewFromInt(1)))
	})
}

func TestPurchaseOrderTransitions(t *testing.T) {
	newPO := func(t *testing.T) *PurchaseOrder {
		po, err := NewPurchaseOrder("order_123", uuid.New(), uuid.New())
		require.NoError(t, err)
		return po
	}

	t.Run("happy path to completed", func(t *testing.T) {
		po := newPO(t)
		require.NoError(t, po.Transition(PurchaseOrderStatusConfirmed))
		require.NoError(t, po.Transition(PurchaseOrderStatusShipped))
		require.NoError(t, po.Transition(PurchaseOrderStatusCompleted))
		assert.True(t, po.Status.IsTerminal())
	})

	t.Run("cancel from created or confirmed", func(t *testing.T) {
		po := newPO(t)
		require.NoError(t, po.Transition(PurchaseOrderStatusCanceled))
		assert.True(t, po.Status.IsTerminal())
	})

	t.Run("terminal states accept no transition", func(t *testing.T) {
		po := newPO(t)
		require.NoError(t, po.Transition(PurchaseOrderStatusCanceled))
		assert.Error(t, po.Transition(PurchaseOrderStatusConfirmed))
	})

	t.Run("shipped cannot be canceled", func(t *testing.T) {
		po := newPO(t)
		require.NoError(t, po.Transition(PurchaseOrderStatusConfirmed))
		require.NoError(t, po.Transition(PurchaseOrderStatusShipped))
		assert.Error(t, po.Transition(PurchaseOrderStatusCanceled))
	})
}
