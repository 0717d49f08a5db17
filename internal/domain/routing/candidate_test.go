package routing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveCost(t *testing.T) {
	tests := []struct {
		name  string
		cost  string
		score int
		want  string
	}{
		{"perfect score carries no premium", "10.5", 100, "10.5"},
		{"score 80 adds 20 percent", "10", 80, "12"},
		{"score 90 adds 10 percent", "10", 90, "11"},
		{"score 51 nearly doubles", "10", 51, "14.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Candidate{
				SupplierID:       uuid.New(),
				UnitCost:         decimal.RequireFromString(tt.cost),
				ReliabilityScore: tt.score,
			}
			assert.True(t, c.EffectiveCost().Equal(decimal.RequireFromString(tt.want)),
				"got %s", c.EffectiveCost())
		})
	}
}

func TestSelectBest(t *testing.T) {
	mk := func(id string, cost string, qty, score int) Candidate {
		return Candidate{
			SupplierID:       uuid.MustParse(id),
			SupplierSKU:      "SKU-" + id[:4],
			UnitCost:         decimal.RequireFromString(cost),
			QtyAvailable:     qty,
			ReliabilityScore: score,
		}
	}

	idA := "11111111-1111-1111-1111-111111111111"
	idB := "22222222-2222-2222-2222-222222222222"
	idC := "33333333-3333-3333-3333-333333333333"

	t.Run("picks minimum effective cost, not minimum unit cost", func(t *testing.T) {
		// X: 10 * 1.10 = 11.0, Y: 10.5 * 1.00 = 10.5 -> Y wins
		x := mk(idA, "10", 20, 90)
		y := mk(idB, "10.5", 20, 100)

		best := SelectBest([]Candidate{x, y}, 1)
		require.NotNil(t, best)
		assert.Equal(t, y.SupplierID, best.SupplierID)
	})

	t.Run("never selects a supplier at or below the suppression threshold", func(t *testing.T) {
		cheapButSuppressed := mk(idA, "1", 50, 40)
		atThreshold := mk(idB, "1", 50, 50)
		expensive := mk(idC, "100", 50, 100)

		best := SelectBest([]Candidate{cheapButSuppressed, atThreshold, expensive}, 1)
		require.NotNil(t, best)
		assert.Equal(t, expensive.SupplierID, best.SupplierID)
	})

	t.Run("excludes candidates with insufficient stock", func(t *testing.T) {
		shortStock := mk(idA, "1", 3, 100)
		enough := mk(idB, "5", 10, 100)

		best := SelectBest([]Candidate{shortStock, enough}, 5)
		require.NotNil(t, best)
		assert.Equal(t, enough.SupplierID, best.SupplierID)
	})

	t.Run("returns nil when nothing passes the filters", func(t *testing.T) {
		assert.Nil(t, SelectBest([]Candidate{mk(idA, "1", 50, 40)}, 1))
		assert.Nil(t, SelectBest(nil, 1))
	})

	t.Run("ties break on lowest supplier id regardless of input order", func(t *testing.T) {
		a := mk(idA, "10", 20, 100)
		b := mk(idB, "10", 20, 100)

		best := SelectBest([]Candidate{b, a}, 1)
		require.NotNil(t, best)
		assert.Equal(t, a.SupplierID, best.SupplierID)

		best = SelectBest([]Candidate{a, b}, 1)
		require.NotNil(t, best)
		assert.Equal(t, a.SupplierID, best.SupplierID)
	})

	t.Run("selected candidate always has minimal effective cost among eligible", func(t *testing.T) {
		candidates := []Candidate{
			mk(idA, "12.40", 30, 95),
			mk(idB, "11.90", 30, 85),
			mk(idC, "13.10", 30, 100),
		}
		best := SelectBest(candidates, 10)
		require.NotNil(t, best)
		for _, c := range candidates {
			if c.ReliabilityScore > SuppressionThreshold && c.QtyAvailable >= 10 {
				assert.True(t, best.EffectiveCost().LessThanOrEqual(c.EffectiveCost()))
			}
		}
	})
}

func TestPlanGroups(t *testing.T) {
	plan := NewPlan()
	sup1 := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	sup2 := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	plan.Add(sup2, PlannedLine{ExternalOrderItemID: "item_2", SupplierSKU: "B", Qty: 1, UnitCost: decimal.NewFromInt(2)})
	plan.Add(sup1, PlannedLine{ExternalOrderItemID: "item_1", SupplierSKU: "A", Qty: 1, UnitCost: decimal.NewFromInt(1)})
	plan.Add(sup1, PlannedLine{ExternalOrderItemID: "item_3", SupplierSKU: "C", Qty: 2, UnitCost: decimal.NewFromInt(3)})

	assert.Equal(t, 2, plan.Len())
	assert.Equal(t, 3, plan.LineCount())

	groups := plan.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, sup1, groups[0].SupplierID)
	assert.Len(t, groups[0].Lines, 2)
	assert.Equal(t, sup2, groups[1].SupplierID)
}
